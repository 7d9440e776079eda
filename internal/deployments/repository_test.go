package deployments

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := db.AutoMigrate(&Deployment{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func TestRecordAndGetAll(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	_, err := repo.Record(&Deployment{
		TargetName: "worker",
		RepoURL:    "https://github.com/acme/worker.git",
		Branch:     "master",
		Host:       "10.20.1.4",
		Username:   "deploy",
		Status:     StatusSucceeded,
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	_, err = repo.Record(&Deployment{
		TargetName: "worker",
		Status:     StatusFailed,
		Error:      "upload files: failed to upload file",
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	records, err := repo.GetAll()
	if err != nil {
		t.Fatalf("get all failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestGetByTarget(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	for _, name := range []string{"worker", "scraper", "worker"} {
		if _, err := repo.Record(&Deployment{TargetName: name, Status: StatusSucceeded}); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	records, err := repo.GetByTarget("worker")
	if err != nil {
		t.Fatalf("get by target failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 worker records, got %d", len(records))
	}

	for _, record := range records {
		if record.TargetName != "worker" {
			t.Errorf("unexpected record for target %s", record.TargetName)
		}
	}
}
