package database

import (
	"os"
	"path/filepath"

	"github.com/WB-TFS-SCADA1/deployAutomation/cmd/deployctl/config"
	"github.com/WB-TFS-SCADA1/deployAutomation/internal/deployments"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func InitDB() (*gorm.DB, error) {
	// Ensure the parent directory exists
	dbDir := filepath.Dir(config.Config.DatabasePath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(config.Config.DatabasePath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})

	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&deployments.Deployment{})

	if err != nil {
		return nil, err
	}

	return db, nil
}

func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()

	if err != nil {
		return err
	}

	return sqlDB.Close()
}
