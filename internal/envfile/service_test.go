package envfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type stubConsole struct {
	confirm bool
	lines   []string
}

func (c *stubConsole) Confirm(_ string) (bool, error) {
	return c.confirm, nil
}

func (c *stubConsole) ReadLines() ([]string, error) {
	return c.lines, nil
}

type stubUploader struct {
	fail    bool
	uploads map[string]string
}

func (u *stubUploader) Upload(localPath string, remotePath string) bool {
	if u.uploads == nil {
		u.uploads = map[string]string{}
	}
	u.uploads[remotePath] = localPath
	return !u.fail
}

func TestProvisionUploadsExistingFile(t *testing.T) {
	envDir := t.TempDir()

	localPath := filepath.Join(envDir, "worker.env")
	if err := os.WriteFile(localPath, []byte("API_KEY=abc\n"), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	uploader := &stubUploader{}
	service := NewService(envDir, &stubConsole{})

	err := service.Provision("worker", "/opt/worker/.env", uploader, &strings.Builder{})
	if err != nil {
		t.Fatalf("provision failed: %v", err)
	}

	if uploader.uploads["/opt/worker/.env"] != localPath {
		t.Errorf("expected %s to be uploaded to /opt/worker/.env", localPath)
	}
}

func TestProvisionDeclinedCreationIsNotAnError(t *testing.T) {
	uploader := &stubUploader{}
	service := NewService(t.TempDir(), &stubConsole{confirm: false})

	err := service.Provision("worker", "/opt/worker/.env", uploader, &strings.Builder{})
	if err != nil {
		t.Fatalf("expected declining creation to succeed, got %v", err)
	}

	if len(uploader.uploads) != 0 {
		t.Errorf("expected no uploads, got %v", uploader.uploads)
	}
}

func TestProvisionCreatesAndUploadsFile(t *testing.T) {
	envDir := filepath.Join(t.TempDir(), "envs")

	uploader := &stubUploader{}
	service := NewService(envDir, &stubConsole{
		confirm: true,
		lines:   []string{"API_KEY=abc", "DB_URL=postgres://db"},
	})

	err := service.Provision("worker", "/opt/worker/.env", uploader, &strings.Builder{})
	if err != nil {
		t.Fatalf("provision failed: %v", err)
	}

	contents, err := os.ReadFile(filepath.Join(envDir, "worker.env"))
	if err != nil {
		t.Fatalf("expected env file to be created: %v", err)
	}

	if string(contents) != "API_KEY=abc\nDB_URL=postgres://db\n" {
		t.Errorf("unexpected env file contents: %q", contents)
	}

	if _, ok := uploader.uploads["/opt/worker/.env"]; !ok {
		t.Errorf("expected created env file to be uploaded")
	}
}

func TestProvisionRejectsInvalidLines(t *testing.T) {
	uploader := &stubUploader{}
	service := NewService(t.TempDir(), &stubConsole{
		confirm: true,
		lines:   []string{"this is not a key value pair"},
	})

	err := service.Provision("worker", "/opt/worker/.env", uploader, &strings.Builder{})
	if !errors.Is(err, ErrInvalidEnvLines) {
		t.Fatalf("expected ErrInvalidEnvLines, got %v", err)
	}

	if len(uploader.uploads) != 0 {
		t.Errorf("expected no uploads after invalid input")
	}
}

func TestProvisionReportsUploadFailure(t *testing.T) {
	envDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(envDir, "worker.env"), []byte("A=1\n"), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	uploader := &stubUploader{fail: true}
	service := NewService(envDir, &stubConsole{})

	err := service.Provision("worker", "/opt/worker/.env", uploader, &strings.Builder{})
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
}
