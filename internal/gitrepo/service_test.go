package gitrepo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTargetName(t *testing.T) {
	cases := map[string]string{
		"https://github.com/WB-TFS-SCADA1/lightningStrikes.git": "lightningStrikes",
		"https://github.com/acme/worker":                        "worker",
		"https://github.com/acme/worker/":                       "worker",
		"git@github.com:acme/worker.git":                        "worker",
	}

	for repoURL, expected := range cases {
		if got := TargetName(repoURL); got != expected {
			t.Errorf("TargetName(%q) = %q, expected %q", repoURL, got, expected)
		}
	}
}

func TestWorkspaceRemove(t *testing.T) {
	dir := t.TempDir()

	nested := filepath.Join(dir, "workspace", "pkg")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create test directories: %v", err)
	}

	file := filepath.Join(nested, "module.py")
	if err := os.WriteFile(file, []byte("print('hi')\n"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	// Read-only attributes must not block removal
	if err := os.Chmod(file, 0o400); err != nil {
		t.Fatalf("failed to chmod test file: %v", err)
	}

	workspace := &Workspace{Path: filepath.Join(dir, "workspace")}

	if err := workspace.Remove(); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if _, err := os.Stat(workspace.Path); !os.IsNotExist(err) {
		t.Errorf("expected workspace to be removed")
	}
}

func TestWorkspaceRemoveMissingPath(t *testing.T) {
	workspace := &Workspace{Path: filepath.Join(t.TempDir(), "never-created")}

	if err := workspace.Remove(); err != nil {
		t.Errorf("expected removing a missing workspace to succeed, got %v", err)
	}
}

func TestWorkspaceRemoveEmptyPath(t *testing.T) {
	workspace := &Workspace{}

	if err := workspace.Remove(); err != nil {
		t.Errorf("expected removing an unset workspace to succeed, got %v", err)
	}
}
