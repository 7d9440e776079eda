// Package gitrepo fetches a single branch of a remote repository into an
// ephemeral local workspace.
package gitrepo

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/google/uuid"
)

const removeAttempts = 3

// Workspace is an ephemeral local directory holding a cloned repository tree.
// It is owned exclusively by the run that created it.
type Workspace struct {
	Path string
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Clone fetches exactly the named branch into a fresh workspace. A failed
// clone is not retried: it indicates a bad URL, branch or network.
func (s *Service) Clone(repoURL string, branch string) (*Workspace, error) {
	dir := filepath.Join(os.TempDir(), "deployctl-"+uuid.NewString())

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateWorkspace, err)
	}

	_, err := git.PlainClone(dir, false, &git.CloneOptions{
		URL:           repoURL,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
	})

	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("%w: %v", ErrCloneFailed, err)
	}

	return &Workspace{Path: dir}, nil
}

// Remove deletes the workspace, fixing up read-only file attributes between
// attempts. Checkouts may carry read-only modes that block plain removal.
func (w *Workspace) Remove() error {
	if w.Path == "" {
		return nil
	}

	if _, err := os.Stat(w.Path); os.IsNotExist(err) {
		return nil
	}

	var lastErr error

	for attempt := 1; attempt <= removeAttempts; attempt++ {
		lastErr = os.RemoveAll(w.Path)
		if lastErr == nil {
			return nil
		}

		makeWritable(w.Path)

		if attempt < removeAttempts {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}

	return fmt.Errorf("%w: %s: %v", ErrFailedToRemoveWorkspace, w.Path, lastErr)
}

func makeWritable(root string) {
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			_ = os.Chmod(p, 0o755)
		} else {
			_ = os.Chmod(p, 0o644)
		}
		return nil
	})
}

// TargetName derives the deploy target name from the repository URL base name.
func TargetName(repoURL string) string {
	trimmed := strings.TrimSuffix(repoURL, "/")
	base := path.Base(trimmed)
	return strings.TrimSuffix(base, ".git")
}
