package gitrepo

import "errors"

var (
	ErrFailedToCreateWorkspace = errors.New("failed to create workspace directory")
	ErrCloneFailed             = errors.New("git clone failed")
	ErrFailedToRemoveWorkspace = errors.New("failed to remove workspace directory")
)
