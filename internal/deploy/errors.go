package deploy

import "errors"

var (
	ErrDirectoryCreationFailed = errors.New("failed to create install directory")
	ErrOwnershipChangeFailed   = errors.New("failed to change install directory ownership")
	ErrUploadFailed            = errors.New("failed to upload file")
	ErrDependencySetupFailed   = errors.New("failed to set up virtual environment")
	ErrRunnerTemplateFailed    = errors.New("failed to render runner script")
	ErrRunnerSetupFailed       = errors.New("failed to set up runner script")
	ErrLineEndingFixFailed     = errors.New("failed to convert runner script line endings")
	ErrCrontabUpdateFailed     = errors.New("failed to update crontab")
)
