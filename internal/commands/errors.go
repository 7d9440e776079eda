package commands

import "errors"

var (
	ErrEntryFileMissing = errors.New("no entry file found in repository root")
	ErrDeploymentFailed = errors.New("deployment failed")
)
