package envfile

import "errors"

var (
	ErrInvalidEnvLines  = errors.New("invalid environment variable lines")
	ErrFailedToWriteEnv = errors.New("failed to write env file")
	ErrUploadFailed     = errors.New("failed to upload env file")
)
