// Package envfile resolves, creates and uploads per-target .env secrets files.
package envfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/WB-TFS-SCADA1/deployAutomation/internal/console"

	"github.com/joho/godotenv"
)

// Uploader transfers a local file to the remote host, reporting success.
type Uploader interface {
	Upload(localPath string, remotePath string) bool
}

type Service struct {
	EnvDir  string
	Console console.Console
}

func NewService(envDir string, c console.Console) *Service {
	return &Service{
		EnvDir:  envDir,
		Console: c,
	}
}

// LocalPath returns the local secrets file path for a target name.
func (s *Service) LocalPath(targetName string) string {
	return filepath.Join(s.EnvDir, targetName+".env")
}

// Provision mirrors the target's secrets file to remoteEnvPath. When no local
// file exists the operator may create one interactively; declining is not an
// error, a target without secrets is a valid state.
func (s *Service) Provision(targetName string, remoteEnvPath string, uploader Uploader, out io.Writer) error {
	localPath := s.LocalPath(targetName)

	if _, err := os.Stat(localPath); err == nil {
		fmt.Fprintf(out, "Found .env file for %s\n", targetName)

		if !uploader.Upload(localPath, remoteEnvPath) {
			return fmt.Errorf("%w: %s", ErrUploadFailed, localPath)
		}

		return nil
	}

	fmt.Fprintf(out, "No .env file found for %s at %s\n", targetName, localPath)

	create, err := s.Console.Confirm("Would you like to create one now? (y/n): ")

	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	if !create {
		return nil
	}

	fmt.Fprintf(out, "Enter your environment variables (one per line)\n")
	fmt.Fprintf(out, "Format: KEY=VALUE\n")
	fmt.Fprintf(out, "Press Enter twice when done\n")

	lines, err := s.Console.ReadLines()

	if err != nil {
		return err
	}

	contents := strings.Join(lines, "\n") + "\n"

	if _, err := godotenv.Unmarshal(contents); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEnvLines, err)
	}

	if err := os.MkdirAll(s.EnvDir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteEnv, err)
	}

	if err := os.WriteFile(localPath, []byte(contents), 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteEnv, err)
	}

	fmt.Fprintf(out, "Created .env file at %s\n", localPath)

	if !uploader.Upload(localPath, remoteEnvPath) {
		return fmt.Errorf("%w: %s", ErrUploadFailed, localPath)
	}

	return nil
}
