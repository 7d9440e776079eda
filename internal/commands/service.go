package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/WB-TFS-SCADA1/deployAutomation/cmd/deployctl/config"
	"github.com/WB-TFS-SCADA1/deployAutomation/internal/console"
	"github.com/WB-TFS-SCADA1/deployAutomation/internal/deploy"
	"github.com/WB-TFS-SCADA1/deployAutomation/internal/deployments"
	"github.com/WB-TFS-SCADA1/deployAutomation/internal/envfile"
	"github.com/WB-TFS-SCADA1/deployAutomation/internal/gitrepo"
	"github.com/WB-TFS-SCADA1/deployAutomation/internal/logger"
	"github.com/WB-TFS-SCADA1/deployAutomation/internal/ssh"
)

type Service struct {
	DeploymentsRepository *deployments.Repository
}

type DeployOptions struct {
	RepoURL string
	Branch  string
	EnvDir  string
}

// Deploy runs the whole deployment sequence: connect, verify the remote
// runtime, clone, provision. Session teardown and workspace removal run on
// every exit path.
func (s *Service) Deploy(creds *ssh.Credentials, opts *DeployOptions, stdOut io.Writer, errOut io.Writer) error {
	sshService := ssh.NewService()

	envDir := opts.EnvDir
	if envDir == "" {
		envDir = config.Config.EnvDir
	}

	fmt.Fprintf(errOut, "🚀 deployctl\n")
	fmt.Fprintf(errOut, "============\n\n")

	fmt.Fprintf(errOut, "📡 Connecting to server...\n")
	fmt.Fprintf(errOut, "   Server: %s@%s:%d\n", creds.Username, creds.Host, creds.Port)

	err := sshService.Connect(creds)

	if err != nil {
		fmt.Fprintf(errOut, "   Status: ❌ Failed\n")
		fmt.Fprintf(errOut, "   Error:  %v\n\n", err)
		return err
	}

	defer sshService.Close()

	fmt.Fprintf(errOut, "   Status: ✅ Connected\n\n")
	fmt.Fprintf(errOut, "🐍 Verifying Python runtime...\n")

	pythonVersion, err := sshService.VerifyPython(config.Config.PythonBin)

	if err != nil {
		fmt.Fprintf(errOut, "   Status: ❌ Failed\n")
		fmt.Fprintf(errOut, "   Error:  %v\n\n", err)
		return err
	}

	fmt.Fprintf(errOut, "   Status: ✅ %s\n\n", pythonVersion)
	fmt.Fprintf(errOut, "📥 Cloning repository...\n")
	fmt.Fprintf(errOut, "   Repository: %s (branch %s)\n", opts.RepoURL, opts.Branch)

	gitService := gitrepo.NewService()

	workspace, err := gitService.Clone(opts.RepoURL, opts.Branch)

	if err != nil {
		fmt.Fprintf(errOut, "   Status: ❌ Failed\n")
		fmt.Fprintf(errOut, "   Error:  %v\n\n", err)
		return err
	}

	defer func() {
		if err := workspace.Remove(); err != nil {
			logger.Warn("Could not remove temporary directory %s", workspace.Path)
			logger.Warn("You may need to manually delete it later")
		}
	}()

	fmt.Fprintf(errOut, "   Status: ✅ Cloned to %s\n\n", workspace.Path)

	targetName := gitrepo.TargetName(opts.RepoURL)

	entryPath := filepath.Join(workspace.Path, config.Config.EntryFileName)

	if _, err := os.Stat(entryPath); err != nil {
		fmt.Fprintf(errOut, "❌ No %s found in repository root!\n", config.Config.EntryFileName)
		fmt.Fprintf(errOut, "Repository structure:\n")
		printTree(workspace.Path, errOut)
		return fmt.Errorf("%w: %s", ErrEntryFileMissing, config.Config.EntryFileName)
	}

	secretsService := envfile.NewService(envDir, console.NewConsole(os.Stdin, stdOut))
	deployService := deploy.NewService(sshService, secretsService)

	target := &deploy.Target{
		Name:       targetName,
		SourcePath: workspace.Path,
		Owner:      creds.Username,
	}

	deployErr := deployService.Deploy(target, errOut)

	s.recordOutcome(creds, opts, targetName, deployErr)

	if deployErr != nil {
		fmt.Fprintf(errOut, "\n❌ Deployment failed: %v\n", deployErr)
		return fmt.Errorf("%w: %v", ErrDeploymentFailed, deployErr)
	}

	// The password is no longer needed once provisioning succeeded
	creds.Zero()

	fmt.Fprintf(errOut, "\n✨ Deployment completed successfully!\n")
	return nil
}

// History lists recorded deployment runs, most recent first.
func (s *Service) History(stdOut io.Writer, errOut io.Writer) {
	if s.DeploymentsRepository == nil {
		fmt.Fprintf(errOut, "Deployment history is unavailable: database is not initialized\n")
		return
	}

	records, err := s.DeploymentsRepository.GetAll()

	if err != nil {
		fmt.Fprintf(errOut, "Failed to list deployments: %v\n", err)
		return
	}

	if len(records) == 0 {
		fmt.Fprintf(stdOut, "No deployments recorded yet\n")
		return
	}

	for _, record := range records {
		status := "✅"
		if record.Status != deployments.StatusSucceeded {
			status = "❌"
		}

		fmt.Fprintf(stdOut, "%s  %s  %s -> %s@%s (branch %s)\n",
			status,
			record.CreatedAt.Format("2006-01-02 15:04:05"),
			record.TargetName,
			record.Username,
			record.Host,
			record.Branch)

		if record.Error != "" {
			fmt.Fprintf(stdOut, "      %s\n", record.Error)
		}
	}
}

func (s *Service) recordOutcome(creds *ssh.Credentials, opts *DeployOptions, targetName string, deployErr error) {
	if s.DeploymentsRepository == nil {
		return
	}

	record := &deployments.Deployment{
		TargetName: targetName,
		RepoURL:    opts.RepoURL,
		Branch:     opts.Branch,
		Host:       creds.Host,
		Username:   creds.Username,
		Status:     deployments.StatusSucceeded,
	}

	if deployErr != nil {
		record.Status = deployments.StatusFailed
		record.Error = deployErr.Error()
	}

	if _, err := s.DeploymentsRepository.Record(record); err != nil {
		logger.Warn("Failed to record deployment: %v", err)
	}
}

func printTree(root string, out io.Writer) {
	_ = filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		relPath, err := filepath.Rel(root, p)
		if err != nil || relPath == "." {
			return nil
		}

		depth := strings.Count(relPath, string(os.PathSeparator))
		indent := strings.Repeat("    ", depth)

		name := info.Name()
		if info.IsDir() {
			name += "/"
		}

		fmt.Fprintf(out, "%s%s\n", indent, name)
		return nil
	})
}
