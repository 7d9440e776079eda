// Package deploy drives remote provisioning of a deploy target as a linear
// sequence of named steps. Each step gates on the previous one succeeding;
// the first failure aborts the run with the failing step's name.
package deploy

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/WB-TFS-SCADA1/deployAutomation/cmd/deployctl/config"
	"github.com/WB-TFS-SCADA1/deployAutomation/internal/envfile"
	"github.com/WB-TFS-SCADA1/deployAutomation/internal/shellcmd"
	"github.com/WB-TFS-SCADA1/deployAutomation/internal/ssh"
	"github.com/WB-TFS-SCADA1/deployAutomation/internal/templates"

	"github.com/aymerick/raymond"
)

// Session is the remote execution surface the provisioner needs.
type Session interface {
	Run(command string) (*ssh.CommandResult, error)
	RunSudo(command string) (*ssh.CommandResult, error)
	Upload(localPath string, remotePath string) bool
}

// Target identifies what gets deployed: a name derived from the repository
// URL and the local workspace holding the cloned tree.
type Target struct {
	Name       string
	SourcePath string
	// Owner is the remote user that receives ownership of the install root.
	Owner string
}

type Service struct {
	Session Session
	Secrets *envfile.Service
}

func NewService(session Session, secrets *envfile.Service) *Service {
	return &Service{
		Session: session,
		Secrets: secrets,
	}
}

type step struct {
	name string
	// applies decides whether the step runs for this target; nil means always.
	applies func(target *Target) bool
	run     func(target *Target, out io.Writer) error
}

func (s *Service) steps() []step {
	return []step{
		{name: "create install directory", run: s.createInstallDirectory},
		{name: "fix ownership", run: s.fixOwnership},
		{name: "upload files", run: s.uploadFiles},
		{name: "provision secrets", run: s.provisionSecrets},
		{name: "install dependencies", applies: hasRequirements, run: s.installDependencies},
		{name: "install runner script", applies: hasRequirements, run: s.installRunner},
		{name: "install schedule", applies: hasSchedule, run: s.installSchedule},
	}
}

// Deploy runs every applicable step in order. Re-running for the same target
// overwrites files and replaces the target's crontab line; directory and
// ownership steps are re-executed unconditionally.
func (s *Service) Deploy(target *Target, out io.Writer) error {
	fmt.Fprintf(out, "\nDeploying %s...\n", target.Name)

	for _, st := range s.steps() {
		if st.applies != nil && !st.applies(target) {
			fmt.Fprintf(out, "   ⏭  %s (not applicable)\n", st.name)
			continue
		}

		fmt.Fprintf(out, "   ▶  %s\n", st.name)

		if err := st.run(target, out); err != nil {
			return fmt.Errorf("%s: %w", st.name, err)
		}
	}

	fmt.Fprintf(out, "Successfully deployed %s\n", target.Name)
	return nil
}

func hasRequirements(target *Target) bool {
	_, err := os.Stat(filepath.Join(target.SourcePath, config.Config.RequirementsFileName))
	return err == nil
}

func hasSchedule(target *Target) bool {
	_, err := os.Stat(filepath.Join(target.SourcePath, config.Config.CronFileName))
	return err == nil
}

func (s *Service) createInstallDirectory(target *Target, _ io.Writer) error {
	result, err := s.Session.RunSudo(shellcmd.New("mkdir", "-p", InstallRoot(target.Name)).String())
	return checkResult(result, err, ErrDirectoryCreationFailed)
}

func (s *Service) fixOwnership(target *Target, _ io.Writer) error {
	owner := fmt.Sprintf("%s:%s", target.Owner, target.Owner)
	result, err := s.Session.RunSudo(shellcmd.New("chown", owner, InstallRoot(target.Name)).String())
	return checkResult(result, err, ErrOwnershipChangeFailed)
}

// uploadFiles mirrors the local source tree under the install root, aborting
// on the first failed transfer.
func (s *Service) uploadFiles(target *Target, _ io.Writer) error {
	root := InstallRoot(target.Name)

	return filepath.WalkDir(target.SourcePath, func(localPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(target.SourcePath, localPath)
		if err != nil {
			return err
		}

		remotePath := path.Join(root, filepath.ToSlash(relPath))

		if !s.Session.Upload(localPath, remotePath) {
			return fmt.Errorf("%w: %s", ErrUploadFailed, relPath)
		}

		return nil
	})
}

func (s *Service) provisionSecrets(target *Target, out io.Writer) error {
	return s.Secrets.Provision(target.Name, SecretsPath(target.Name), s.Session, out)
}

func (s *Service) installDependencies(target *Target, _ io.Writer) error {
	setupCmd := shellcmd.And(
		shellcmd.New("cd", InstallRoot(target.Name)),
		shellcmd.New(config.Config.PythonBin, "-m", "venv", "venv"),
		shellcmd.New("source", "venv/bin/activate"),
		shellcmd.New("pip", "install", "--upgrade", "pip"),
		shellcmd.New("pip", "install", "-r", config.Config.RequirementsFileName),
	)

	result, err := s.Session.Run(setupCmd)
	return checkResult(result, err, ErrDependencySetupFailed)
}

// installRunner materializes the runner script locally with LF-only line
// endings, uploads it, marks it executable and normalizes its endings on the
// remote host, installing dos2unix on demand.
func (s *Service) installRunner(target *Target, out io.Writer) error {
	localPath, err := s.renderRunner(target)
	if err != nil {
		return err
	}

	runnerPath := RunnerPath(target.Name)

	if !s.Session.Upload(localPath, runnerPath) {
		return fmt.Errorf("%w: %s", ErrUploadFailed, config.Config.RunnerScriptName)
	}

	result, err := s.Session.Run(shellcmd.New("chmod", "+x", runnerPath).String())
	if err := checkResult(result, err, ErrRunnerSetupFailed); err != nil {
		return err
	}

	dos2unixCmd := shellcmd.New("dos2unix", runnerPath).String()

	result, err = s.Session.Run(dos2unixCmd)
	if err != nil {
		return err
	}

	if result.ExitCode != 0 {
		// dos2unix is likely missing; install it and retry exactly once
		fmt.Fprintf(out, "      Installing dos2unix...\n")

		installCmd := shellcmd.And(
			shellcmd.New("apt-get", "update"),
			shellcmd.New("apt-get", "install", "-y", "dos2unix"),
		)

		result, err = s.Session.RunSudo(installCmd)
		if err := checkResult(result, err, ErrLineEndingFixFailed); err != nil {
			return err
		}

		result, err = s.Session.Run(dos2unixCmd)
		if err := checkResult(result, err, ErrLineEndingFixFailed); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) renderRunner(target *Target) (string, error) {
	runnerTemplate, err := templates.Scripts.ReadFile(config.Config.RunnerScriptTemplatePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRunnerTemplateFailed, err)
	}

	tpl, err := raymond.Parse(string(runnerTemplate))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRunnerTemplateFailed, err)
	}

	rendered, err := tpl.Exec(map[string]string{
		"installRoot": InstallRoot(target.Name),
		"logsDir":     config.Config.LogsDirName,
		"entryFile":   config.Config.EntryFileName,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRunnerTemplateFailed, err)
	}

	// The runner must carry LF-only endings regardless of authoring platform
	rendered = strings.ReplaceAll(rendered, "\r\n", "\n")

	localPath := filepath.Join(target.SourcePath, config.Config.RunnerScriptName)

	if err := os.WriteFile(localPath, []byte(rendered), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRunnerTemplateFailed, err)
	}

	return localPath, nil
}

// installSchedule replaces the target's crontab line: current entries minus
// any line mentioning the target name, plus one line pairing the schedule
// expression with the runner script.
func (s *Service) installSchedule(target *Target, _ io.Writer) error {
	scheduleBytes, err := os.ReadFile(filepath.Join(target.SourcePath, config.Config.CronFileName))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCrontabUpdateFailed, err)
	}

	schedule := strings.TrimSpace(string(scheduleBytes))
	entry := fmt.Sprintf("%s %s", schedule, RunnerPath(target.Name))

	cronCmd := fmt.Sprintf("(crontab -l 2>/dev/null | grep -v %s ; echo %s) | crontab -",
		shellcmd.Quote(target.Name), shellcmd.Quote(entry))

	result, err := s.Session.Run(cronCmd)
	return checkResult(result, err, ErrCrontabUpdateFailed)
}

func checkResult(result *ssh.CommandResult, err error, sentinel error) error {
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("%w: %s", sentinel, result.Stderr)
	}
	return nil
}
