package commands

import (
	"fmt"

	internalcommands "github.com/WB-TFS-SCADA1/deployAutomation/internal/commands"
	"github.com/WB-TFS-SCADA1/deployAutomation/internal/ssh"

	"github.com/spf13/cobra"
)

var (
	deployHost       = ""
	deployUser       = ""
	deployBranch     = "master"
	deployEnvDir     = ""
	deploySSHKeyPath = ""
	deployKnownHosts = false
)

var DeployCmd = &cobra.Command{
	Use:   "deploy repository-url",
	Short: "Deploy a Python project from a Git repository to a remote server",
	Long: `Deploy a Python project from a Git repository to a remote Linux server over SSH.

The named branch is cloned locally, the files are uploaded to /opt/<name> on
the server (<name> is the repository base name), a Python virtual environment
is provisioned when requirements.txt is present, a per-target .env secrets
file is wired up, and a crontab entry is installed when cron.txt is present.

The SSH password is always requested interactively; it is never accepted as a
flag or environment variable. By default unknown host identities are trusted
automatically; pass --known-hosts to verify against your known_hosts file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		creds, err := buildSSHCredentials(cmd)

		if err != nil {
			return err
		}

		opts := &internalcommands.DeployOptions{
			RepoURL: args[0],
			Branch:  deployBranch,
			EnvDir:  deployEnvDir,
		}

		return commandsService.Deploy(creds, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func buildSSHCredentials(cmd *cobra.Command) (*ssh.Credentials, error) {
	if deployHost == "" {
		return nil, fmt.Errorf("server host is required. Use the --host flag")
	}
	if deployUser == "" {
		return nil, fmt.Errorf("server username is required. Use the --user flag")
	}

	hostname, port, err := parseHostPort(deployHost)

	if err != nil {
		return nil, err
	}

	creds := &ssh.Credentials{
		Host:              hostname,
		Port:              port,
		Username:          deployUser,
		TrustUnknownHosts: !deployKnownHosts,
	}

	if deploySSHKeyPath != "" {
		creds.PrivateKeyPath = deploySSHKeyPath

		if passphrase, err := readPasswordSecurely("🔒 Enter SSH key passphrase (leave empty if none): ", cmd.OutOrStdout(), cmd.ErrOrStderr(), true); err == nil && passphrase != "" {
			creds.Passphrase = passphrase
		}
	} else {
		password, err := readPasswordSecurely("🔒 Enter server password: ", cmd.OutOrStdout(), cmd.ErrOrStderr(), true)

		if err != nil {
			return nil, fmt.Errorf("failed to read password: %v", err)
		}

		if password == "" {
			return nil, fmt.Errorf("server password is required")
		}

		creds.Password = password
	}

	return creds, nil
}

func init() {
	DeployCmd.Flags().StringVar(&deployHost, "host", "", "Server hostname (hostname[:port])")
	DeployCmd.Flags().StringVar(&deployUser, "user", "", "Server username")
	DeployCmd.Flags().StringVar(&deployBranch, "branch", "master", "Git branch to deploy")
	DeployCmd.Flags().StringVar(&deployEnvDir, "env-dir", "", "Directory containing .env files (default ~/.script_envs)")
	DeployCmd.Flags().StringVar(&deploySSHKeyPath, "ssh-key-path", "", "Path to SSH private key file (for passwordless authentication)")
	DeployCmd.Flags().BoolVar(&deployKnownHosts, "known-hosts", false, "Verify the server host key against the known_hosts file instead of trusting it automatically")
}
