package ssh

import (
	"fmt"
	"net"
	"os"
	"path"
	"strings"
	"time"

	"github.com/WB-TFS-SCADA1/deployAutomation/internal/logger"
	"github.com/WB-TFS-SCADA1/deployAutomation/internal/shellcmd"

	"github.com/melbahja/goph"
	"golang.org/x/crypto/ssh"
)

// Service owns a live SSH + SFTP session to the deployment host
type Service struct {
	client *goph.Client
	creds  *Credentials
}

func NewService() *Service {
	return &Service{}
}

func (s *Service) Connect(creds *Credentials) error {
	var authMethods []ssh.AuthMethod
	var err error

	// Determine chosen authentication method
	if creds.PrivateKeyPath != "" {
		var keyBytes []byte
		keyBytes, err = os.ReadFile(creds.PrivateKeyPath)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToCreateAuth, err)
		}

		var signer ssh.Signer
		if creds.Passphrase != "" {
			signer, err = ssh.ParsePrivateKeyWithPassphrase(keyBytes, []byte(creds.Passphrase))
		} else {
			signer, err = ssh.ParsePrivateKey(keyBytes)
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToCreateAuth, err)
		}
		authMethods = append(authMethods, ssh.PublicKeys(signer))
	} else if creds.Password != "" {
		// Use password authentication
		authMethods = append(authMethods, ssh.Password(creds.Password))
	} else {
		return ErrNoAuthMethodProvided
	}

	// Host-key policy is an explicit choice of the caller: auto-trust is the
	// historical default of this tool, known_hosts verification is opt-in
	hostKeyCallback := ssh.InsecureIgnoreHostKey()

	if !creds.TrustUnknownHosts {
		hostKeyCallback, err = goph.DefaultKnownHosts()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToLoadKnownHosts, err)
		}
	}

	sshConfig := &ssh.ClientConfig{
		User:            creds.Username,
		Auth:            authMethods,
		HostKeyCallback: hostKeyCallback,
		Timeout:         10 * time.Second,
	}

	hostPort := net.JoinHostPort(creds.Host, fmt.Sprintf("%d", creds.Port))

	conn, err := net.DialTimeout("tcp", hostPort, sshConfig.Timeout)

	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateSSHClient, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, hostPort, sshConfig)

	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: %v", ErrFailedToCreateSSHClient, err)
	}

	client := ssh.NewClient(sshConn, chans, reqs)

	session, err := client.NewSession()

	if err != nil {
		client.Close()
		return fmt.Errorf("%w: %v", ErrFailedToTestSSHConnection, err)
	}

	defer session.Close()

	err = session.Run("echo 'connection test'")

	if err != nil {
		client.Close()
		return fmt.Errorf("%w: %v", ErrFailedToTestSSHConnection, err)
	}

	s.client = &goph.Client{Client: client}
	s.creds = creds
	return nil
}

// Close shuts the session down. Safe to call multiple times.
func (s *Service) Close() error {
	if s.client == nil {
		return nil
	}

	err := s.client.Close()
	s.client = nil
	s.creds = nil
	return err
}

// Run executes a command in a fresh remote shell invocation; no shell state
// persists between calls. The exit code and both streams are always captured.
func (s *Service) Run(command string) (*CommandResult, error) {
	return s.runWithStdin(command, "")
}

// RunSudo executes a command with elevated privilege. The password is fed to
// sudo over the session's stdin and never appears in the command text.
func (s *Service) RunSudo(command string) (*CommandResult, error) {
	if s.creds == nil {
		return nil, ErrSSHConnectionNotEstablished
	}

	sudoCmd := fmt.Sprintf("sudo -S -p '' %s", shellcmd.Script(command))

	return s.runWithStdin(sudoCmd, s.creds.Password+"\n")
}

func (s *Service) runWithStdin(command string, stdin string) (*CommandResult, error) {
	if s.client == nil {
		return nil, ErrSSHConnectionNotEstablished
	}

	// Use Command method to get separate stdout and stderr
	cmd, err := s.client.Command(command)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateRemoteShell, err)
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	err = cmd.Run()

	result := &CommandResult{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}

	if err != nil {
		result.Error = err
		if exitErr, ok := err.(*ssh.ExitError); ok {
			result.ExitCode = exitErr.ExitStatus()
		} else {
			result.ExitCode = -1
		}
	} else {
		result.ExitCode = 0
	}

	return result, nil
}

// Upload ensures the remote parent directory exists, then transfers the file
// over SFTP. Failures are logged and reported as false rather than propagated.
func (s *Service) Upload(localPath string, remotePath string) bool {
	if s.client == nil {
		logger.Error("Failed to upload %s: %v", localPath, ErrSSHConnectionNotEstablished)
		return false
	}

	remoteDir := path.Dir(remotePath)

	result, err := s.Run(shellcmd.New("mkdir", "-p", remoteDir).String())
	if err != nil || result.ExitCode != 0 {
		logger.Error("Failed to create remote directory %s for %s", remoteDir, localPath)
		return false
	}

	if err := s.client.Upload(localPath, remotePath); err != nil {
		logger.Error("Failed to upload %s: %v", localPath, err)
		return false
	}

	return true
}

// VerifyPython checks that the expected python binary exists on the remote
// host and returns its reported version.
func (s *Service) VerifyPython(pythonBin string) (string, error) {
	result, err := s.Run(shellcmd.New("command", "-v", pythonBin).String())
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", fmt.Errorf("%w: %s", ErrPythonNotInstalled, pythonBin)
	}

	result, err = s.Run(shellcmd.New(pythonBin, "--version").String())
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", ErrFailedToGetPythonVersion
	}

	return strings.TrimSpace(result.Stdout), nil
}
