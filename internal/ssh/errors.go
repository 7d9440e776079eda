package ssh

import "errors"

// SSH connection errors
var (
	ErrNoAuthMethodProvided        = errors.New("no valid authentication method provided")
	ErrSSHConnectionNotEstablished = errors.New("SSH connection not established")
	ErrFailedToCreateAuth          = errors.New("failed to create auth")
	ErrFailedToCreateSSHClient     = errors.New("failed to create SSH client")
	ErrFailedToTestSSHConnection   = errors.New("failed to test SSH connection")
	ErrFailedToLoadKnownHosts      = errors.New("failed to load known_hosts")
)

// Command execution errors
var (
	ErrPythonNotInstalled        = errors.New("python runtime is not installed on the remote host")
	ErrFailedToGetPythonVersion  = errors.New("failed to get python version")
	ErrFailedToCreateRemoteShell = errors.New("failed to create remote command")
)
