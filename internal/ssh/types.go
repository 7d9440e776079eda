package ssh

// Credentials represents different types of SSH authentication
type Credentials struct {
	Host     string
	Port     uint
	Username string
	// Password authentication
	Password string
	// Key-based authentication
	PrivateKeyPath string
	// Passphrase for private key (if encrypted)
	Passphrase string
	// TrustUnknownHosts accepts unknown host identities without confirmation.
	// When false, the host key is checked against the user's known_hosts file.
	TrustUnknownHosts bool
}

// Zero drops the secrets held in memory once they are no longer needed.
func (c *Credentials) Zero() {
	c.Password = ""
	c.Passphrase = ""
}

type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Error    error
}
