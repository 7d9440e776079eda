package main

import (
	"fmt"
	"os"

	"github.com/WB-TFS-SCADA1/deployAutomation/cmd/deployctl/commands"
	"github.com/WB-TFS-SCADA1/deployAutomation/cmd/deployctl/config"
	"github.com/WB-TFS-SCADA1/deployAutomation/internal/database"
	"github.com/WB-TFS-SCADA1/deployAutomation/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deployctl",
	Short: "Deploy Python projects from Git repositories to remote servers over SSH",
	Long: `deployctl automates deployment of a Python script/project from a Git
repository onto a remote Linux server over SSH: it clones a repository branch,
verifies the remote Python runtime, uploads the files to /opt/<name>,
provisions a virtual environment, wires up a .env secrets file, installs a
runner script and optionally schedules periodic execution via crontab.

Each run is a single sequential pass with no rollback: a failure aborts the
remaining steps and may leave the server partially provisioned.`,
	Version: fmt.Sprintf("%s (commit: %s, date: %s); db path: %s; profile: %s", version.Version, version.Commit, version.Date, config.DatabasePath, config.Profile),
}

func main() {
	os.Exit(run())
}

func run() int {
	db, err := database.InitDB()

	if err != nil {
		rootCmd.PrintErrf("Failed to initialize database at %s: %v\n", config.Config.DatabasePath, err)
		db = nil
	}

	if db != nil {
		defer func() {
			if err := database.CloseDB(db); err != nil {
				rootCmd.PrintErrf("Failed to close database: %v\n", err)
			}
		}()
	}

	commands.RegisterCommands(rootCmd, db)

	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrf("%v\n", err)
		return 1
	}

	return 0
}
