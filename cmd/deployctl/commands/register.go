package commands

import (
	"github.com/WB-TFS-SCADA1/deployAutomation/internal/commands"
	"github.com/WB-TFS-SCADA1/deployAutomation/internal/deployments"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	deploymentsRepository *deployments.Repository
	commandsService       *commands.Service
)

func RegisterCommands(rootCmd *cobra.Command, db *gorm.DB) {
	if db != nil {
		deploymentsRepository = deployments.NewRepository(db)
	}

	commandsService = &commands.Service{
		DeploymentsRepository: deploymentsRepository,
	}

	rootCmd.AddCommand(DeployCmd)
	rootCmd.AddCommand(HistoryCmd)
}
