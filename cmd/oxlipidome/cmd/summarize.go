package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/OxLipidome/pkg/report"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [fa-list]",
	Short: "Summarize FA list contents",
	Long:  `Print the number of fatty acids per double bond count of an FA list (or the built-in list).`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadSettings(cmd, configFile)
		if err != nil {
			return err
		}
		defer logger.Sync()

		if len(args) == 1 {
			cfg.FAList = args[0]
		}

		inv, err := cfg.Inventory()
		if err != nil {
			return err
		}
		return report.RenderInventory(cmd.OutOrStdout(), inv)
	},
}
