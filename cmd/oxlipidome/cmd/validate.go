package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/OxLipidome/pkg/core"
)

var validateCmd = &cobra.Command{
	Use:   "validate [config]",
	Short: "Validate configuration, catalogs and FA list",
	Long: `Load a configuration file (or the defaults), build the modification and lipid
class catalogs and read the FA list, reporting the first problem found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := configFile
	if len(args) == 1 {
		path = args[0]
	}

	cfg, logger, err := loadSettings(cmd, path)
	if err != nil {
		return err
	}
	defer logger.Sync()

	in, err := loadInputs(cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration OK (%s)\n", siteSummary(cfg))
	fmt.Fprintf(out, "FAs: %d (%d oxidizable)\n", in.Inventory.Total(), in.Inventory.Oxidizable())
	fmt.Fprintf(out, "Modifications: m_oap=%d m_ocp=%d cyclic=%d\n",
		in.Modifications.Additions(), in.Modifications.Cleavages(), in.Modifications.Cyclic())
	for sites := 1; sites <= core.MaxChainSites; sites++ {
		fmt.Fprintf(out, "x%d: %d classes", sites, in.Classes.Size(sites))
		for _, class := range in.Classes.Classes(sites) {
			if class.Tag != core.TagOrdinary {
				fmt.Fprintf(out, ", %s=%s", class.Name, class.Tag)
			}
		}
		fmt.Fprintln(out)
	}

	return nil
}
