// Package cmd provides CLI command implementations
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ChrisMcGann/OxLipidome/pkg/config"
	"github.com/ChrisMcGann/OxLipidome/pkg/logging"
)

var (
	// Global flags
	configFile string
	faListFile string
	jsonLog    bool
	verbose    bool
)

// flagKeys maps command line flags to configuration keys. Flags only override
// the configuration when set explicitly.
var flagKeys = map[string]string{
	"fa-list":       "fa_list",
	"json-log":      "log.json",
	"verbose":       "log.verbose",
	"site":          "site",
	"site-specific": "site_specific",
	"format":        "output.format",
	"db":            "output.db",
	"max-db":        "filter.max_double_bonds",
	"min-carbons":   "filter.min_carbons",
	"max-carbons":   "filter.max_carbons",
	"exclude":       "filter.exclude",
}

var rootCmd = &cobra.Command{
	Use:   "oxlipidome",
	Short: "OxLipidome - oxidized lipidome size estimation tool",
	Long: `OxLipidome estimates how many unoxidized and oxidized lipid species a fatty acid
list, a set of oxidative modifications and a set of lipid classes can form.

Counts are exact integers and support:
- Combination and site-specific counting
- Bis-allylic, allylic and double bond modification sites
- Oxygen addition, cleavage and cyclic products
- Symmetric head groups (TG, CL) without mirror duplicates`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (yaml, toml or json)")
	rootCmd.PersistentFlags().StringVar(&faListFile, "fa-list", "", "FA list CSV/TSV file (default: built-in list)")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "Write JSON structured logs")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}

// loadSettings reads the configuration file given by path, environment
// overrides and explicitly set flags, and builds the logger.
func loadSettings(cmd *cobra.Command, path string) (*config.Config, *zap.Logger, error) {
	v, err := config.NewViper(path)
	if err != nil {
		return nil, nil, err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, nil, err
	}

	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(logging.Options{JSON: cfg.Log.JSON, Verbose: cfg.Log.Verbose})
	if path != "" {
		logger.Debug("loaded config", zap.String("path", path))
	}
	return cfg, logger, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}
