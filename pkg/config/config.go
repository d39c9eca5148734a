// Package config loads the estimation settings and catalogs with viper.
package config

import (
	"os"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ChrisMcGann/OxLipidome/pkg/core"
	"github.com/ChrisMcGann/OxLipidome/pkg/filter"
	"github.com/ChrisMcGann/OxLipidome/pkg/reader/falist"
)

// EnvPrefix is the prefix of environment overrides, e.g. OXLIPIDOME_SITE.
const EnvPrefix = "OXLIPIDOME"

// Config holds every setting of an estimation run.
type Config struct {
	FAList           string              `mapstructure:"fa_list" yaml:"fa_list"`
	Site             string              `mapstructure:"site" yaml:"site"`
	SiteSpecific     bool                `mapstructure:"site_specific" yaml:"site_specific"`
	ModificationsCSV string              `mapstructure:"modifications_csv" yaml:"modifications_csv"`
	Modifications    map[string][]string `mapstructure:"modifications" yaml:"modifications"`
	LipidClasses     map[string][]string `mapstructure:"lipid_classes" yaml:"lipid_classes"`
	ClassTags        map[string]string   `mapstructure:"class_tags" yaml:"class_tags"`
	Filter           FilterConfig        `mapstructure:"filter" yaml:"filter"`
	Output           OutputConfig        `mapstructure:"output" yaml:"output"`
	Log              LogConfig           `mapstructure:"log" yaml:"log"`
}

// FilterConfig restricts the FA list before the inventory is built.
type FilterConfig struct {
	MaxDoubleBonds int      `mapstructure:"max_double_bonds" yaml:"max_double_bonds"`
	MinCarbons     int      `mapstructure:"min_carbons" yaml:"min_carbons"`
	MaxCarbons     int      `mapstructure:"max_carbons" yaml:"max_carbons"`
	Exclude        []string `mapstructure:"exclude" yaml:"exclude"`
}

// OutputConfig controls where results go.
type OutputConfig struct {
	DB     string `mapstructure:"db" yaml:"db"`
	Format string `mapstructure:"format" yaml:"format"`
}

// LogConfig controls the logger.
type LogConfig struct {
	JSON    bool `mapstructure:"json" yaml:"json"`
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
}

// SetDefaults installs the default settings and catalogs.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("fa_list", "")
	v.SetDefault("site", string(core.DefaultSiteMode))
	v.SetDefault("site_specific", false)
	v.SetDefault("modifications_csv", "")

	for family, labels := range core.DefaultModificationLabels() {
		v.SetDefault("modifications."+string(family), labels)
	}
	for key, names := range core.DefaultLipidClassBuckets() {
		v.SetDefault("lipid_classes."+key, names)
	}
	v.SetDefault("class_tags", map[string]string{})

	v.SetDefault("filter.max_double_bonds", 0)
	v.SetDefault("filter.min_carbons", 0)
	v.SetDefault("filter.max_carbons", 0)
	v.SetDefault("filter.exclude", []string{})

	v.SetDefault("output.db", "")
	v.SetDefault("output.format", "table")

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbose", false)
}

// NewViper returns a viper instance with defaults, environment overrides and,
// when path is not empty, the given config file. The format follows the file
// extension (yaml, toml or json).
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WithHint(
				errors.Wrapf(err, "failed to read config file %s", path),
				"run 'oxlipidome config init' to write a default configuration")
		}
	}

	return v, nil
}

// Load reads the configuration from defaults, the optional file and the
// environment.
func Load(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// LoadWithViper loads configuration using a provided viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// Default returns the default configuration.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Catalogs builds the modification and lipid class catalogs, applying class
// tag overrides in name order.
func (c *Config) Catalogs() (*core.ModificationCatalog, *core.LipidClassCatalog, error) {
	mods, err := c.modificationCatalog()
	if err != nil {
		return nil, nil, err
	}

	classes, err := core.NewLipidClassCatalog(c.LipidClasses)
	if err != nil {
		return nil, nil, errors.WithHint(errors.Wrap(err, "invalid lipid classes"),
			"lipid_classes needs the keys x1, x2, x3 and x4")
	}

	names := make([]string, 0, len(c.ClassTags))
	for name := range c.ClassTags {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tag, err := core.ParseClassTag(c.ClassTags[name])
		if err != nil {
			return nil, nil, errors.WithHint(
				&core.ConfigurationError{Key: "class_tags", Message: err.Error()},
				"valid tags: ordinary, lyso, monoacylglycerol, diacylglycerol, triacylglycerol, cardiolipin")
		}
		if classes, err = classes.WithTag(name, tag); err != nil {
			return nil, nil, errors.Wrapf(err, "invalid class tag for %s", name)
		}
	}

	return mods, classes, nil
}

func (c *Config) modificationCatalog() (*core.ModificationCatalog, error) {
	if c.ModificationsCSV != "" {
		f, err := os.Open(c.ModificationsCSV)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open modification table")
		}
		defer f.Close()

		mods, err := core.ReadModificationCSV(f)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid modification table %s", c.ModificationsCSV)
		}
		return mods, nil
	}

	labels := make(map[core.ModificationFamily][]string, len(c.Modifications))
	for family, values := range c.Modifications {
		labels[core.ModificationFamily(family)] = values
	}

	mods, err := core.NewModificationCatalog(labels)
	if err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "invalid modifications"),
			"modifications needs the keys m_oap, m_ocp, m_p and m_o")
	}
	return mods, nil
}

// FattyAcids reads the configured FA list, or the built-in list when none is
// set, and applies the filter settings.
func (c *Config) FattyAcids() ([]core.FattyAcid, error) {
	var (
		fas []core.FattyAcid
		err error
	)

	if c.FAList == "" {
		fas, err = falist.Default().ReadAll()
		if err != nil {
			return nil, errors.Wrap(err, "failed to read built-in FA list")
		}
	} else {
		f, err := os.Open(c.FAList)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open FA list")
		}
		defer f.Close()

		fas, err = falist.ReadAll(f)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read FA list %s", c.FAList)
		}
	}

	return c.FilterConfig().Apply(fas), nil
}

// Inventory reads the FA list and summarizes it.
func (c *Config) Inventory() (*core.Inventory, error) {
	fas, err := c.FattyAcids()
	if err != nil {
		return nil, err
	}

	inv, err := core.NewInventory(fas)
	if err != nil {
		return nil, errors.Wrap(err, "invalid FA list")
	}
	return inv, nil
}

// FilterConfig converts the filter settings.
func (c *Config) FilterConfig() *filter.Config {
	return &filter.Config{
		MaxDoubleBonds: c.Filter.MaxDoubleBonds,
		MinCarbons:     c.Filter.MinCarbons,
		MaxCarbons:     c.Filter.MaxCarbons,
		Exclude:        c.Filter.Exclude,
	}
}

// YAML renders the configuration as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode config")
	}
	return out, nil
}

// WriteDefault writes the default configuration to path. An existing file is
// not overwritten unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.WithHint(errors.Newf("config file %s already exists", path),
				"pass --force to overwrite it")
		}
	}

	out, err := Default().YAML()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}
	return nil
}
