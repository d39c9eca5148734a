// Package filter restricts the fatty-acid search space before counting.
package filter

import (
	"strings"

	"github.com/ChrisMcGann/OxLipidome/pkg/core"
)

// Config holds filtering configuration. Zero values disable a filter.
type Config struct {
	MaxDoubleBonds int      // Drop chains with more double bonds (0 = no limit)
	MinCarbons     int      // Drop chains with fewer carbons (0 = no limit)
	MaxCarbons     int      // Drop chains with more carbons (0 = no limit)
	Exclude        []string // Drop chains by name (case-insensitive)
}

// Active reports whether any filter is configured.
func (c *Config) Active() bool {
	return c.MaxDoubleBonds > 0 || c.MinCarbons > 0 || c.MaxCarbons > 0 || len(c.Exclude) > 0
}

// Apply returns the fatty acids that pass every configured filter. The input
// slice is not modified.
func (c *Config) Apply(fas []core.FattyAcid) []core.FattyAcid {
	excluded := make(map[string]bool, len(c.Exclude))
	for _, name := range c.Exclude {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			excluded[name] = true
		}
	}

	filtered := make([]core.FattyAcid, 0, len(fas))
	for _, fa := range fas {
		if c.MaxDoubleBonds > 0 && fa.DoubleBonds > c.MaxDoubleBonds {
			continue
		}
		// Carbon limits only apply when the FA list has a carbon column.
		if fa.Carbons > 0 {
			if c.MinCarbons > 0 && fa.Carbons < c.MinCarbons {
				continue
			}
			if c.MaxCarbons > 0 && fa.Carbons > c.MaxCarbons {
				continue
			}
		}
		if excluded[strings.ToLower(fa.Label())] {
			continue
		}
		filtered = append(filtered, fa)
	}

	return filtered
}
