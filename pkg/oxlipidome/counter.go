// Package oxlipidome estimates the number of oxidized fatty acids and oxidized
// lipid species that a fatty-acid inventory and modification catalog can form.
package oxlipidome

import (
	"math/big"

	"go.uber.org/zap"

	"github.com/ChrisMcGann/OxLipidome/pkg/combinatorics"
	"github.com/ChrisMcGann/OxLipidome/pkg/core"
)

// Option configures a Counter or Aggregator.
type Option func(*settings)

type settings struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for diagnostics such as site-mode fallback.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ChainCount is the oxidation product count contributed by all chains with a
// given number of double bonds.
type ChainCount struct {
	DoubleBonds int      `json:"double_bonds"`
	FattyAcids  int      `json:"fatty_acids"`
	Sites       int      `json:"sites"`
	Additions   *big.Int `json:"oap"`    // OAP per chain
	Cleavages   *big.Int `json:"ocp"`    // OCP per chain
	Cyclic      *big.Int `json:"cyclic"` // prostanes and other cyclic products per chain
	Total       *big.Int `json:"total"`  // FattyAcids * (Additions + Cleavages + Cyclic)
}

// Counter computes single-chain oxidation product counts. It never counts the
// unmodified chain.
type Counter struct {
	inventory *core.Inventory
	mods      *core.ModificationCatalog
	logger    *zap.Logger
}

// NewCounter creates a counter over an inventory and modification catalog.
func NewCounter(inventory *core.Inventory, mods *core.ModificationCatalog, opts ...Option) *Counter {
	s := newSettings(opts)
	return &Counter{
		inventory: inventory,
		mods:      mods,
		logger:    s.logger,
	}
}

// Inventory returns the fatty-acid inventory the counter works on.
func (c *Counter) Inventory() *core.Inventory {
	return c.inventory
}

// AdditionCount returns the number of oxygen addition products (OAP) on a chain
// with m modification sites. Combination counting distributes the addition
// labels over the sites as a multiset, C(|m_oap|+m, m) - 1; site-specific
// counting assigns a label or nothing to every site, |m_oap|^m - 1.
func (c *Counter) AdditionCount(m int, siteSpecific bool) (*big.Int, error) {
	if m < 0 {
		return nil, &core.DomainError{Param: "m", Value: m, Message: "modification sites must be non-negative"}
	}

	labels := c.mods.Additions()
	if labels == 0 {
		return nil, &core.ConfigurationError{
			Key:     string(core.FamilyAddition),
			Message: "at least one oxygen addition label is required",
		}
	}

	var count *big.Int
	if siteSpecific {
		count = combinatorics.Pow(combinatorics.Int(labels), m)
	} else {
		count = combinatorics.Choose(combinatorics.Int(labels+m), m)
	}
	return count.Sub(count, big.NewInt(1)), nil
}

// CleavageCount returns the number of oxidative cleavage products (OCP) for a
// chain with m modification sites. Cleavage at every inner position i keeps a
// segment that may itself carry any OAP with i-1 sites, or none.
func (c *Counter) CleavageCount(m int, siteSpecific bool) (*big.Int, error) {
	if m <= 0 {
		return new(big.Int), nil
	}

	terminals := combinatorics.Int(c.mods.Cleavages())
	count := new(big.Int).Set(terminals)

	for i := 2; i < m; i++ {
		oap, err := c.AdditionCount(i-1, siteSpecific)
		if err != nil {
			return nil, err
		}
		oap.Add(oap, big.NewInt(1))
		count.Add(count, oap.Mul(oap, terminals))
	}

	return count, nil
}

// CyclicCount returns the number of prostane and other cyclic products of a
// chain with nDB double bonds. Rings need at least three double bonds; in
// site-specific counting every run of three consecutive double bonds is a
// separate ring position.
func (c *Counter) CyclicCount(nDB int, siteSpecific bool) (*big.Int, error) {
	if nDB < 0 {
		return nil, &core.DomainError{Param: "n_db", Value: nDB, Message: "double bond count must be non-negative"}
	}
	if nDB < 3 {
		return new(big.Int), nil
	}

	count := combinatorics.Int(c.mods.Cyclic())
	if siteSpecific {
		count.Mul(count, combinatorics.Int(nDB-2))
	}
	return count, nil
}

// ResolveSite parses a site selector, logging a warning when it falls back to
// the default mode.
func (c *Counter) ResolveSite(site string) core.SiteMode {
	mode, ok := core.ParseSiteMode(site)
	if !ok {
		c.logger.Warn("number of modification sites not defined, using default mode",
			zap.String("site", site),
			zap.String("default", string(core.DefaultSiteMode)))
	}
	return mode
}

// Breakdown returns the oxidized chain counts per double-bond count present in
// the inventory, in ascending order of double bonds.
func (c *Counter) Breakdown(site string, siteSpecific bool) ([]ChainCount, error) {
	mode := c.ResolveSite(site)

	var out []ChainCount
	for _, nDB := range c.inventory.DoubleBondValues() {
		m := mode.Sites(nDB)

		oap, err := c.AdditionCount(m, siteSpecific)
		if err != nil {
			return nil, err
		}
		ocp, err := c.CleavageCount(m, siteSpecific)
		if err != nil {
			return nil, err
		}
		cyclic, err := c.CyclicCount(nDB, siteSpecific)
		if err != nil {
			return nil, err
		}

		fas := c.inventory.CountWithDoubleBonds(nDB)
		total := new(big.Int).Add(oap, ocp)
		total.Add(total, cyclic)
		total.Mul(total, combinatorics.Int(fas))

		out = append(out, ChainCount{
			DoubleBonds: nDB,
			FattyAcids:  fas,
			Sites:       m,
			Additions:   oap,
			Cleavages:   ocp,
			Cyclic:      cyclic,
			Total:       total,
		})
	}

	c.logger.Debug("oxidized chain breakdown",
		zap.String("site", string(mode)),
		zap.Bool("site_specific", siteSpecific),
		zap.Int("double_bond_groups", len(out)))

	return out, nil
}

// TotalOxidizedChains returns F_ox, the number of distinct oxidized fatty acids
// the inventory can produce.
func (c *Counter) TotalOxidizedChains(site string, siteSpecific bool) (*big.Int, error) {
	breakdown, err := c.Breakdown(site, siteSpecific)
	if err != nil {
		return nil, err
	}

	total := new(big.Int)
	for _, chain := range breakdown {
		total.Add(total, chain.Total)
	}
	return total, nil
}
