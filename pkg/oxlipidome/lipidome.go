package oxlipidome

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/ChrisMcGann/OxLipidome/pkg/combinatorics"
	"github.com/ChrisMcGann/OxLipidome/pkg/core"
)

// Aggregator folds oxidized chain counts into whole-lipid species counts over
// the lipid class catalog.
type Aggregator struct {
	counter *Counter
	classes *core.LipidClassCatalog
	logger  *zap.Logger
}

// NewAggregator creates an aggregator over a chain counter and class catalog.
func NewAggregator(counter *Counter, classes *core.LipidClassCatalog, opts ...Option) *Aggregator {
	s := newSettings(opts)
	return &Aggregator{
		counter: counter,
		classes: classes,
		logger:  s.logger,
	}
}

// SpeciesWithOneOxidizedChain returns T_ox, the number of lipid species that
// carry exactly one oxidized chain.
func (a *Aggregator) SpeciesWithOneOxidizedChain(site string, siteSpecific bool) (*big.Int, error) {
	fox, err := a.counter.TotalOxidizedChains(site, siteSpecific)
	if err != nil {
		return nil, err
	}
	return a.OneOxidized(fox, siteSpecific)
}

// SpeciesWithAllChainsOxidized returns T_ox^all, the number of lipid species
// whose chains are drawn from the oxidized pool, excluding the fully
// unoxidized baseline.
func (a *Aggregator) SpeciesWithAllChainsOxidized(site string, siteSpecific bool) (*big.Int, error) {
	fox, err := a.counter.TotalOxidizedChains(site, siteSpecific)
	if err != nil {
		return nil, err
	}
	return a.AllOxidized(fox, siteSpecific)
}

// OneOxidized computes T_ox from a precomputed F_ox.
func (a *Aggregator) OneOxidized(fox *big.Int, siteSpecific bool) (*big.Int, error) {
	f := combinatorics.Int(a.counter.Inventory().Total())

	var total *big.Int
	if siteSpecific {
		total = a.oneOxidizedSiteSpecific(fox, f)
	} else {
		total = a.oneOxidizedCombination(fox, f)
	}
	return a.checked("T_ox", total)
}

// AllOxidized computes T_ox^all from a precomputed F_ox.
func (a *Aggregator) AllOxidized(fox *big.Int, siteSpecific bool) (*big.Int, error) {
	f := combinatorics.Int(a.counter.Inventory().Total())

	var (
		total *big.Int
		err   error
	)
	if siteSpecific {
		total, err = a.allOxidizedSiteSpecific(fox, f)
		if err != nil {
			return nil, err
		}
	} else {
		total = a.allOxidizedCombination(fox, f)
	}
	return a.checked("T_ox_all", total)
}

// oneOxidizedCombination places the oxidized chain once and draws the
// remaining k-1 chains as a multiset from F.
func (a *Aggregator) oneOxidizedCombination(fox, f *big.Int) *big.Int {
	total := new(big.Int)
	for sites := 1; sites <= core.MaxChainSites; sites++ {
		rest := combinatorics.MultisetChoose(f, sites-1)
		total.Add(total, prod(classCount(a.classes.Size(sites)), fox, rest))
	}
	return total
}

func (a *Aggregator) oneOxidizedSiteSpecific(fox, f *big.Int) *big.Int {
	f2 := combinatorics.Pow(f, 2)
	f3 := combinatorics.Pow(f, 3)

	// x1: lyso-PL and MG chains sit at distinct glycerol positions.
	x1 := prod(classCount(a.classes.SingleChainPositions()), fox)

	// x2: DG adds oxFA on sn1/sn3 or sn2 next to the free hydroxyl.
	nDG := a.classes.CountTagged(2, core.TagDiacylglycerol)
	x2 := prod(classCount(a.classes.Size(2)+2*nDG), fox, f)

	// x3: oxFA on sn1/sn3 pairs with an ordered (sn2, sn3/sn1) pair; oxFA on
	// sn2 pairs with an unordered sn1/sn3 pair.
	nTG := a.classes.CountTagged(3, core.TagTriacylglycerol)
	tg := sum(prod(fox, f2), prod(fox, combinatorics.UnorderedPairs(f)))
	x3 := sum(
		prod(classCount(nTG), tg),
		prod(classCount(3*(a.classes.Size(3)-nTG)), fox, f2),
	)

	// x4: oxFA on sn1/sn4 or on sn2/sn3 of CL.
	nCL := a.classes.CountTagged(4, core.TagCardiolipin)
	cl := prod(big.NewInt(2), fox, f3)
	x4 := sum(
		prod(classCount(nCL), cl),
		prod(classCount(4*(a.classes.Size(4)-nCL)), fox, f3),
	)

	return sum(x1, x2, x3, x4)
}

// allOxidizedCombination counts multisets of k chains drawn from F_ox + F
// minus the multisets drawn from F alone.
func (a *Aggregator) allOxidizedCombination(fox, f *big.Int) *big.Int {
	pool := new(big.Int).Add(fox, f)

	total := new(big.Int)
	for sites := 1; sites <= core.MaxChainSites; sites++ {
		diff := new(big.Int).Sub(
			combinatorics.MultisetChoose(pool, sites),
			combinatorics.MultisetChoose(f, sites),
		)
		total.Add(total, prod(classCount(a.classes.Size(sites)), diff))
	}
	return total
}

func (a *Aggregator) allOxidizedSiteSpecific(fox, f *big.Int) (*big.Int, error) {
	pool := new(big.Int).Add(fox, f)
	f2 := combinatorics.Pow(f, 2)
	f3 := combinatorics.Pow(f, 3)
	fox2 := combinatorics.Pow(fox, 2)
	fox3 := combinatorics.Pow(fox, 3)
	pairsF := combinatorics.UnorderedPairs(f)
	pairsFox := combinatorics.UnorderedPairs(fox)

	x1 := prod(classCount(a.classes.SingleChainPositions()), fox)

	// x2: ordered sn1/sn2 assignments with at least one oxFA. DG with the free
	// hydroxyl at sn2 adds 1 or 2 oxFA on the symmetric sn1/sn3 pair.
	nDG := a.classes.CountTagged(2, core.TagDiacylglycerol)
	x2 := sum(
		prod(classCount(a.classes.Size(2)), excess(pool, f, 2)),
		prod(classCount(nDG), sum(prod(fox, f), fox2)),
	)

	nTG := a.classes.CountTagged(3, core.TagTriacylglycerol)
	allTG, err := combinatorics.CountNoMirror(fox, 3)
	if err != nil {
		return nil, err
	}
	tg := sum(
		prod(fox, f2),     // 1 oxFA on sn1/sn3
		prod(fox, pairsF), // 1 oxFA on sn2
		prod(f, pairsFox), // 2 oxFA on sn1 + sn3
		prod(f, fox2),     // 2 oxFA on sn1 + sn2 or sn2 + sn3
		allTG,             // 3 oxFA, mirror reduced
	)
	x3 := sum(
		prod(classCount(nTG), tg),
		prod(classCount(a.classes.Size(3)-nTG), excess(pool, f, 3)),
	)

	nCL := a.classes.CountTagged(4, core.TagCardiolipin)
	two := big.NewInt(2)
	// UP(F_ox)^2 - F_ox is the published 4-oxFA term; it is not CountNoMirror(fox, 4).
	allCL := prod(pairsFox, pairsFox)
	allCL.Sub(allCL, fox)
	cl := sum(
		prod(two, fox, f3),          // 1 oxFA on sn1/sn4 or sn2/sn3
		prod(two, pairsFox, pairsF), // 2 oxFA on sn1 + sn4 or sn2 + sn3
		prod(two, fox2, f2),         // 2 oxFA on sn1 + sn3 or sn1 + sn2
		prod(two, fox3, f),          // 3 oxFA
		allCL,                       // 4 oxFA
	)
	x4 := sum(
		prod(classCount(nCL), cl),
		prod(classCount(a.classes.Size(4)-nCL), excess(pool, f, 4)),
	)

	return sum(x1, x2, x3, x4), nil
}

// checked rejects negative totals, which only a misconfigured catalog produces.
func (a *Aggregator) checked(metric string, total *big.Int) (*big.Int, error) {
	if total.Sign() < 0 {
		a.logger.Error("negative species count", zap.String("metric", metric), zap.String("value", total.String()))
		return nil, &core.ConfigurationError{
			Key:     metric,
			Message: fmt.Sprintf("species count evaluated to %s", total),
		}
	}
	return total, nil
}

// excess returns pool^k - f^k, the ordered k-tuples with at least one oxFA.
func excess(pool, f *big.Int, k int) *big.Int {
	return new(big.Int).Sub(combinatorics.Pow(pool, k), combinatorics.Pow(f, k))
}

func classCount(n int) *big.Int {
	return combinatorics.Int(n)
}

func prod(factors ...*big.Int) *big.Int {
	out := big.NewInt(1)
	for _, factor := range factors {
		out.Mul(out, factor)
	}
	return out
}

func sum(terms ...*big.Int) *big.Int {
	out := new(big.Int)
	for _, term := range terms {
		out.Add(out, term)
	}
	return out
}
