// Package lipidome estimates the number of unmodified lipid species that can be
// assembled from a fatty-acid inventory and a lipid class catalog.
package lipidome

import (
	"math/big"

	"github.com/ChrisMcGann/OxLipidome/pkg/combinatorics"
	"github.com/ChrisMcGann/OxLipidome/pkg/core"
)

// Estimator counts unoxidized lipid species.
type Estimator struct {
	inventory *core.Inventory
	classes   *core.LipidClassCatalog
}

// NewEstimator creates an estimator.
func NewEstimator(inventory *core.Inventory, classes *core.LipidClassCatalog) *Estimator {
	return &Estimator{inventory: inventory, classes: classes}
}

// Estimate returns the number of unoxidized lipid species.
//
// Combination counting draws the chains of a class with k sites as a multiset,
// C(F+k-1, k). Site-specific counting orders the chains, adds the extra glycerol
// positions of lyso-phospholipids, MG and DG, and collapses mirrored
// assignments on the TG and CL backbones.
func (e *Estimator) Estimate(siteSpecific bool) (*big.Int, error) {
	f := combinatorics.Int(e.inventory.Total())

	if !siteSpecific {
		total := new(big.Int)
		for sites := 1; sites <= core.MaxChainSites; sites++ {
			n := combinatorics.Int(e.classes.Size(sites))
			total.Add(total, n.Mul(n, combinatorics.MultisetChoose(f, sites)))
		}
		return total, nil
	}

	total := new(big.Int).Mul(combinatorics.Int(e.classes.SingleChainPositions()), f)

	n := combinatorics.Int(e.classes.Size(2))
	total.Add(total, n.Mul(n, combinatorics.Pow(f, 2)))

	// DG with the free hydroxyl at sn2 leaves an unordered sn1/sn3 pair.
	nDG := combinatorics.Int(e.classes.CountTagged(2, core.TagDiacylglycerol))
	total.Add(total, nDG.Mul(nDG, combinatorics.UnorderedPairs(f)))

	for _, sym := range []struct {
		sites int
		tag   core.ClassTag
	}{
		{sites: 3, tag: core.TagTriacylglycerol},
		{sites: 4, tag: core.TagCardiolipin},
	} {
		tagged := e.classes.CountTagged(sym.sites, sym.tag)

		mirrored, err := combinatorics.CountNoMirror(f, sym.sites)
		if err != nil {
			return nil, err
		}
		total.Add(total, mirrored.Mul(mirrored, combinatorics.Int(tagged)))

		other := combinatorics.Int(e.classes.Size(sym.sites) - tagged)
		total.Add(total, other.Mul(other, combinatorics.Pow(f, sym.sites)))
	}

	return total, nil
}
