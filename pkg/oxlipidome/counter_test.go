package oxlipidome

import (
	"math/big"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ChrisMcGann/OxLipidome/pkg/core"
)

// scenarioInventory is F=3 with one 18:2-like and one 18:3-like chain.
func scenarioInventory(t *testing.T) *core.Inventory {
	t.Helper()
	inv, err := core.NewInventoryFromCounts(3, map[int]int{2: 1, 3: 1})
	require.NoError(t, err)
	return inv
}

func newTestCounter(t *testing.T, opts ...Option) *Counter {
	t.Helper()
	return NewCounter(scenarioInventory(t), core.DefaultModificationCatalog(), opts...)
}

func TestAdditionCount(t *testing.T) {
	c := newTestCounter(t)

	tests := []struct {
		m            int
		siteSpecific bool
		want         int64
	}{
		{m: 0, siteSpecific: false, want: 0},
		{m: 0, siteSpecific: true, want: 0},
		{m: 1, siteSpecific: false, want: 4},
		{m: 1, siteSpecific: true, want: 3},
		{m: 2, siteSpecific: false, want: 14},
		{m: 2, siteSpecific: true, want: 15},
		{m: 3, siteSpecific: false, want: 34},
		{m: 3, siteSpecific: true, want: 63},
		{m: 4, siteSpecific: false, want: 69},
		{m: 4, siteSpecific: true, want: 255},
	}

	for _, tt := range tests {
		got, err := c.AdditionCount(tt.m, tt.siteSpecific)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Int64(), "m=%d siteSpecific=%v", tt.m, tt.siteSpecific)
	}
}

func TestAdditionCountModesCompared(t *testing.T) {
	// m=1: combination counts every label, site-specific drops one.
	// Site-specific overtakes combination once L^m >= C(L+m, m).
	siteSpecificAtLeast := func(labels, m int) bool {
		return (labels >= 4 && m >= 2) || (labels >= 3 && m >= 3) || m >= 4
	}

	for labels := 2; labels <= 5; labels++ {
		c := NewCounter(scenarioInventory(t), modsWithSizes(t, labels, 2, 10, 4))
		for m := 1; m <= 6; m++ {
			combination, err := c.AdditionCount(m, false)
			require.NoError(t, err)
			siteSpecific, err := c.AdditionCount(m, true)
			require.NoError(t, err)

			switch {
			case m == 1:
				assert.Equal(t, int64(labels), combination.Int64(), "labels=%d", labels)
				assert.Equal(t, int64(labels-1), siteSpecific.Int64(), "labels=%d", labels)
			case siteSpecificAtLeast(labels, m):
				assert.GreaterOrEqual(t, siteSpecific.Cmp(combination), 0, "labels=%d m=%d", labels, m)
			default:
				assert.Equal(t, 1, combination.Cmp(siteSpecific), "labels=%d m=%d", labels, m)
			}
		}
	}
}

func TestAdditionCountErrors(t *testing.T) {
	c := newTestCounter(t)
	_, err := c.AdditionCount(-1, false)
	var domainErr *core.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "m", domainErr.Param)

	empty := NewCounter(scenarioInventory(t), modsWithSizes(t, 0, 2, 10, 4))
	_, err = empty.AdditionCount(2, true)
	var configErr *core.ConfigurationError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, "m_oap", configErr.Key)
}

func TestCleavageCount(t *testing.T) {
	c := newTestCounter(t)

	tests := []struct {
		m            int
		siteSpecific bool
		want         int64
	}{
		{m: -2, siteSpecific: false, want: 0},
		{m: 0, siteSpecific: false, want: 0},
		{m: 1, siteSpecific: false, want: 2},
		{m: 2, siteSpecific: false, want: 2},
		{m: 3, siteSpecific: false, want: 12},
		{m: 3, siteSpecific: true, want: 10},
		{m: 4, siteSpecific: false, want: 42},
		{m: 4, siteSpecific: true, want: 42},
	}

	for _, tt := range tests {
		got, err := c.CleavageCount(tt.m, tt.siteSpecific)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Int64(), "m=%d siteSpecific=%v", tt.m, tt.siteSpecific)
	}
}

func TestCyclicCount(t *testing.T) {
	c := newTestCounter(t)

	for nDB := 0; nDB < 3; nDB++ {
		for _, ss := range []bool{false, true} {
			got, err := c.CyclicCount(nDB, ss)
			require.NoError(t, err)
			assert.Zero(t, got.Sign())
		}
	}

	got, err := c.CyclicCount(3, false)
	require.NoError(t, err)
	assert.Equal(t, int64(14), got.Int64())

	got, err = c.CyclicCount(6, false)
	require.NoError(t, err)
	assert.Equal(t, int64(14), got.Int64())

	got, err = c.CyclicCount(6, true)
	require.NoError(t, err)
	assert.Equal(t, int64(56), got.Int64())

	_, err = c.CyclicCount(-1, false)
	var domainErr *core.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "n_db", domainErr.Param)
}

func TestTotalOxidizedChains(t *testing.T) {
	c := newTestCounter(t)

	tests := []struct {
		site         string
		siteSpecific bool
		want         int64
	}{
		{site: "bis-allylic", siteSpecific: false, want: 36},
		{site: "bis allylic", siteSpecific: false, want: 36},
		{site: "db", siteSpecific: false, want: 76},
		{site: "C=C", siteSpecific: false, want: 76},
		{site: "allylic", siteSpecific: false, want: 171},
		{site: "bis-allylic", siteSpecific: true, want: 36},
		{site: "n_db", siteSpecific: true, want: 104},
		{site: "allylic", siteSpecific: true, want: 384},
	}

	for _, tt := range tests {
		t.Run(tt.site, func(t *testing.T) {
			got, err := c.TotalOxidizedChains(tt.site, tt.siteSpecific)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Int64())
		})
	}
}

func TestBreakdown(t *testing.T) {
	c := newTestCounter(t)

	breakdown, err := c.Breakdown("bis-allylic", false)
	require.NoError(t, err)
	require.Len(t, breakdown, 2)

	assert.Equal(t, 2, breakdown[0].DoubleBonds)
	assert.Equal(t, 1, breakdown[0].Sites)
	assert.Equal(t, int64(4), breakdown[0].Additions.Int64())
	assert.Equal(t, int64(2), breakdown[0].Cleavages.Int64())
	assert.Equal(t, int64(0), breakdown[0].Cyclic.Int64())
	assert.Equal(t, int64(6), breakdown[0].Total.Int64())

	assert.Equal(t, 3, breakdown[1].DoubleBonds)
	assert.Equal(t, 2, breakdown[1].Sites)
	assert.Equal(t, int64(14), breakdown[1].Additions.Int64())
	assert.Equal(t, int64(2), breakdown[1].Cleavages.Int64())
	assert.Equal(t, int64(14), breakdown[1].Cyclic.Int64())
	assert.Equal(t, int64(30), breakdown[1].Total.Int64())
}

func TestUnknownSiteFallsBack(t *testing.T) {
	zc, logs := observer.New(zap.WarnLevel)
	c := newTestCounter(t, WithLogger(zap.New(zc)))

	got, err := c.TotalOxidizedChains("benzylic", false)
	require.NoError(t, err)
	assert.Equal(t, int64(36), got.Int64())

	entries := logs.FilterField(zap.String("site", "benzylic")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
}

func TestTotalOxidizedChainsIdempotent(t *testing.T) {
	c := newTestCounter(t)
	first, err := c.TotalOxidizedChains("allylic", true)
	require.NoError(t, err)
	second, err := c.TotalOxidizedChains("allylic", true)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Cmp(second))
}

func TestTotalOxidizedChainsExceedsInt64(t *testing.T) {
	inv, err := core.NewInventoryFromCounts(1, map[int]int{40: 1})
	require.NoError(t, err)
	c := NewCounter(inv, core.DefaultModificationCatalog())

	got, err := c.TotalOxidizedChains("allylic", true)
	require.NoError(t, err)

	limit := new(big.Int).SetUint64(1 << 63)
	assert.Equal(t, 1, got.Cmp(limit))
}

func modsWithSizes(t *testing.T, additions, cleavages, rings, other int) *core.ModificationCatalog {
	t.Helper()
	labels := func(prefix string, n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = prefix + string(rune('A'+i))
		}
		return out
	}
	mods, err := core.NewModificationCatalog(map[core.ModificationFamily][]string{
		core.FamilyAddition:    labels("add", additions),
		core.FamilyCleavage:    labels("cut", cleavages),
		core.FamilyRing:        labels("ring", rings),
		core.FamilyOtherCyclic: labels("other", other),
	})
	require.NoError(t, err)
	return mods
}
