package lipidome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChrisMcGann/OxLipidome/pkg/core"
)

func inventory(t *testing.T, total int, byDB map[int]int) *core.Inventory {
	t.Helper()
	inv, err := core.NewInventoryFromCounts(total, byDB)
	require.NoError(t, err)
	return inv
}

func classes(t *testing.T, x1, x2, x3, x4 []string) *core.LipidClassCatalog {
	t.Helper()
	c, err := core.NewLipidClassCatalog(map[string][]string{
		"x1": x1, "x2": x2, "x3": x3, "x4": x4,
	})
	require.NoError(t, err)
	return c
}

func TestEstimate(t *testing.T) {
	small := inventory(t, 3, map[int]int{2: 1, 3: 1})
	rich := inventory(t, 6, map[int]int{1: 1, 2: 2, 4: 1, 6: 1})

	tests := []struct {
		name         string
		inv          *core.Inventory
		classes      *core.LipidClassCatalog
		siteSpecific bool
		want         int64
	}{
		{name: "default combination", inv: small, classes: core.DefaultLipidClassCatalog(), want: 100},
		{name: "default site specific", inv: small, classes: core.DefaultLipidClassCatalog(), siteSpecific: true, want: 189},
		{name: "rich combination", inv: rich, classes: core.DefaultLipidClassCatalog(), want: 395},
		{name: "rich site specific", inv: rich, classes: core.DefaultLipidClassCatalog(), siteSpecific: true, want: 1179},
		{name: "TG mirror reduced", inv: small, classes: classes(t, nil, nil, []string{"TG"}, nil), siteSpecific: true, want: 18},
		{name: "other x3 ordered", inv: small, classes: classes(t, nil, nil, []string{"Wax"}, nil), siteSpecific: true, want: 27},
		{name: "CL mirror reduced", inv: small, classes: classes(t, nil, nil, nil, []string{"CL"}), siteSpecific: true, want: 45},
		{name: "other x4 ordered", inv: small, classes: classes(t, nil, nil, nil, []string{"BMP2"}), siteSpecific: true, want: 81},
		{name: "empty catalog", inv: small, classes: classes(t, nil, nil, nil, nil), siteSpecific: true, want: 0},
		{name: "empty inventory", inv: inventory(t, 0, nil), classes: core.DefaultLipidClassCatalog(), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEstimator(tt.inv, tt.classes).Estimate(tt.siteSpecific)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Int64())
		})
	}
}

func TestEstimateMonotonicInInventory(t *testing.T) {
	catalog := core.DefaultLipidClassCatalog()
	for _, ss := range []bool{false, true} {
		prev, err := NewEstimator(inventory(t, 0, nil), catalog).Estimate(ss)
		require.NoError(t, err)
		for f := 1; f <= 12; f++ {
			got, err := NewEstimator(inventory(t, f, nil), catalog).Estimate(ss)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got.Cmp(prev), 0, "F=%d siteSpecific=%v", f, ss)
			prev = got
		}
	}
}

func TestEstimateIdempotent(t *testing.T) {
	e := NewEstimator(inventory(t, 20, map[int]int{1: 4, 2: 3, 4: 2, 6: 1}), core.DefaultLipidClassCatalog())
	first, err := e.Estimate(true)
	require.NoError(t, err)
	second, err := e.Estimate(true)
	require.NoError(t, err)
	assert.Equal(t, first.String(), second.String())
}
