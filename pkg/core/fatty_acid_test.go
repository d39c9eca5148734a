package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFattyAcidValidation(t *testing.T) {
	tests := []struct {
		name    string
		fa      FattyAcid
		wantErr bool
	}{
		{name: "saturated", fa: FattyAcid{Name: "FA 16:0", Carbons: 16}, wantErr: false},
		{name: "polyunsaturated", fa: FattyAcid{Name: "FA 22:6", Carbons: 22, DoubleBonds: 6}, wantErr: false},
		{name: "no carbon column", fa: FattyAcid{Name: "FA 20:4", DoubleBonds: 4}, wantErr: false},
		{name: "negative double bonds", fa: FattyAcid{Name: "bad", DoubleBonds: -1}, wantErr: true},
		{name: "negative carbons", fa: FattyAcid{Name: "bad", Carbons: -2}, wantErr: true},
		{name: "too many double bonds", fa: FattyAcid{Name: "FA 4:4", Carbons: 4, DoubleBonds: 4}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fa.Validate()
			if tt.wantErr {
				var valErr *ValidationError
				require.ErrorAs(t, err, &valErr)
				assert.Equal(t, tt.fa.Label(), valErr.Field)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFattyAcidLabel(t *testing.T) {
	assert.Equal(t, "FA 18:1", (&FattyAcid{Name: "FA 18:1", Carbons: 18, DoubleBonds: 1}).Label())
	assert.Equal(t, "18:2", (&FattyAcid{Carbons: 18, DoubleBonds: 2}).Label())
}

func TestNewInventory(t *testing.T) {
	inv, err := NewInventory([]FattyAcid{
		{Name: "FA 16:0", Carbons: 16},
		{Name: "FA 18:0", Carbons: 18},
		{Name: "FA 18:1", Carbons: 18, DoubleBonds: 1},
		{Name: "FA 18:2", Carbons: 18, DoubleBonds: 2},
		{Name: "FA 20:2", Carbons: 20, DoubleBonds: 2},
		{Name: "FA 22:6", Carbons: 22, DoubleBonds: 6},
	})
	require.NoError(t, err)

	assert.Equal(t, 6, inv.Total())
	assert.Equal(t, 4, inv.Oxidizable())
	assert.Equal(t, []int{1, 2, 6}, inv.DoubleBondValues())
	assert.Equal(t, 2, inv.CountWithDoubleBonds(2))
	assert.Equal(t, 0, inv.CountWithDoubleBonds(0))
	assert.Equal(t, 0, inv.CountWithDoubleBonds(3))
}

func TestNewInventoryRejectsInvalidEntry(t *testing.T) {
	_, err := NewInventory([]FattyAcid{{Name: "FA 18:1", DoubleBonds: 1}, {Name: "broken", DoubleBonds: -3}})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "broken", valErr.Field)
}

func TestNewInventoryFromCounts(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		byDB    map[int]int
		wantErr bool
	}{
		{name: "valid", total: 3, byDB: map[int]int{2: 1, 3: 1}},
		{name: "empty", total: 0, byDB: nil},
		{name: "all saturated", total: 4, byDB: map[int]int{}},
		{name: "negative total", total: -1, wantErr: true},
		{name: "zero key", total: 3, byDB: map[int]int{0: 1}, wantErr: true},
		{name: "zero count", total: 3, byDB: map[int]int{2: 0}, wantErr: true},
		{name: "sum exceeds total", total: 2, byDB: map[int]int{1: 2, 2: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInventoryFromCounts(tt.total, tt.byDB)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInventoryIsImmutable(t *testing.T) {
	byDB := map[int]int{2: 1}
	inv, err := NewInventoryFromCounts(2, byDB)
	require.NoError(t, err)

	byDB[2] = 5
	values := inv.DoubleBondValues()
	values[0] = 99

	assert.Equal(t, 1, inv.CountWithDoubleBonds(2))
	assert.Equal(t, []int{2}, inv.DoubleBondValues())
}
