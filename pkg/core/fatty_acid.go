// Package core provides the fatty-acid inventory, the modification and lipid
// class catalogs, and the error types shared by the lipidome estimators.
package core

import (
	"fmt"
	"sort"
	"strings"
)

// FattyAcid is a single acyl chain from the FA list.
type FattyAcid struct {
	Name        string // Abbreviation, e.g. "FA 18:2"
	Carbons     int    // 0 when the FA list has no carbon column
	DoubleBonds int
}

// Validate checks that a fatty acid can take part in an inventory.
func (fa *FattyAcid) Validate() error {
	var errs []string

	if fa.DoubleBonds < 0 {
		errs = append(errs, "double bond count must be non-negative")
	}
	if fa.Carbons < 0 {
		errs = append(errs, "carbon count must be non-negative")
	}
	if fa.Carbons > 0 && fa.DoubleBonds >= fa.Carbons {
		errs = append(errs, "double bond count must be smaller than carbon count")
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   fa.Label(),
			Message: strings.Join(errs, "; "),
		}
	}

	return nil
}

// Oxidizable reports whether the chain carries at least one double bond.
func (fa *FattyAcid) Oxidizable() bool {
	return fa.DoubleBonds > 0
}

// Label returns the name, or "C:DB" shorthand when the record has none.
func (fa *FattyAcid) Label() string {
	if fa.Name != "" {
		return fa.Name
	}
	return fmt.Sprintf("%d:%d", fa.Carbons, fa.DoubleBonds)
}

// Inventory is the immutable summary of an FA list used by the counters:
// the total number of chains F and the number of chains per double-bond count,
// restricted to chains with at least one double bond.
type Inventory struct {
	total        int
	byDoubleBond map[int]int
	doubleBonds  []int
}

// NewInventory validates every entry and summarizes the list.
func NewInventory(fas []FattyAcid) (*Inventory, error) {
	byDB := make(map[int]int)
	for i := range fas {
		if err := fas[i].Validate(); err != nil {
			return nil, err
		}
		if fas[i].Oxidizable() {
			byDB[fas[i].DoubleBonds]++
		}
	}
	return NewInventoryFromCounts(len(fas), byDB)
}

// NewInventoryFromCounts builds an inventory from precomputed counts. Keys of
// byDoubleBond must be positive, values at least 1, and their sum at most total.
func NewInventoryFromCounts(total int, byDoubleBond map[int]int) (*Inventory, error) {
	if total < 0 {
		return nil, &ValidationError{Field: "Inventory", Message: "total count must be non-negative"}
	}

	inv := &Inventory{
		total:        total,
		byDoubleBond: make(map[int]int, len(byDoubleBond)),
	}

	sum := 0
	for n, count := range byDoubleBond {
		if n <= 0 {
			return nil, &ValidationError{
				Field:   "Inventory",
				Message: fmt.Sprintf("double bond key %d must be positive", n),
			}
		}
		if count < 1 {
			return nil, &ValidationError{
				Field:   "Inventory",
				Message: fmt.Sprintf("count for %d double bonds must be at least 1, got %d", n, count),
			}
		}
		inv.byDoubleBond[n] = count
		inv.doubleBonds = append(inv.doubleBonds, n)
		sum += count
	}

	if sum > total {
		return nil, &ValidationError{
			Field:   "Inventory",
			Message: fmt.Sprintf("%d oxidizable chains exceed total count %d", sum, total),
		}
	}

	sort.Ints(inv.doubleBonds)
	return inv, nil
}

// Total returns F, the number of chains including saturated ones.
func (inv *Inventory) Total() int {
	return inv.total
}

// Oxidizable returns the number of chains with at least one double bond.
func (inv *Inventory) Oxidizable() int {
	sum := 0
	for _, count := range inv.byDoubleBond {
		sum += count
	}
	return sum
}

// CountWithDoubleBonds returns the number of chains with exactly n double bonds.
// Zero and negative n always report 0.
func (inv *Inventory) CountWithDoubleBonds(n int) int {
	return inv.byDoubleBond[n]
}

// DoubleBondValues returns the distinct double-bond counts in ascending order.
func (inv *Inventory) DoubleBondValues() []int {
	out := make([]int, len(inv.doubleBonds))
	copy(out, inv.doubleBonds)
	return out
}
