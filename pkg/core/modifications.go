package core

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ModificationFamily names one of the four label sets of a ModificationCatalog.
type ModificationFamily string

const (
	FamilyAddition    ModificationFamily = "m_oap" // oxygen addition
	FamilyCleavage    ModificationFamily = "m_ocp" // cleavage terminal
	FamilyRing        ModificationFamily = "m_p"   // prostane rings
	FamilyOtherCyclic ModificationFamily = "m_o"   // isoketals, thromboxanes
)

// ModificationFamilies lists the families in catalog order.
var ModificationFamilies = []ModificationFamily{
	FamilyAddition,
	FamilyCleavage,
	FamilyRing,
	FamilyOtherCyclic,
}

// ModificationCatalog stores the oxidative modification labels. Only the size
// of each set enters the formulas.
type ModificationCatalog struct {
	labels map[ModificationFamily][]string
}

// NewModificationCatalog builds a catalog from a family -> labels map. Every
// family must be present; duplicate and blank labels are dropped.
func NewModificationCatalog(labels map[ModificationFamily][]string) (*ModificationCatalog, error) {
	c := &ModificationCatalog{labels: make(map[ModificationFamily][]string, len(ModificationFamilies))}

	for _, family := range ModificationFamilies {
		raw, ok := labels[family]
		if !ok {
			return nil, &ConfigurationError{
				Key:     string(family),
				Message: "modification family is missing",
			}
		}
		c.labels[family] = dedupe(raw)
	}

	for family := range labels {
		if !isFamily(family) {
			return nil, &ConfigurationError{
				Key:     string(family),
				Message: "unknown modification family",
			}
		}
	}

	return c, nil
}

// ReadModificationCSV loads a catalog from CSV (format: family,label). The
// first line is a header.
func ReadModificationCSV(r io.Reader) (*ModificationCatalog, error) {
	scanner := bufio.NewScanner(r)

	// Skip header line
	scanner.Scan()

	labels := make(map[ModificationFamily][]string)
	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			return nil, fmt.Errorf("line %d: expected 2 fields (family,label), got %d", lineNum, len(parts))
		}

		family := ModificationFamily(strings.TrimSpace(parts[0]))
		if !isFamily(family) {
			return nil, fmt.Errorf("line %d: unknown modification family '%s'", lineNum, family)
		}
		labels[family] = append(labels[family], strings.TrimSpace(parts[1]))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}

	// A family with no rows is present but empty.
	for _, family := range ModificationFamilies {
		if _, ok := labels[family]; !ok {
			labels[family] = nil
		}
	}

	return NewModificationCatalog(labels)
}

// DefaultModificationCatalog returns the catalog used by the published estimates.
func DefaultModificationCatalog() *ModificationCatalog {
	c, err := NewModificationCatalog(DefaultModificationLabels())
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultModificationLabels returns a fresh copy of the default label sets.
func DefaultModificationLabels() map[ModificationFamily][]string {
	return map[ModificationFamily][]string{
		FamilyCleavage:    {"Aldehyde", "CarboxylicAcid"},
		FamilyAddition:    {"OH", "OOH", "KETO", "EPOXY"},
		FamilyRing:        {"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"},
		FamilyOtherCyclic: {"D-IsoK", "E-IsoK", "TXA", "TXB"},
	}
}

// Labels returns a copy of the labels of one family.
func (c *ModificationCatalog) Labels(family ModificationFamily) []string {
	out := make([]string, len(c.labels[family]))
	copy(out, c.labels[family])
	return out
}

// Size returns the number of labels in a family.
func (c *ModificationCatalog) Size(family ModificationFamily) int {
	return len(c.labels[family])
}

// Additions returns |m_oap|.
func (c *ModificationCatalog) Additions() int { return c.Size(FamilyAddition) }

// Cleavages returns |m_ocp|.
func (c *ModificationCatalog) Cleavages() int { return c.Size(FamilyCleavage) }

// Cyclic returns |m_p| + |m_o|.
func (c *ModificationCatalog) Cyclic() int {
	return c.Size(FamilyRing) + c.Size(FamilyOtherCyclic)
}

func isFamily(family ModificationFamily) bool {
	for _, f := range ModificationFamilies {
		if f == family {
			return true
		}
	}
	return false
}

func dedupe(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	return out
}
