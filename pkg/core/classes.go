package core

import (
	"fmt"
	"strings"
)

// MaxChainSites is the largest number of acyl chains a head group carries.
const MaxChainSites = 4

// ClassTag marks head groups whose chain positions need special counting.
type ClassTag int

const (
	TagOrdinary ClassTag = iota
	TagLyso
	TagMonoacylglycerol
	TagDiacylglycerol
	TagTriacylglycerol
	TagCardiolipin
)

var tagNames = map[ClassTag]string{
	TagOrdinary:         "ordinary",
	TagLyso:             "lyso",
	TagMonoacylglycerol: "monoacylglycerol",
	TagDiacylglycerol:   "diacylglycerol",
	TagTriacylglycerol:  "triacylglycerol",
	TagCardiolipin:      "cardiolipin",
}

func (t ClassTag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ClassTag(%d)", int(t))
}

// Sites returns the chain count a tag is defined for, or 0 for TagOrdinary
// which fits every bucket.
func (t ClassTag) Sites() int {
	switch t {
	case TagLyso, TagMonoacylglycerol:
		return 1
	case TagDiacylglycerol:
		return 2
	case TagTriacylglycerol:
		return 3
	case TagCardiolipin:
		return 4
	default:
		return 0
	}
}

// ParseClassTag converts a tag name as written in configuration files.
func ParseClassTag(s string) (ClassTag, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for tag, name := range tagNames {
		if name == s {
			return tag, nil
		}
	}
	return TagOrdinary, fmt.Errorf("unknown class tag '%s'", s)
}

// knownTags maps recognized class names to their tag.
var knownTags = map[string]ClassTag{
	"LPA":              TagLyso,
	"LPC":              TagLyso,
	"LPE":              TagLyso,
	"LPG":              TagLyso,
	"LPI":              TagLyso,
	"LPS":              TagLyso,
	"Monoacylglycerol": TagMonoacylglycerol,
	"MG":               TagMonoacylglycerol,
	"Diacylglycerol":   TagDiacylglycerol,
	"DG":               TagDiacylglycerol,
	"Triacylglycerol":  TagTriacylglycerol,
	"TG":               TagTriacylglycerol,
	"Cardiolipin":      TagCardiolipin,
	"CL":               TagCardiolipin,
}

// ClassifyClass returns the tag for a class name placed in the bucket with the
// given number of chain sites. Names outside their natural bucket are ordinary.
func ClassifyClass(name string, sites int) ClassTag {
	tag, ok := knownTags[name]
	if !ok || tag.Sites() != sites {
		return TagOrdinary
	}
	return tag
}

// LipidClass is a head-group class within a bucket.
type LipidClass struct {
	Name string
	Tag  ClassTag
}

// LipidClassCatalog groups head-group classes by the number of acyl chains
// they carry. Bucket xN holds classes with N chains.
type LipidClassCatalog struct {
	buckets [MaxChainSites][]LipidClass
}

// BucketKey returns the configuration key (x1..x4) for a chain count.
func BucketKey(sites int) string {
	return fmt.Sprintf("x%d", sites)
}

// NewLipidClassCatalog builds a catalog from the x1..x4 buckets. All four keys
// must be present; a bucket may be empty.
func NewLipidClassCatalog(buckets map[string][]string) (*LipidClassCatalog, error) {
	c := &LipidClassCatalog{}

	for sites := 1; sites <= MaxChainSites; sites++ {
		key := BucketKey(sites)
		names, ok := buckets[key]
		if !ok {
			return nil, &ConfigurationError{Key: key, Message: "lipid class bucket is missing"}
		}

		seen := make(map[string]bool, len(names))
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			c.buckets[sites-1] = append(c.buckets[sites-1], LipidClass{
				Name: name,
				Tag:  ClassifyClass(name, sites),
			})
		}
	}

	for key := range buckets {
		if !validBucketKey(key) {
			return nil, &ConfigurationError{Key: key, Message: "unknown lipid class bucket"}
		}
	}

	return c, nil
}

// DefaultLipidClassCatalog returns the class catalog used by the published estimates.
func DefaultLipidClassCatalog() *LipidClassCatalog {
	c, err := NewLipidClassCatalog(DefaultLipidClassBuckets())
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultLipidClassBuckets returns a fresh copy of the default class buckets.
func DefaultLipidClassBuckets() map[string][]string {
	return map[string][]string{
		"x1": {"FA", "CholesterolEster", "LPA", "LPC", "LPE", "LPG", "LPI", "LPS",
			"Monoacylglycerol", "Ceramide", "Sphingolipid"},
		"x2": {"PA", "PC", "PE", "PG", "PI", "PS", "Diacylglycerol"},
		"x3": {"Triacylglycerol"},
		"x4": {"Cardiolipin"},
	}
}

// WithTag returns a copy of the catalog with the named class retagged. The tag
// must fit the bucket holding the class. Names match case-insensitively.
func (c *LipidClassCatalog) WithTag(name string, tag ClassTag) (*LipidClassCatalog, error) {
	out := &LipidClassCatalog{}
	found := false

	for i := range c.buckets {
		out.buckets[i] = make([]LipidClass, len(c.buckets[i]))
		copy(out.buckets[i], c.buckets[i])

		for j := range out.buckets[i] {
			if !strings.EqualFold(out.buckets[i][j].Name, name) {
				continue
			}
			found = true
			if tag != TagOrdinary && tag.Sites() != i+1 {
				return nil, &ConfigurationError{
					Key: BucketKey(i + 1),
					Message: fmt.Sprintf("class %s cannot be tagged %s: tag requires bucket %s",
						name, tag, BucketKey(tag.Sites())),
				}
			}
			out.buckets[i][j].Tag = tag
		}
	}

	if !found {
		return nil, &ConfigurationError{
			Key:     "class_tags",
			Message: fmt.Sprintf("class %s is not in any bucket", name),
		}
	}

	return out, nil
}

// Classes returns a copy of the classes in the bucket with the given chain count.
func (c *LipidClassCatalog) Classes(sites int) []LipidClass {
	if sites < 1 || sites > MaxChainSites {
		return nil
	}
	out := make([]LipidClass, len(c.buckets[sites-1]))
	copy(out, c.buckets[sites-1])
	return out
}

// Size returns the number of classes in a bucket.
func (c *LipidClassCatalog) Size(sites int) int {
	if sites < 1 || sites > MaxChainSites {
		return 0
	}
	return len(c.buckets[sites-1])
}

// CountTagged returns the number of classes in a bucket carrying tag.
func (c *LipidClassCatalog) CountTagged(sites int, tag ClassTag) int {
	n := 0
	for _, class := range c.Classes(sites) {
		if class.Tag == tag {
			n++
		}
	}
	return n
}

// SingleChainPositions returns the site-specific multiplicity of bucket x1:
// one per class, plus one extra chain position for every lyso-phospholipid and
// two for every monoacylglycerol.
func (c *LipidClassCatalog) SingleChainPositions() int {
	return c.Size(1) + c.CountTagged(1, TagLyso) + 2*c.CountTagged(1, TagMonoacylglycerol)
}

func validBucketKey(key string) bool {
	for sites := 1; sites <= MaxChainSites; sites++ {
		if key == BucketKey(sites) {
			return true
		}
	}
	return false
}
