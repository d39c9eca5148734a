package core

import "strings"

// SiteMode selects how many modification sites m a chain with n double bonds exposes.
type SiteMode string

const (
	SiteBisAllylic SiteMode = "bis-allylic" // m = n - 1
	SiteAllylic    SiteMode = "allylic"     // m = n + 1
	SiteDoubleBond SiteMode = "db"          // m = n
)

// SiteModes lists the canonical modes in report order.
var SiteModes = []SiteMode{SiteBisAllylic, SiteDoubleBond, SiteAllylic}

// DefaultSiteMode is used when no mode or an unrecognized one is given.
const DefaultSiteMode = SiteBisAllylic

var siteAliases = map[string]SiteMode{
	"bis-allylic": SiteBisAllylic,
	"bis allylic": SiteBisAllylic,
	"bisallylic":  SiteBisAllylic,
	"allylic":     SiteAllylic,
	"db":          SiteDoubleBond,
	"n_db":        SiteDoubleBond,
	"C=C":         SiteDoubleBond,
	"n":           SiteDoubleBond,
}

// ParseSiteMode resolves a site selector. Unrecognized values resolve to
// DefaultSiteMode with ok set to false so the caller can report the fallback.
func ParseSiteMode(s string) (mode SiteMode, ok bool) {
	if mode, ok := siteAliases[strings.TrimSpace(s)]; ok {
		return mode, true
	}
	return DefaultSiteMode, false
}

// Shift returns m - n for the mode.
func (m SiteMode) Shift() int {
	switch m {
	case SiteAllylic:
		return 1
	case SiteDoubleBond:
		return 0
	default:
		return -1
	}
}

// Sites returns the number of modification sites for a chain with nDB double bonds.
func (m SiteMode) Sites(nDB int) int {
	return nDB + m.Shift()
}
