package domain

import "strings"

type Tier string

const (
	TierS Tier = "S"
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
	TierF Tier = "F"
)

// TierOrder lists all tiers best-first; menus and summaries follow this order.
var TierOrder = []Tier{TierS, TierA, TierB, TierC, TierD, TierF}

func ParseTier(s string) (Tier, bool) {
	t := Tier(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range TierOrder {
		if t == known {
			return t, true
		}
	}
	return "", false
}

type Category string

const (
	CategoryWeapon Category = "weapon"
	CategoryPerk   Category = "perk"
	CategoryOther  Category = "other"
)

// WeaponRecord is one spreadsheet row: a weapon, its curated tier and the
// perk labels from the two perk columns. Rows are immutable once parsed.
type WeaponRecord struct {
	Name         string
	Tier         Tier
	PerksColumn1 []string
	PerksColumn2 []string
}

// Candidate is a single catalog search hit.
type Candidate struct {
	Hash            uint32
	Name            string
	Category        Category
	TypeDisplayName string
}

type Confidence string

const (
	ConfidenceExact   Confidence = "exact"
	ConfidencePartial Confidence = "partial"
	ConfidenceNone    Confidence = "none"
)

// Match is the outcome of resolving one raw name against the catalog.
// Found=false means the name was confirmed absent (or ambiguous); such
// negative outcomes are cached too so reruns skip the network.
type Match struct {
	RawName       string     `json:"rawName"`
	Hash          uint32     `json:"hash,omitempty"`
	Found         bool       `json:"found"`
	CanonicalName string     `json:"canonicalName,omitempty"`
	Confidence    Confidence `json:"confidence"`
}

type PerkOption string

const (
	// PerkBothColumns emits only rolls with a perk from each column.
	PerkBothColumns PerkOption = "both-columns"
	// PerkAnyColumn emits single-perk rolls plus both-column combinations.
	PerkAnyColumn PerkOption = "any-column"
	// PerkAnyPerks additionally keeps the weapon when no perk resolved.
	PerkAnyPerks PerkOption = "any-perks"
)

func ParsePerkOption(s string) (PerkOption, bool) {
	switch PerkOption(strings.ToLower(strings.TrimSpace(s))) {
	case PerkBothColumns:
		return PerkBothColumns, true
	case PerkAnyColumn:
		return PerkAnyColumn, true
	case PerkAnyPerks:
		return PerkAnyPerks, true
	}
	return "", false
}

type TierConfig struct {
	Tier   Tier
	Option PerkOption
}

type MatchedPerk struct {
	RawName string
	Hash    uint32
	Name    string
}

// MatchedWeapon is a weapon whose name resolved to a catalog hash, carrying
// whichever of its perks resolved, still grouped by source column.
type MatchedWeapon struct {
	Record  WeaponRecord
	Hash    uint32
	Name    string
	Column1 []MatchedPerk
	Column2 []MatchedPerk
}
