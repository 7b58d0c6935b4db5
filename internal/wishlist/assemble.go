// Package wishlist builds and writes the DIM wishlist output file.
package wishlist

import (
	"fmt"
	"strings"

	"github.com/mitonj/dim-aegis-wishlist/internal/domain"
)

// Line is one wishlist entry: a weapon hash plus zero, one or two perk
// hashes, tagged with the weapon it belongs to for section grouping.
type Line struct {
	WeaponName string
	Tier       domain.Tier
	Item       uint32
	Perks      []uint32
}

func (l Line) String() string {
	if len(l.Perks) == 0 {
		return fmt.Sprintf("dimwishlist:item=%d", l.Item)
	}
	perks := make([]string, len(l.Perks))
	for i, p := range l.Perks {
		perks[i] = fmt.Sprint(p)
	}
	return fmt.Sprintf("dimwishlist:item=%d&perks=%s", l.Item, strings.Join(perks, ","))
}

// Assemble turns matched weapons into wishlist lines per the tier configs.
// Weapons whose tier has no config contribute nothing. Output order is
// stable: input weapon order, then base line, then single-perk lines
// (column 1 before column 2), then column-1 x column-2 combinations.
func Assemble(weapons []domain.MatchedWeapon, configs map[domain.Tier]domain.TierConfig) []Line {
	var out []Line
	for _, w := range weapons {
		cfg, ok := configs[w.Record.Tier]
		if !ok || w.Hash == 0 {
			continue
		}
		out = append(out, assembleWeapon(w, cfg.Option)...)
	}
	return out
}

func assembleWeapon(w domain.MatchedWeapon, opt domain.PerkOption) []Line {
	line := func(perks ...uint32) Line {
		return Line{WeaponName: w.Record.Name, Tier: w.Record.Tier, Item: w.Hash, Perks: perks}
	}

	var out []Line

	if opt == domain.PerkAnyPerks && len(w.Column1) == 0 && len(w.Column2) == 0 {
		// The weapon itself is still worth keeping when nothing else resolved.
		return []Line{line()}
	}

	if opt == domain.PerkAnyColumn || opt == domain.PerkAnyPerks {
		for _, p := range w.Column1 {
			out = append(out, line(p.Hash))
		}
		for _, p := range w.Column2 {
			out = append(out, line(p.Hash))
		}
	}

	if len(w.Column1) > 0 && len(w.Column2) > 0 {
		for _, p1 := range w.Column1 {
			for _, p2 := range w.Column2 {
				out = append(out, line(p1.Hash, p2.Hash))
			}
		}
	}

	return out
}
