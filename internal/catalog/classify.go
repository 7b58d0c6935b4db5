package catalog

import (
	"strings"

	"github.com/mitonj/dim-aegis-wishlist/internal/domain"
)

// Bungie DestinyItemType values this tool cares about.
const (
	itemTypeWeapon     = 3
	itemTypeMod        = 19
	itemTypeTalentGrid = 20
)

// Known weapon DestinyItemSubType values.
var weaponSubTypes = map[int]string{
	6:  "Auto Rifle",
	7:  "Hand Cannon",
	8:  "Pulse Rifle",
	9:  "Scout Rifle",
	10: "Fusion Rifle",
	11: "Sniper Rifle",
	12: "Shotgun",
	13: "Machine Gun",
	14: "Rocket Launcher",
	17: "Submachine Gun",
	18: "Linear Fusion Rifle",
	19: "Grenade Launcher",
	20: "Trace Rifle",
	21: "Bow",
	22: "Glaive",
	23: "Sword",
}

var weaponTypeKeywords = []string{
	"rifle", "cannon", "launcher", "sword", "shotgun", "bow", "glaive",
	"smg", "submachine", "machine gun", "sidearm",
}

// Words that place a mod/talent-grid item in a weapon-perk context rather
// than an armor or cosmetic one.
var perkContextKeywords = []string{
	"weapon", "rounds", "magazine", "reload", "precision", "damage",
	"final blow", "kills", "defeating", "precision hits", "burst",
}

// classify buckets a raw catalog item into weapon, perk or other. Anything
// in "other" (emblems, shaders, flavor items) can never satisfy a lookup,
// even on an exact name match.
func classify(it itemDefinition) domain.Category {
	if isWeapon(it) {
		return domain.CategoryWeapon
	}
	if isPerk(it) {
		return domain.CategoryPerk
	}
	return domain.CategoryOther
}

func isWeapon(it itemDefinition) bool {
	displayName := strings.ToLower(it.ItemTypeDisplayName)

	if it.ItemType == itemTypeWeapon {
		if _, ok := weaponSubTypes[it.ItemSubType]; ok {
			return true
		}
		for _, name := range weaponSubTypes {
			if strings.Contains(displayName, strings.ToLower(name)) {
				return true
			}
		}
	}

	// Some weapon frames carry unexpected subtypes; fall back to the type
	// display name.
	for _, kw := range weaponTypeKeywords {
		if strings.Contains(displayName, kw) {
			return true
		}
	}
	return false
}

func isPerk(it itemDefinition) bool {
	if it.ItemTypeDisplayName == "Trait" {
		return true
	}

	if it.ItemType != itemTypeMod && it.ItemType != itemTypeTalentGrid {
		return false
	}

	desc := strings.ToLower(it.DisplayProperties.Description)
	for _, kw := range perkContextKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}
