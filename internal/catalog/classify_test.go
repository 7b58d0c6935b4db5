package catalog

import (
	"testing"

	"github.com/mitonj/dim-aegis-wishlist/internal/domain"
)

func item(name, typeDisplayName string, itemType, itemSubType int, desc string) itemDefinition {
	var it itemDefinition
	it.DisplayProperties.Name = name
	it.DisplayProperties.Description = desc
	it.ItemTypeDisplayName = typeDisplayName
	it.ItemType = itemType
	it.ItemSubType = itemSubType
	return it
}

func TestClassifyWeapon(t *testing.T) {
	cases := []itemDefinition{
		item("Trustee", "Scout Rifle", itemTypeWeapon, 9, ""),
		item("IKELOS_SMG_v1.0.2", "Submachine Gun", itemTypeWeapon, 17, ""),
		// Unknown subtype but a weapon-looking type display name.
		item("Oddball", "Heavy Grenade Launcher", itemTypeWeapon, 99, ""),
	}
	for _, it := range cases {
		if got := classify(it); got != domain.CategoryWeapon {
			t.Fatalf("%s classified as %s, want weapon", it.DisplayProperties.Name, got)
		}
	}
}

func TestClassifyPerk(t *testing.T) {
	cases := []itemDefinition{
		item("Kill Clip", "Trait", 0, 0, ""),
		item("Backup Mag", "Weapon Mod", itemTypeMod, 0, "Increases magazine size."),
		item("Old Grid", "", itemTypeTalentGrid, 0, "Precision hits grant bonus damage."),
	}
	for _, it := range cases {
		if got := classify(it); got != domain.CategoryPerk {
			t.Fatalf("%s classified as %s, want perk", it.DisplayProperties.Name, got)
		}
	}
}

func TestClassifyOther(t *testing.T) {
	cases := []itemDefinition{
		// An emblem named after a perk must never classify as one.
		item("Kill Clip", "Emblem", 14, 0, "A stylish commemorative emblem."),
		item("Crimson Shell", "Ghost Shell", 24, 0, "For your little light."),
	}
	for _, it := range cases {
		if got := classify(it); got != domain.CategoryOther {
			t.Fatalf("%s classified as %s, want other", it.DisplayProperties.Name, got)
		}
	}
}
