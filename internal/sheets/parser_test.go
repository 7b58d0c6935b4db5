package sheets_test

import (
	"testing"

	"github.com/mitonj/dim-aegis-wishlist/internal/domain"
	"github.com/mitonj/dim-aegis-wishlist/internal/sheets"
)

func grid() [][]string {
	return [][]string{
		{"Season 23 weapon rankings"},
		{"Name", "Tier", "Column 1", "Column 2"},
		{"Trustee", "S", "Rapid Hit\nOutlaw", "Kill Clip"},
		{"Name", "Tier", "Column 1", "Column 2"}, // repeated header mid-sheet
		{"Ideal", "S", "Perfect Perk", "Perfect Perk"},
		{"Sunset Gun", "/", "Outlaw", "Rampage"},
		{"Fatebringer", "A", "", "Frenzy"},
		{"Perkless Gun", "B", "", ""},
		{"", "", "", ""},
		{"Hung Jury\n(adept)", "B", "Shoot to Loot", ""},
	}
}

func TestParseRowsFindsHeaderAndFiltersPlaceholders(t *testing.T) {
	records := sheets.ParseRows(grid())
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d: %+v", len(records), records)
	}

	first := records[0]
	if first.Name != "Trustee" || first.Tier != domain.TierS {
		t.Fatalf("first record wrong: %+v", first)
	}
	if len(first.PerksColumn1) != 2 || first.PerksColumn1[0] != "Rapid Hit" || first.PerksColumn1[1] != "Outlaw" {
		t.Fatalf("perk cell not split on newlines: %+v", first.PerksColumn1)
	}
	if len(first.PerksColumn2) != 1 || first.PerksColumn2[0] != "Kill Clip" {
		t.Fatalf("column 2 wrong: %+v", first.PerksColumn2)
	}

	if records[1].Name != "Fatebringer" || len(records[1].PerksColumn1) != 0 || len(records[1].PerksColumn2) != 1 {
		t.Fatalf("single-column record wrong: %+v", records[1])
	}

	if records[2].Name != "Hung Jury" {
		t.Fatalf("newline annotation not stripped from name: %q", records[2].Name)
	}
}

func TestParseRowsWithoutHeaderYieldsNothing(t *testing.T) {
	rows := [][]string{
		{"some", "banner", "text"},
		{"Trustee", "S", "Rapid Hit", "Kill Clip"},
	}
	if records := sheets.ParseRows(rows); records != nil {
		t.Fatalf("expected no records without a header row, got %+v", records)
	}
}

func TestParseRowsColumnOrderIndependent(t *testing.T) {
	rows := [][]string{
		{"Column 2", "Name", "Column 1", "Tier"},
		{"Kill Clip", "Trustee", "Rapid Hit", "s"},
	}
	records := sheets.ParseRows(rows)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.Name != "Trustee" || r.Tier != domain.TierS {
		t.Fatalf("columns misread: %+v", r)
	}
	if len(r.PerksColumn1) != 1 || r.PerksColumn1[0] != "Rapid Hit" {
		t.Fatalf("column 1 misread: %+v", r.PerksColumn1)
	}
	if len(r.PerksColumn2) != 1 || r.PerksColumn2[0] != "Kill Clip" {
		t.Fatalf("column 2 misread: %+v", r.PerksColumn2)
	}
}

func TestParseRowsStripsVersionedNames(t *testing.T) {
	rows := [][]string{
		{"Name", "Tier", "Column 1", "Column 2"},
		{"Hung Jury BRAVE version", "A", "Rapid Hit", "Kill Clip"},
	}
	records := sheets.ParseRows(rows)
	if len(records) != 1 || records[0].Name != "Hung Jury" {
		t.Fatalf("curator annotation kept in name: %+v", records)
	}
}

func TestParseRowsUnknownTierSkipped(t *testing.T) {
	rows := [][]string{
		{"Name", "Tier", "Column 1", "Column 2"},
		{"Trustee", "S+", "Rapid Hit", "Kill Clip"},
	}
	if records := sheets.ParseRows(rows); len(records) != 0 {
		t.Fatalf("unknown tier label must be skipped, got %+v", records)
	}
}
