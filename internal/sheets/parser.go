// Package sheets turns the community tier-list spreadsheet into weapon
// records, either via the Google Sheets API or from a local XLSX workbook.
package sheets

import (
	"strings"

	"github.com/mitonj/dim-aegis-wishlist/internal/domain"
	"github.com/mitonj/dim-aegis-wishlist/internal/normalize"
)

// Tabs place their header row within the first few rows, above which sits
// free-form banner text.
const headerScanRows = 6

type columnIndices struct {
	name, col1, col2, tier int
}

// ParseRows extracts weapon records from a raw sheet grid. Rows that are
// banners, repeated headers, placeholders or perk-less entries are skipped;
// malformed rows are this package's responsibility to filter, downstream
// consumers see only usable records.
func ParseRows(rows [][]string) []domain.WeaponRecord {
	headerRow, cols, ok := findHeader(rows)
	if !ok {
		return nil
	}

	var out []domain.WeaponRecord
	for _, row := range rows[headerRow+1:] {
		name := cell(row, cols.name)
		tierCell := cell(row, cols.tier)
		if name == "" || tierCell == "" {
			continue
		}
		if isPlaceholder(name, tierCell) {
			continue
		}

		tier, ok := domain.ParseTier(tierCell)
		if !ok {
			continue
		}

		perks1 := splitPerks(cell(row, cols.col1))
		perks2 := splitPerks(cell(row, cols.col2))
		if len(perks1) == 0 && len(perks2) == 0 {
			continue
		}

		out = append(out, domain.WeaponRecord{
			Name:         cleanName(name),
			Tier:         tier,
			PerksColumn1: perks1,
			PerksColumn2: perks2,
		})
	}
	return out
}

func findHeader(rows [][]string) (int, columnIndices, bool) {
	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for i := 0; i < limit; i++ {
		cols := columnIndices{name: -1, col1: -1, col2: -1, tier: -1}
		for j, h := range rows[i] {
			switch strings.ToLower(strings.TrimSpace(h)) {
			case "name":
				cols.name = j
			case "column 1":
				cols.col1 = j
			case "column 2":
				cols.col2 = j
			case "tier":
				cols.tier = j
			}
		}
		if cols.name >= 0 && cols.col1 >= 0 && cols.col2 >= 0 && cols.tier >= 0 {
			return i, cols, true
		}
	}
	return 0, columnIndices{}, false
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isPlaceholder(name, tier string) bool {
	n := strings.ToLower(name)
	if n == "name" || n == "weapon" || n == "ideal" {
		return true
	}
	return strings.EqualFold(tier, "tier") || tier == "/"
}

// cleanName drops curator annotations appended to a weapon name: anything
// after the first newline and trailing version tags.
func cleanName(name string) string {
	if i := strings.IndexByte(name, '\n'); i >= 0 {
		name = name[:i]
	}
	return normalize.StripVersion(name)
}

// splitPerks parses a perk cell, one perk label per line.
func splitPerks(cellValue string) []string {
	if cellValue == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(cellValue, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
