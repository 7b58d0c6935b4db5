package sheets

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mitonj/dim-aegis-wishlist/internal/domain"
)

// ReadXLSX parses an exported copy of the tier-list workbook. Every sheet is
// scanned; sheets without the expected header row contribute nothing.
func ReadXLSX(path string) ([]domain.WeaponRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook (%s): %w", path, err)
	}
	defer f.Close()

	var out []domain.WeaponRecord
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
		}
		records := ParseRows(rows)
		if len(records) > 0 {
			fmt.Printf("Parsed sheet %q: %d weapons\n", sheetName, len(records))
		}
		out = append(out, records...)
	}
	return out, nil
}
