package wishlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Render produces the full wishlist file text: a metadata header, then one
// section per weapon with its lines in assembly order.
func Render(lines []Line, generatedAt time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// DIM Wishlist generated by dim-aegis-wishlist\n")
	fmt.Fprintf(&b, "// Generated on: %s\n", generatedAt.Format("2006-01-02 15:04:05"))

	currentWeapon := ""
	var currentItem uint32
	for _, l := range lines {
		// Break sections on the hash too: distinct weapons can share a
		// display name (base and adept variants).
		if l.WeaponName != currentWeapon || l.Item != currentItem {
			currentWeapon = l.WeaponName
			currentItem = l.Item
			fmt.Fprintf(&b, "\n// %s - Tier: %s\n", l.WeaponName, l.Tier)
		}
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Write renders and saves the wishlist, going through a temp file and rename
// so readers never observe a partial file.
func Write(path string, lines []Line, generatedAt time.Time) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(Render(lines, generatedAt)), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
