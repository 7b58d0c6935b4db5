package main

import (
	"flag"
	"os"

	"github.com/mitonj/dim-aegis-wishlist/internal/app"
)

func main() {
	configPath := flag.String("config", "", "path to wishlist_config.yaml (default: search upward from cwd)")
	xlsxPath := flag.String("xlsx", "", "read weapons from a local XLSX workbook instead of the Sheets API")
	flag.Parse()
	os.Exit(app.RunWithOptions(app.Options{ConfigPath: *configPath, XLSXPath: *xlsxPath}))
}
