// Package app wires the wishlist build flow: spreadsheet in, catalog
// matching in the middle, DIM wishlist file out.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/mitonj/dim-aegis-wishlist/internal/cache"
	"github.com/mitonj/dim-aegis-wishlist/internal/catalog"
	"github.com/mitonj/dim-aegis-wishlist/internal/domain"
	"github.com/mitonj/dim-aegis-wishlist/internal/matcher"
	"github.com/mitonj/dim-aegis-wishlist/internal/prompt"
	"github.com/mitonj/dim-aegis-wishlist/internal/sheets"
	"github.com/mitonj/dim-aegis-wishlist/internal/wishlist"
)

type Options struct {
	// ConfigPath overrides root discovery and points at the YAML config.
	ConfigPath string
	// XLSXPath overrides the config and reads a local workbook.
	XLSXPath string
}

// Run executes the wishlist build flow and returns the process exit code.
func Run() int {
	return RunWithOptions(Options{})
}

func RunWithOptions(opts Options) int {
	if err := run(opts); err != nil {
		if ee, ok := asExitError(err); ok {
			if ee.Err != nil && ee.Code != 0 {
				fmt.Fprintln(os.Stderr, ee.Err)
			}
			return ee.Code
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func run(opts Options) error {
	totalStart := time.Now()
	ctx := context.Background()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	configPath := opts.ConfigPath
	appRoot := "."
	if configPath == "" {
		root, err := FindRoot()
		if err != nil {
			return err
		}
		appRoot = root
		configPath = filepath.Join(root, configFileName)
	} else {
		appRoot = filepath.Dir(configPath)
	}

	// .env mirrors the hosted setup; absence is fine, env vars may be set
	// directly.
	_ = godotenv.Load(filepath.Join(appRoot, ".env"))

	cfg, err := domain.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if opts.XLSXPath != "" {
		cfg.XLSXPath = opts.XLSXPath
	}

	bungieKey := os.Getenv("BUNGIE_API_KEY")
	if bungieKey == "" {
		return fmt.Errorf("BUNGIE_API_KEY not set (environment or %s)", filepath.Join(appRoot, ".env"))
	}

	records, err := loadRecords(ctx, cfg, appRoot)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No weapons found in the spreadsheet, nothing to do")
		return Exit(0)
	}
	fmt.Printf("Found %d weapons to process\n", len(records))

	lookups, diag := cache.Load(resolvePath(appRoot, cfg.CachePath))
	if diag != nil {
		logger.Warn().Err(diag).Msg("lookup cache unusable, starting empty")
	}
	fmt.Printf("Lookup cache: %d entries\n", lookups.Len())

	client := catalog.New(bungieKey, catalog.Options{
		PacingInterval: time.Duration(cfg.PacingIntervalMS) * time.Millisecond,
		MaxRetries:     cfg.MaxRetries,
		Logger:         logger,
	})
	resolver := matcher.New(client, lookups, logger)

	var matched []domain.MatchedWeapon
	for i, rec := range records {
		fmt.Printf("Matching weapon %d/%d: %s\n", i+1, len(records), rec.Name)
		mw, ok, err := resolver.MatchWeapon(ctx, rec)
		if err != nil {
			if errors.Is(err, catalog.ErrRejected) {
				return fmt.Errorf("%w (check BUNGIE_API_KEY)", err)
			}
			return err
		}
		if ok {
			matched = append(matched, mw)
		}
		// Flush per weapon: a crash loses at most the in-flight lookups.
		if err := lookups.Flush(); err != nil {
			return fmt.Errorf("flush cache: %w", err)
		}
	}
	if err := lookups.Flush(); err != nil {
		return fmt.Errorf("flush cache: %w", err)
	}

	fmt.Printf("\nMatched %d/%d weapons\n", len(matched), len(records))
	if summary := resolver.MissingSummary(); summary != "" {
		fmt.Print("\n" + summary)
	}

	tierConfigs, preset, err := cfg.TierConfigs()
	if err != nil {
		return err
	}
	if !preset {
		tierConfigs, err = prompt.New(os.Stdin, os.Stdout).TierConfigs()
		if err != nil {
			return fmt.Errorf("read tier selection: %w", err)
		}
	}

	lines := wishlist.Assemble(matched, tierConfigs)
	outputPath := resolvePath(appRoot, cfg.OutputPath)
	if err := wishlist.Write(outputPath, lines, time.Now()); err != nil {
		return fmt.Errorf("write wishlist: %w", err)
	}

	fmt.Printf("\nWishlist saved to %s (%d lines)\n", outputPath, len(lines))
	fmt.Printf("Total time: %s\n", time.Since(totalStart).Round(time.Second))
	return nil
}

func loadRecords(ctx context.Context, cfg domain.Config, appRoot string) ([]domain.WeaponRecord, error) {
	if cfg.XLSXPath != "" {
		return sheets.ReadXLSX(resolvePath(appRoot, cfg.XLSXPath))
	}

	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("config: spreadsheet_id or xlsx_path required")
	}
	if len(cfg.SheetGIDs) == 0 {
		return nil, fmt.Errorf("config: sheet_gids is empty")
	}
	sheetsKey := os.Getenv("GOOGLE_SHEETS_API_KEY")
	if sheetsKey == "" {
		return nil, fmt.Errorf("GOOGLE_SHEETS_API_KEY not set (required unless xlsx_path is configured)")
	}
	return sheets.NewClient(sheetsKey, cfg.SpreadsheetID).FetchRecords(ctx, cfg.SheetGIDs)
}

func resolvePath(appRoot, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(appRoot, path)
}
