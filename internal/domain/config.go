package domain

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the run configuration read from wishlist_config.yaml.
type Config struct {
	// SpreadsheetID identifies the community tier-list spreadsheet.
	SpreadsheetID string `yaml:"spreadsheet_id"`
	// SheetGIDs selects which tabs to parse, in order.
	SheetGIDs []string `yaml:"sheet_gids"`
	// XLSXPath, when set, reads a local workbook instead of the Sheets API.
	XLSXPath   string `yaml:"xlsx_path"`
	CachePath  string `yaml:"cache_path"`
	OutputPath string `yaml:"output_path"`
	// PacingIntervalMS is the minimum delay between catalog requests.
	PacingIntervalMS int `yaml:"pacing_interval_ms"`
	MaxRetries       int `yaml:"max_retries"`
	// Tiers optionally presets tier -> perk option ("S: both-columns") and
	// skips the interactive menus entirely.
	Tiers map[string]string `yaml:"tiers"`
}

func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	if value != nil && value.Kind == yaml.MappingNode {
		allowed := map[string]struct{}{
			"spreadsheet_id":     {},
			"sheet_gids":         {},
			"xlsx_path":          {},
			"cache_path":         {},
			"output_path":        {},
			"pacing_interval_ms": {},
			"max_retries":        {},
			"tiers":              {},
		}

		for i := 0; i+1 < len(value.Content); i += 2 {
			k := value.Content[i]
			if k.Kind != yaml.ScalarNode {
				continue
			}
			if _, ok := allowed[k.Value]; !ok {
				return fmt.Errorf("config: unsupported key %q", k.Value)
			}
		}
	}

	// Keep default behavior; this exists only to reject misspelled keys.
	type raw Config
	var r raw
	if err := value.Decode(&r); err != nil {
		return err
	}
	*c = Config(r)
	return nil
}

func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config (%s): %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config (%s): %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.CachePath == "" {
		c.CachePath = "bungie_cache.json"
	}
	if c.OutputPath == "" {
		c.OutputPath = "dim_wishlist.txt"
	}
	if c.PacingIntervalMS <= 0 {
		// Bungie allows 25 requests per second.
		c.PacingIntervalMS = 40
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
}

// TierConfigs converts the optional tiers preset. ok=false means no preset
// was given and the caller should prompt interactively.
func (c *Config) TierConfigs() (map[Tier]TierConfig, bool, error) {
	if len(c.Tiers) == 0 {
		return nil, false, nil
	}
	out := make(map[Tier]TierConfig, len(c.Tiers))
	for rawTier, rawOpt := range c.Tiers {
		tier, ok := ParseTier(rawTier)
		if !ok {
			return nil, false, fmt.Errorf("config: unknown tier %q", rawTier)
		}
		opt, ok := ParsePerkOption(rawOpt)
		if !ok {
			return nil, false, fmt.Errorf("config: tier %s: unknown perk option %q", tier, rawOpt)
		}
		out[tier] = TierConfig{Tier: tier, Option: opt}
	}
	return out, true, nil
}
