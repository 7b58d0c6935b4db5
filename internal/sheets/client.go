package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mitonj/dim-aegis-wishlist/internal/domain"
)

const DefaultBaseURL = "https://sheets.googleapis.com/v4"

// Client reads the tier-list spreadsheet through the Google Sheets REST API
// with an API key (the sheet is public, no OAuth involved).
type Client struct {
	baseURL       string
	apiKey        string
	spreadsheetID string
	hc            *http.Client
}

func NewClient(apiKey, spreadsheetID string) *Client {
	return NewClientWithBaseURL(apiKey, spreadsheetID, DefaultBaseURL)
}

func NewClientWithBaseURL(apiKey, spreadsheetID, baseURL string) *Client {
	return &Client{
		baseURL:       baseURL,
		apiKey:        apiKey,
		spreadsheetID: spreadsheetID,
		hc:            &http.Client{Timeout: 25 * time.Second},
	}
}

type metadataResponse struct {
	Sheets []struct {
		Properties struct {
			SheetID int64  `json:"sheetId"`
			Title   string `json:"title"`
		} `json:"properties"`
	} `json:"sheets"`
}

type valuesResponse struct {
	Values [][]any `json:"values"`
}

// TabTitles maps the requested tab GIDs to their current titles. GIDs absent
// from the spreadsheet are simply left out of the result.
func (c *Client) TabTitles(ctx context.Context, gids []string) (map[string]string, error) {
	u := fmt.Sprintf("%s/spreadsheets/%s?key=%s", c.baseURL, url.PathEscape(c.spreadsheetID), url.QueryEscape(c.apiKey))

	var meta metadataResponse
	if err := c.getJSON(ctx, u, &meta); err != nil {
		return nil, fmt.Errorf("spreadsheet metadata: %w", err)
	}

	wanted := make(map[string]struct{}, len(gids))
	for _, gid := range gids {
		wanted[gid] = struct{}{}
	}

	out := make(map[string]string, len(gids))
	for _, s := range meta.Sheets {
		gid := strconv.FormatInt(s.Properties.SheetID, 10)
		if _, ok := wanted[gid]; ok {
			out[gid] = s.Properties.Title
		}
	}
	return out, nil
}

// Values fetches a whole tab as a string grid.
func (c *Client) Values(ctx context.Context, tabTitle string) ([][]string, error) {
	rangeName := fmt.Sprintf("'%s'!A:Z", tabTitle)
	u := fmt.Sprintf("%s/spreadsheets/%s/values/%s?key=%s",
		c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(rangeName), url.QueryEscape(c.apiKey))

	var vr valuesResponse
	if err := c.getJSON(ctx, u, &vr); err != nil {
		return nil, fmt.Errorf("read tab %q: %w", tabTitle, err)
	}

	rows := make([][]string, 0, len(vr.Values))
	for _, raw := range vr.Values {
		row := make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				row = append(row, s)
			} else {
				row = append(row, fmt.Sprint(v))
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("sheets api status %d: %s", resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// FetchRecords pulls and parses every requested tab, preserving the
// configured GID order so reruns produce identically ordered records.
func (c *Client) FetchRecords(ctx context.Context, gids []string) ([]domain.WeaponRecord, error) {
	titles, err := c.TabTitles(ctx, gids)
	if err != nil {
		return nil, err
	}

	var out []domain.WeaponRecord
	for _, gid := range gids {
		title, ok := titles[gid]
		if !ok {
			fmt.Printf("Skipping GID %s: tab not found in spreadsheet\n", gid)
			continue
		}
		rows, err := c.Values(ctx, title)
		if err != nil {
			return nil, err
		}
		records := ParseRows(rows)
		fmt.Printf("Parsed tab %q (GID %s): %d weapons\n", title, gid, len(records))
		out = append(out, records...)
	}
	return out, nil
}
