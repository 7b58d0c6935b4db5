// Package catalog queries the Bungie Platform API for item candidates,
// pacing and retrying requests so a run stays inside the remote rate limit.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitonj/dim-aegis-wishlist/internal/domain"
)

const DefaultBaseURL = "https://www.bungie.net/Platform"

// ErrUnavailable reports that the catalog could not be reached after all
// retries. It is distinct from an empty result: an empty result means
// "confirmed absent" and may be cached, an unavailable catalog must not be.
var ErrUnavailable = errors.New("catalog unavailable")

// ErrRejected reports that the service refused the request outright, most
// commonly a bad API key. Unlike ErrUnavailable this cannot clear up on its
// own, so callers should abort the run instead of degrading per item.
var ErrRejected = errors.New("catalog rejected request")

type Client struct {
	baseURL    string
	apiKey     string
	hc         *http.Client
	pacer      *Pacer
	maxRetries int
	backoff    time.Duration
	sleep      func(time.Duration)
	log        zerolog.Logger
}

type Options struct {
	// BaseURL overrides the Bungie Platform root, mainly for tests.
	BaseURL string
	// PacingInterval is the minimum delay between requests; zero disables
	// pacing.
	PacingInterval time.Duration
	// MaxRetries bounds re-attempts after a transient failure.
	MaxRetries int
	// Backoff is the first retry delay; it doubles per attempt.
	Backoff time.Duration
	Logger  zerolog.Logger
}

func New(apiKey string, opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		hc:         &http.Client{Timeout: 25 * time.Second},
		pacer:      NewPacer(opts.PacingInterval),
		maxRetries: maxRetries,
		backoff:    backoff,
		sleep:      time.Sleep,
		log:        opts.Logger,
	}
}

type itemDefinition struct {
	Hash              uint32 `json:"hash"`
	DisplayProperties struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"displayProperties"`
	ItemType            int    `json:"itemType"`
	ItemSubType         int    `json:"itemSubType"`
	ItemTypeDisplayName string `json:"itemTypeDisplayName"`
}

type searchResponse struct {
	Response struct {
		Results struct {
			Results []itemDefinition `json:"results"`
		} `json:"results"`
	} `json:"Response"`
	ErrorStatus string `json:"ErrorStatus"`
	Message     string `json:"Message"`
}

// Search looks a term up in the item catalog and returns the hits classified
// into weapon/perk/other, in the order the service returned them. An empty
// term short-circuits to no candidates without a request.
func (c *Client) Search(ctx context.Context, term string) ([]domain.Candidate, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf(
		"%s/Destiny2/Armory/Search/DestinyInventoryItemDefinition/%s/",
		c.baseURL, url.PathEscape(term),
	)

	var resp searchResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}

	items := resp.Response.Results.Results
	out := make([]domain.Candidate, 0, len(items))
	for _, it := range items {
		out = append(out, domain.Candidate{
			Hash:            it.Hash,
			Name:            it.DisplayProperties.Name,
			Category:        classify(it),
			TypeDisplayName: it.ItemTypeDisplayName,
		})
	}
	return out, nil
}

// getJSON performs a paced GET with bounded retries. Transport errors and
// 429/5xx responses are retried with doubling backoff; retry exhaustion and
// other transient failures wrap ErrUnavailable. A 4xx rejection passes
// through as ErrRejected.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.sleep(c.backoff << (attempt - 1))
		}
		c.pacer.Wait()

		retryable, err := c.doOnce(ctx, rawURL, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			break
		}
		c.log.Warn().Err(err).Int("attempt", attempt+1).Str("url", rawURL).
			Msg("catalog request failed")
	}
	if errors.Is(lastErr, ErrRejected) {
		return lastErr
	}
	return fmt.Errorf("%w: %s", ErrUnavailable, lastErr)
}

func (c *Client) doOnce(ctx context.Context, rawURL string, out any) (retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return true, fmt.Errorf("bungie api status %d: %s", resp.StatusCode, string(b))
		}
		return false, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode json: %w", err)
	}
	return false, nil
}
