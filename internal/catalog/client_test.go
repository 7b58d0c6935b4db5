package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mitonj/dim-aegis-wishlist/internal/catalog"
	"github.com/mitonj/dim-aegis-wishlist/internal/domain"
)

const searchPayload = `{
	"Response": {
		"results": {
			"results": [
				{
					"hash": 1923963,
					"displayProperties": {"name": "Trustee", "description": ""},
					"itemType": 3,
					"itemSubType": 9,
					"itemTypeDisplayName": "Scout Rifle"
				},
				{
					"hash": 555888,
					"displayProperties": {"name": "Trustee", "description": "An emblem."},
					"itemType": 14,
					"itemSubType": 0,
					"itemTypeDisplayName": "Emblem"
				}
			]
		}
	}
}`

func newTestClient(baseURL string, maxRetries int) *catalog.Client {
	return catalog.New("test-key", catalog.Options{
		BaseURL:    baseURL,
		MaxRetries: maxRetries,
		Backoff:    1, // keep retry sleeps out of test time
		Logger:     zerolog.Nop(),
	})
}

func TestSearchClassifiesResults(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		fmt.Fprint(w, searchPayload)
	}))
	defer srv.Close()

	cands, err := newTestClient(srv.URL, 0).Search(context.Background(), "Trustee")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if gotPath != "/Destiny2/Armory/Search/DestinyInventoryItemDefinition/Trustee/" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("api key header missing, got %q", gotKey)
	}
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	if cands[0].Category != domain.CategoryWeapon || cands[0].Hash != 1923963 {
		t.Fatalf("first candidate wrong: %+v", cands[0])
	}
	if cands[1].Category != domain.CategoryOther {
		t.Fatalf("emblem not classified as other: %+v", cands[1])
	}
}

func TestSearchEmptyTermSkipsNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	cands, err := newTestClient(srv.URL, 0).Search(context.Background(), "   ")
	if err != nil || cands != nil {
		t.Fatalf("expected no candidates and no error, got %v, %v", cands, err)
	}
	if requests != 0 {
		t.Fatalf("empty term must not hit the network")
	}
}

func TestSearchRetriesThenSucceeds(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, searchPayload)
	}))
	defer srv.Close()

	cands, err := newTestClient(srv.URL, 3).Search(context.Background(), "Trustee")
	if err != nil {
		t.Fatalf("search should have recovered: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
}

func TestSearchExhaustedRetriesReturnsUnavailable(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 2).Search(context.Background(), "Trustee")
	if !errors.Is(err, catalog.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts (1 + 2 retries), got %d", attempts)
	}
}

func TestSearchClientErrorIsRejectedNotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 5).Search(context.Background(), "Trustee")
	if !errors.Is(err, catalog.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if errors.Is(err, catalog.ErrUnavailable) {
		t.Fatalf("a bad key must not look like an outage: %v", err)
	}
	if attempts != 1 {
		t.Fatalf("4xx must not be retried, got %d attempts", attempts)
	}
}
