// Package matcher reconciles free-text spreadsheet names against the item
// catalog, going through the normalizer and the persisted lookup cache.
package matcher

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mitonj/dim-aegis-wishlist/internal/catalog"
	"github.com/mitonj/dim-aegis-wishlist/internal/domain"
	"github.com/mitonj/dim-aegis-wishlist/internal/normalize"
)

// Catalog is the remote lookup dependency, satisfied by catalog.Client.
type Catalog interface {
	Search(ctx context.Context, term string) ([]domain.Candidate, error)
}

// Store is the lookup cache dependency, satisfied by cache.Cache.
type Store interface {
	Get(key string, category domain.Category) (domain.Match, bool)
	Put(key string, category domain.Category, m domain.Match)
}

// Partial matches are containment matches, accepted only when exactly one
// same-category candidate passes the length-ratio floor. Perks use a stricter
// floor than weapons: short perk names collide far more often.
const (
	weaponPartialRatio = 0.8
	perkPartialRatio   = 0.9
)

type Resolver struct {
	catalog Catalog
	cache   Store
	log     zerolog.Logger

	// MissingWeapons and MissingPerks accumulate raw names that failed to
	// resolve during this run, for the end-of-run summary.
	MissingWeapons map[string]struct{}
	MissingPerks   map[string]struct{}
}

func New(cat Catalog, cache Store, logger zerolog.Logger) *Resolver {
	return &Resolver{
		catalog:        cat,
		cache:          cache,
		log:            logger,
		MissingWeapons: map[string]struct{}{},
		MissingPerks:   map[string]struct{}{},
	}
}

// Resolve maps a raw name to a catalog identifier of the requested category.
// Cached outcomes (positive or negative) return without a network call. A
// fresh outcome is cached before returning, except when the catalog was
// unreachable: that surfaces catalog.ErrUnavailable and caches nothing, so
// a later run retries instead of inheriting a false negative.
func (r *Resolver) Resolve(ctx context.Context, rawName string, category domain.Category) (domain.Match, error) {
	unresolved := domain.Match{RawName: rawName, Confidence: domain.ConfidenceNone}

	key := normalize.Key(rawName)
	if key == "" {
		return unresolved, nil
	}

	if m, ok := r.cache.Get(key, category); ok {
		return m, nil
	}

	cands, err := r.search(ctx, rawName)
	if err != nil {
		return unresolved, err
	}

	m := selectCandidate(rawName, key, category, cands)
	r.cache.Put(key, category, m)
	return m, nil
}

// search queries the catalog with the raw name and, when it differs, the
// version-stripped base name, deduplicating hits by hash.
func (r *Resolver) search(ctx context.Context, rawName string) ([]domain.Candidate, error) {
	terms := []string{rawName}
	if base := normalize.StripVersion(rawName); base != rawName && base != "" {
		terms = append(terms, base)
	}

	seen := map[uint32]struct{}{}
	var out []domain.Candidate
	for _, term := range terms {
		cands, err := r.catalog.Search(ctx, term)
		if err != nil {
			return nil, err
		}
		for _, c := range cands {
			if _, dup := seen[c.Hash]; dup {
				continue
			}
			seen[c.Hash] = struct{}{}
			out = append(out, c)
		}
	}
	return out, nil
}

// selectCandidate applies the selection policy: an exact normalized-name
// match in the right category wins; failing that, a single unambiguous
// partial match. Anything else stays unresolved, including exact matches in
// a foreign category.
func selectCandidate(rawName, key string, category domain.Category, cands []domain.Candidate) domain.Match {
	for _, c := range cands {
		if c.Category != category {
			continue
		}
		if normalize.Key(c.Name) == key {
			return domain.Match{
				RawName:       rawName,
				Hash:          c.Hash,
				Found:         true,
				CanonicalName: c.Name,
				Confidence:    domain.ConfidenceExact,
			}
		}
	}

	floor := weaponPartialRatio
	if category == domain.CategoryPerk {
		floor = perkPartialRatio
	}

	var partial *domain.Candidate
	for i, c := range cands {
		if c.Category != category {
			continue
		}
		if !isPartial(key, normalize.Key(c.Name), floor) {
			continue
		}
		if partial != nil {
			// Ambiguous: refuse to guess.
			return domain.Match{RawName: rawName, Confidence: domain.ConfidenceNone}
		}
		partial = &cands[i]
	}
	if partial != nil {
		return domain.Match{
			RawName:       rawName,
			Hash:          partial.Hash,
			Found:         true,
			CanonicalName: partial.Name,
			Confidence:    domain.ConfidencePartial,
		}
	}

	return domain.Match{RawName: rawName, Confidence: domain.ConfidenceNone}
}

// isPartial reports whether one normalized key contains the other and their
// lengths are close enough (min/max >= floor) to call it the same item.
func isPartial(key, candKey string, floor float64) bool {
	if key == "" || candKey == "" || key == candKey {
		return false
	}
	if !strings.Contains(key, candKey) && !strings.Contains(candKey, key) {
		return false
	}
	shorter, longer := len(key), len(candKey)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	return float64(shorter)/float64(longer) >= floor
}

// MatchWeapon resolves a spreadsheet row: the weapon itself and every perk
// in both columns. ok=false means the weapon-level match failed and the row
// contributes nothing to the wishlist. A catalog outage on any lookup leaves
// that one item unresolved for this run; the run keeps going.
func (r *Resolver) MatchWeapon(ctx context.Context, rec domain.WeaponRecord) (domain.MatchedWeapon, bool, error) {
	wm, err := r.Resolve(ctx, rec.Name, domain.CategoryWeapon)
	if err != nil {
		if !errors.Is(err, catalog.ErrUnavailable) {
			return domain.MatchedWeapon{}, false, err
		}
		r.log.Warn().Err(err).Str("weapon", rec.Name).Msg("catalog unreachable, weapon left unresolved")
	}
	if !wm.Found {
		r.MissingWeapons[rec.Name] = struct{}{}
		return domain.MatchedWeapon{}, false, nil
	}

	out := domain.MatchedWeapon{
		Record: rec,
		Hash:   wm.Hash,
		Name:   wm.CanonicalName,
	}

	var resolveErr error
	resolveColumn := func(names []string) []domain.MatchedPerk {
		var perks []domain.MatchedPerk
		for _, name := range names {
			pm, err := r.Resolve(ctx, name, domain.CategoryPerk)
			if err != nil {
				if !errors.Is(err, catalog.ErrUnavailable) {
					resolveErr = err
					return perks
				}
				r.log.Warn().Err(err).Str("perk", name).Msg("catalog unreachable, perk left unresolved")
			}
			if !pm.Found {
				r.MissingPerks[name] = struct{}{}
				continue
			}
			perks = append(perks, domain.MatchedPerk{RawName: name, Hash: pm.Hash, Name: pm.CanonicalName})
		}
		return perks
	}

	out.Column1 = resolveColumn(rec.PerksColumn1)
	if resolveErr != nil {
		return domain.MatchedWeapon{}, false, resolveErr
	}
	out.Column2 = resolveColumn(rec.PerksColumn2)
	if resolveErr != nil {
		return domain.MatchedWeapon{}, false, resolveErr
	}

	return out, true, nil
}

// MissingSummary renders the unresolved-name report printed at end of run.
func (r *Resolver) MissingSummary() string {
	if len(r.MissingWeapons) == 0 && len(r.MissingPerks) == 0 {
		return ""
	}
	s := ""
	if len(r.MissingWeapons) > 0 {
		s += fmt.Sprintf("Missing weapons (%d):\n", len(r.MissingWeapons))
		for _, name := range sortedKeys(r.MissingWeapons) {
			s += "  - " + name + "\n"
		}
	}
	if len(r.MissingPerks) > 0 {
		s += fmt.Sprintf("Missing perks (%d):\n", len(r.MissingPerks))
		for _, name := range sortedKeys(r.MissingPerks) {
			s += "  - " + name + "\n"
		}
	}
	return s
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
