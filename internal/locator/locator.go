package locator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/fieldscout/internal/grid"
	"github.com/sells-group/fieldscout/internal/model"
	"github.com/sells-group/fieldscout/pkg/places"
)

// Ranking bonuses subtracted from a candidate's distance in kilometers.
// Convenience stores make the best survey anchors, supermarkets second.
const (
	convenienceBonusKm = 0.5
	supermarketBonusKm = 0.2
)

// largeFormatMarkers disqualify a venue by name. Malls and department stores
// are poor anchors: their busyness reflects the complex, not the street.
var largeFormatMarkers = []string{
	"CENTRAL", "ROBINSON", "MALL", "PLAZA", "FESTIVAL",
	"SUPERCENTER", "HYPERMARKET", "DEPARTMENT", "SHOPPING CENTER",
}

// convenienceBrandMarkers earn the convenience bonus by name even when the
// provider omits the category tag.
var convenienceBrandMarkers = []string{
	"7-ELEVEN", "7-11", "SEVEN ELEVEN", "เซเว่น",
	"FAMILYMART", "FAMILY MART", "LOTUS", "CP FRESHMART", "108 SHOP",
}

// Locator assigns anchor POIs to zones.
type Locator struct {
	provider places.Client
	tiers    []Tier
	excluded *ExclusionSet
}

// New creates a Locator over the given search provider. The exclusion set is
// shared across all Locate calls so one venue anchors at most one zone.
func New(provider places.Client, tiers []Tier, excluded *ExclusionSet) *Locator {
	if len(tiers) == 0 {
		tiers = DefaultTiers()
	}
	if excluded == nil {
		excluded = NewExclusionSet()
	}
	return &Locator{provider: provider, tiers: tiers, excluded: excluded}
}

// Locate finds an anchor POI for a zone centered at (lat, lng). anchorAreaID
// names the grid cell used for neighbor fallback when the zone itself has no
// usable venue. The returned assignment always carries a confidence label;
// Found() reports whether a venue was actually assigned. Provider failures
// on individual queries degrade to the next query, tier, or ring; the only
// error returned is context cancellation.
func (l *Locator) Locate(ctx context.Context, lat, lng float64, anchorAreaID string) (*model.POIAssignment, error) {
	a, err := l.searchTiers(ctx, lat, lng)
	if err != nil {
		return nil, err
	}
	if a.Found() {
		a.AnchorAreaID = anchorAreaID
		return a, nil
	}

	fb, err := l.fallback(ctx, anchorAreaID)
	if err != nil {
		return nil, err
	}
	if fb != nil {
		fb.AnchorAreaID = anchorAreaID
		return fb, nil
	}

	return &model.POIAssignment{
		Confidence:   model.ConfidenceNone,
		AnchorAreaID: anchorAreaID,
		Remark:       "no usable venue within search radius or neighboring cells",
	}, nil
}

// candidate pairs a venue with the query that surfaced it and its rank.
type candidate struct {
	poi     *model.POICandidate
	keyword string
	rank    float64
}

// searchTiers walks the waterfall at one point. The first tier that produces
// a usable claimed candidate ends the search; later tiers are never consulted
// even if they might hold a closer venue.
func (l *Locator) searchTiers(ctx context.Context, lat, lng float64) (*model.POIAssignment, error) {
	for _, tier := range l.tiers {
		merged, err := l.queryTier(ctx, tier, lat, lng)
		if err != nil {
			return nil, err
		}

		candidates := l.rankCandidates(merged, tier, lat, lng)
		best := l.claim(candidates)
		if best == nil {
			continue
		}

		zap.L().Debug("locator: anchored zone",
			zap.String("poi", best.poi.Name),
			zap.String("confidence", string(tier.Confidence)),
			zap.Float64("distance_km", best.poi.DistanceKm))
		return &model.POIAssignment{
			POI:        best.poi,
			Confidence: tier.Confidence,
			Keyword:    best.keyword,
		}, nil
	}
	return &model.POIAssignment{Confidence: model.ConfidenceNone}, nil
}

// tierResult tags each merged venue with the query that first returned it.
type tierResult struct {
	place   places.Place
	keyword string
}

// queryTier fans out the tier's allow-list and merges the results. A failed
// query counts as no results for that query; only a dead context stops the
// tier.
func (l *Locator) queryTier(ctx context.Context, tier Tier, lat, lng float64) ([]tierResult, error) {
	var merged []tierResult
	for _, q := range tier.Queries {
		results, err := l.provider.NearbySearch(ctx, lat, lng, tier.RadiusM, q.Keyword, q.Category)
		if err != nil {
			if ctx.Err() != nil {
				return nil, eris.Wrap(ctx.Err(), "locator: search canceled")
			}
			zap.L().Warn("locator: query failed, skipping",
				zap.String("keyword", q.Keyword),
				zap.String("confidence", string(tier.Confidence)),
				zap.Error(err))
			continue
		}
		for _, p := range results {
			merged = append(merged, tierResult{place: p, keyword: q.Keyword})
		}
	}
	return merged, nil
}

// rankCandidates filters and orders one tier's merged results, best first.
// Ranking is by distance with a bonus subtracted for preferred venue kinds,
// so a convenience store 400m away beats a generic store 100m away only if
// the gap exceeds the bonus.
func (l *Locator) rankCandidates(merged []tierResult, tier Tier, lat, lng float64) []candidate {
	maxKm := float64(tier.RadiusM) / 1000
	seen := make(map[string]struct{}, len(merged))

	var candidates []candidate
	for _, r := range merged {
		p := r.place
		if p.PlaceID == "" {
			continue
		}
		if _, dup := seen[p.PlaceID]; dup {
			continue
		}
		seen[p.PlaceID] = struct{}{}

		if l.excluded.Contains(p.PlaceID) || isLargeFormat(p.Name) {
			continue
		}

		c := &model.POICandidate{
			PlaceID:    p.PlaceID,
			Name:       p.Name,
			Address:    p.Vicinity,
			Latitude:   p.Geometry.Location.Lat,
			Longitude:  p.Geometry.Location.Lng,
			Rating:     p.Rating,
			Types:      p.Types,
			DistanceKm: grid.DistanceKm(lat, lng, p.Geometry.Location.Lat, p.Geometry.Location.Lng),
		}
		// The provider treats the radius as advisory.
		if c.DistanceKm > maxKm {
			continue
		}
		candidates = append(candidates, candidate{
			poi:     c,
			keyword: r.keyword,
			rank:    c.DistanceKm - bonus(c),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].rank < candidates[j].rank })
	return candidates
}

// claim walks the ranked candidates and returns the first whose place id it
// wins. Losing a claim to a concurrent zone moves on to the next candidate,
// not the next tier.
func (l *Locator) claim(candidates []candidate) *candidate {
	for i := range candidates {
		if l.excluded.Add(candidates[i].poi.PlaceID) {
			return &candidates[i]
		}
	}
	return nil
}

// fallback searches the centers of neighboring grid cells, nearest ring
// first. Cells within a ring are tried in a fixed order so reruns pick the
// same neighbor.
func (l *Locator) fallback(ctx context.Context, anchorAreaID string) (*model.POIAssignment, error) {
	cell, err := grid.Decode(anchorAreaID)
	if err != nil {
		zap.L().Warn("locator: fallback skipped, unparseable area id",
			zap.String("area_id", anchorAreaID), zap.Error(err))
		return nil, nil
	}
	centerLat, centerLng := cell.Center()

	for ring, offsets := range grid.Rings() {
		for _, off := range offsets {
			neighbor := cell.Shift(off)
			lat, lng := neighbor.Center()

			a, err := l.searchTiers(ctx, lat, lng)
			if err != nil {
				return nil, err
			}
			if !a.Found() {
				continue
			}

			a.FallbackAreaID = neighbor.ID()
			a.FallbackDistanceKm = grid.DistanceKm(centerLat, centerLng, lat, lng)
			a.Remark = fmt.Sprintf("anchored via neighbor cell %s (ring %d)", neighbor.ID(), ring+1)
			return a, nil
		}
	}
	return nil, nil
}

func isLargeFormat(name string) bool {
	upper := strings.ToUpper(name)
	for _, marker := range largeFormatMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

// bonus rewards category match strength. A convenience match is recognised
// by category tag or by brand name, since the provider does not always tag
// small-format stores.
func bonus(c *model.POICandidate) float64 {
	best := 0.0
	for _, t := range c.Types {
		switch t {
		case "convenience_store":
			if convenienceBonusKm > best {
				best = convenienceBonusKm
			}
		case "supermarket":
			if supermarketBonusKm > best {
				best = supermarketBonusKm
			}
		}
	}
	if best < convenienceBonusKm {
		upper := strings.ToUpper(c.Name)
		for _, brand := range convenienceBrandMarkers {
			if strings.Contains(upper, brand) {
				best = convenienceBonusKm
				break
			}
		}
	}
	return best
}
