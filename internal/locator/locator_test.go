package locator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/fieldscout/internal/model"
	"github.com/sells-group/fieldscout/pkg/places"
)

// fakeProvider answers NearbySearch from a canned table keyed by tier radius,
// and records the radius of every call it receives.
type fakeProvider struct {
	byRadius map[int][]places.Place
	calls    []int
}

func (f *fakeProvider) NearbySearch(_ context.Context, _, _ float64, radiusM int, _, _ string) ([]places.Place, error) {
	f.calls = append(f.calls, radiusM)
	return f.byRadius[radiusM], nil
}

func place(id, name string, lat, lng float64, types ...string) places.Place {
	return places.Place{
		PlaceID:  id,
		Name:     name,
		Types:    types,
		Geometry: places.Geometry{Location: places.LatLng{Lat: lat, Lng: lng}},
	}
}

func TestLocateStopsAtFirstSufficientTier(t *testing.T) {
	// Nothing at 1000m, a supermarket at 2000m. The 3000m tier must never
	// be consulted even though it would also match.
	fp := &fakeProvider{byRadius: map[int][]places.Place{
		2000: {place("p1", "Fresh Mart", 9.3205, 99.7005, "supermarket")},
		3000: {place("p2", "Some Store", 9.3202, 99.7002, "store")},
	}}

	l := New(fp, nil, nil)
	a, err := l.Locate(context.Background(), 9.32, 99.70, "09320-099700")
	require.NoError(t, err)
	require.True(t, a.Found())

	assert.Equal(t, model.ConfidenceMedium, a.Confidence)
	assert.Equal(t, "p1", a.POI.PlaceID)
	assert.NotContains(t, fp.calls, 3000)
	assert.Equal(t, 1000, fp.calls[0])
	assert.Empty(t, a.FallbackAreaID)
}

func TestLocateFansOutEveryQueryInATier(t *testing.T) {
	fp := &fakeProvider{byRadius: map[int][]places.Place{
		1000: {place("p1", "Corner Mart", 9.3201, 99.7001, "convenience_store")},
	}}

	l := New(fp, nil, nil)
	a, err := l.Locate(context.Background(), 9.32, 99.70, "09320-099700")
	require.NoError(t, err)
	require.True(t, a.Found())

	// The whole tier-1 allow-list runs before ranking; no later tier does.
	assert.Len(t, fp.calls, len(DefaultTiers()[0].Queries))
	for _, r := range fp.calls {
		assert.Equal(t, 1000, r)
	}
}

func TestLocateMergesQueriesBeforeRanking(t *testing.T) {
	// Each query returns a different venue; the winner must be picked from
	// the merged pool, not query by query.
	tiers := []Tier{{
		Confidence: model.ConfidenceHigh,
		RadiusM:    1000,
		Queries:    []Query{{Keyword: "a"}, {Keyword: "b"}},
	}}
	fp := &perKeywordProvider{byKeyword: map[string][]places.Place{
		"a": {place("far", "A Mart", 9.3260, 99.7000, "convenience_store")},
		"b": {place("close", "B Mart", 9.3205, 99.7000, "convenience_store")},
	}}

	l := New(fp, tiers, nil)
	a, err := l.Locate(context.Background(), 9.32, 99.70, "09320-099700")
	require.NoError(t, err)
	require.True(t, a.Found())
	assert.Equal(t, "close", a.POI.PlaceID)
	assert.Equal(t, "b", a.Keyword)
}

func TestLocateSurvivesSingleQueryError(t *testing.T) {
	// Tier 1 queries all fail; tier 2 holds a valid supermarket. The
	// failure degrades to the next tier instead of failing the call.
	fp := &errorThenResultProvider{
		failRadius: 1000,
		results: map[int][]places.Place{
			2000: {place("p1", "Fresh Mart", 9.3205, 99.7005, "supermarket")},
		},
	}

	l := New(fp, nil, nil)
	a, err := l.Locate(context.Background(), 9.32, 99.70, "09320-099700")
	require.NoError(t, err)
	require.True(t, a.Found())
	assert.Equal(t, model.ConfidenceMedium, a.Confidence)
	assert.Equal(t, "p1", a.POI.PlaceID)
}

func TestLocateStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fp := &errorThenResultProvider{failRadius: 1000}
	l := New(fp, nil, nil)
	_, err := l.Locate(ctx, 9.32, 99.70, "09320-099700")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canceled")
}

func TestLocateRanksByDistanceMinusBonus(t *testing.T) {
	// The generic store is closer, but the convenience store's 0.5 km
	// bonus outweighs the gap.
	fp := &fakeProvider{byRadius: map[int][]places.Place{
		1000: {
			place("near", "Quick Stop", 9.3201, 99.7001, "store", "convenience_store"),
			place("nearer", "Plain Store", 9.32005, 99.70005, "store"),
		},
	}}

	l := New(fp, nil, nil)
	a, err := l.Locate(context.Background(), 9.32, 99.70, "09320-099700")
	require.NoError(t, err)
	require.True(t, a.Found())
	assert.Equal(t, "near", a.POI.PlaceID)
	assert.Equal(t, model.ConfidenceHigh, a.Confidence)
}

func TestBonusMatchesConvenienceBrandByName(t *testing.T) {
	// No category tag on the 7-Eleven, but the brand name earns the full
	// convenience bonus and beats the closer untagged store.
	fp := &fakeProvider{byRadius: map[int][]places.Place{
		1000: {
			place("seven", "7-Eleven Bophut", 9.3201, 99.7001, "store"),
			place("plain", "Plain Store", 9.32005, 99.70005, "store"),
		},
	}}

	l := New(fp, nil, nil)
	a, err := l.Locate(context.Background(), 9.32, 99.70, "09320-099700")
	require.NoError(t, err)
	require.True(t, a.Found())
	assert.Equal(t, "seven", a.POI.PlaceID)
}

func TestRankCandidatesDropsVenuesBeyondTierRadius(t *testing.T) {
	// 9.365 is roughly 5 km north of the anchor; the provider returned it
	// anyway, so the tier's own radius must reject it.
	tiers := []Tier{{
		Confidence: model.ConfidenceHigh,
		RadiusM:    1000,
		Queries:    []Query{{Keyword: "convenience store"}},
	}}
	fp := &fakeProvider{byRadius: map[int][]places.Place{
		1000: {place("far", "Far Mart", 9.365, 99.70, "convenience_store")},
	}}

	l := New(fp, tiers, nil)
	a, err := l.Locate(context.Background(), 9.32, 99.70, "09320-099700")
	require.NoError(t, err)
	assert.False(t, a.Found())
	assert.Equal(t, model.ConfidenceNone, a.Confidence)
}

func TestClaimFallsThroughToNextCandidate(t *testing.T) {
	l := New(&fakeProvider{}, nil, nil)
	candidates := []candidate{
		{poi: &model.POICandidate{PlaceID: "best"}, rank: 0.1},
		{poi: &model.POICandidate{PlaceID: "second"}, rank: 0.4},
	}

	// Another zone claimed the best candidate first.
	require.True(t, l.excluded.Add("best"))

	got := l.claim(candidates)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.poi.PlaceID)
}

func TestLocateFiltersLargeFormatVenues(t *testing.T) {
	fp := &fakeProvider{byRadius: map[int][]places.Place{
		1000: {
			place("mall", "Central Festival Samui", 9.3201, 99.7001, "convenience_store"),
			place("ok", "Corner Mart", 9.3203, 99.7003, "convenience_store"),
		},
	}}

	l := New(fp, nil, nil)
	a, err := l.Locate(context.Background(), 9.32, 99.70, "09320-099700")
	require.NoError(t, err)
	require.True(t, a.Found())
	assert.Equal(t, "ok", a.POI.PlaceID)
}

func TestLocateNeverReusesAVenue(t *testing.T) {
	fp := &fakeProvider{byRadius: map[int][]places.Place{
		1000: {
			place("only", "Corner Mart", 9.3201, 99.7001, "convenience_store"),
		},
	}}

	excl := NewExclusionSet()
	l := New(fp, nil, excl)

	first, err := l.Locate(context.Background(), 9.32, 99.70, "09320-099700")
	require.NoError(t, err)
	require.True(t, first.Found())
	assert.Equal(t, "only", first.POI.PlaceID)

	// Same venue everywhere; the second zone must not get it again.
	second, err := l.Locate(context.Background(), 9.325, 99.705, "09325-099705")
	require.NoError(t, err)
	if second.Found() {
		assert.NotEqual(t, first.POI.PlaceID, second.POI.PlaceID)
	}
	assert.Equal(t, 1, excl.Len())
}

func TestLocateFallsBackToNeighborCells(t *testing.T) {
	// The anchor cell is empty at every radius. One neighbor center holds
	// a venue; the ring-order walk must find it deterministically.
	neighborLat, neighborLng := 9.315, 99.700 // cell 09315-099700, ring 1
	fp := &providerAt{lat: neighborLat, lng: neighborLng,
		result: place("fb", "Beach Mart", neighborLat, neighborLng, "convenience_store")}

	l := New(fp, nil, nil)
	a, err := l.Locate(context.Background(), 9.3204, 99.7004, "09320-099700")
	require.NoError(t, err)
	require.True(t, a.Found())

	assert.Equal(t, "09315-099700", a.FallbackAreaID)
	assert.Equal(t, "09320-099700", a.AnchorAreaID)
	assert.InDelta(t, 0.556, a.FallbackDistanceKm, 0.01)
	assert.Contains(t, a.Remark, "ring 1")
}

func TestLocateNoVenueAnywhere(t *testing.T) {
	fp := &fakeProvider{byRadius: map[int][]places.Place{}}

	l := New(fp, nil, nil)
	a, err := l.Locate(context.Background(), 9.32, 99.70, "09320-099700")
	require.NoError(t, err)

	assert.False(t, a.Found())
	assert.Equal(t, model.ConfidenceNone, a.Confidence)
	assert.NotEmpty(t, a.Remark)
}

// providerAt only answers searches centered near one coordinate.
type providerAt struct {
	lat, lng float64
	result   places.Place
}

func (p *providerAt) NearbySearch(_ context.Context, lat, lng float64, _ int, _, _ string) ([]places.Place, error) {
	const eps = 1e-6
	if lat > p.lat-eps && lat < p.lat+eps && lng > p.lng-eps && lng < p.lng+eps {
		return []places.Place{p.result}, nil
	}
	return nil, nil
}

// perKeywordProvider answers NearbySearch from a table keyed by keyword.
type perKeywordProvider struct {
	byKeyword map[string][]places.Place
}

func (p *perKeywordProvider) NearbySearch(_ context.Context, _, _ float64, _ int, keyword, _ string) ([]places.Place, error) {
	return p.byKeyword[keyword], nil
}

// errorThenResultProvider fails every query at one radius and answers from a
// table otherwise.
type errorThenResultProvider struct {
	failRadius int
	results    map[int][]places.Place
}

func (p *errorThenResultProvider) NearbySearch(_ context.Context, _, _ float64, radiusM int, _, _ string) ([]places.Place, error) {
	if radiusM == p.failRadius {
		return nil, eris.New("places: unexpected status 503")
	}
	return p.results[radiusM], nil
}

func TestLoadTiersDefaultsOnEmptyPath(t *testing.T) {
	tiers, err := LoadTiers("")
	require.NoError(t, err)
	require.Len(t, tiers, 3)
	assert.Equal(t, model.ConfidenceHigh, tiers[0].Confidence)
	assert.Equal(t, 1000, tiers[0].RadiusM)
	assert.NotEmpty(t, tiers[0].Queries)
	assert.NotEmpty(t, tiers[2].Queries)
}

func TestLoadTiersFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tiers:
  - confidence: HIGH
    radius_m: 500
    queries:
      - keyword: kiosk
        category: convenience_store
      - keyword: minimart
        category: convenience_store
  - confidence: LOW
    radius_m: 4000
    queries:
      - keyword: shop
`), 0o644))

	tiers, err := LoadTiers(path)
	require.NoError(t, err)
	require.Len(t, tiers, 2)
	assert.Equal(t, 500, tiers[0].RadiusM)
	require.Len(t, tiers[0].Queries, 2)
	assert.Equal(t, "kiosk", tiers[0].Queries[0].Keyword)
	assert.Equal(t, model.ConfidenceLow, tiers[1].Confidence)
}

func TestLoadTiersRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tiers:\n  - confidence: HIGH\n    radius_m: 0\n"), 0o644))

	_, err := LoadTiers(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-positive radius")
}

func TestLoadTiersRejectsEmptyQueryList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tiers:\n  - confidence: HIGH\n    radius_m: 500\n"), 0o644))

	_, err := LoadTiers(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no queries")
}
