// Package pipeline orchestrates a full report run: score, aggregate, rank,
// then enrich the top zones with anchor POIs and visiting profiles.
package pipeline

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/fieldscout/internal/aggregate"
	"github.com/sells-group/fieldscout/internal/locator"
	"github.com/sells-group/fieldscout/internal/model"
	"github.com/sells-group/fieldscout/internal/scoring"
	"github.com/sells-group/fieldscout/internal/store"
	"github.com/sells-group/fieldscout/internal/timing"
	"github.com/sells-group/fieldscout/pkg/besttime"
	"github.com/sells-group/fieldscout/pkg/places"
)

// Options configures a report run.
type Options struct {
	TopN          int
	Concurrency   int
	RateLimit     rate.Limit // provider calls per second across all workers
	Tiers         []locator.Tier
	TimingEnabled bool
}

// defaults applied when an option is zero.
const (
	defaultTopN        = 10
	defaultConcurrency = 4
	defaultRateLimit   = rate.Limit(0.5) // one call per two seconds
)

// Pipeline runs report generation end to end.
type Pipeline struct {
	places   places.Client
	besttime besttime.Client
	store    store.Store // may be nil; persistence is then skipped
	opts     Options
	limiter  *rate.Limiter
}

// New creates a pipeline. The store is optional: without one the run is
// still produced, just not persisted. The places client is also optional:
// without one POI lookup is skipped and rows carry empty anchor fields.
func New(placesClient places.Client, besttimeClient besttime.Client, st store.Store, opts Options) *Pipeline {
	if opts.TopN <= 0 {
		opts.TopN = defaultTopN
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	return &Pipeline{
		places:   placesClient,
		besttime: besttimeClient,
		store:    st,
		opts:     opts,
		limiter:  rate.NewLimiter(opts.RateLimit, 1),
	}
}

// Result is the outcome of one report run.
type Result struct {
	Run     *model.Run
	Rows    []model.ReportRow
	Summary model.RunSummary
}

// enrichment holds what the workers attach to one ranked zone.
type enrichment struct {
	poi    *model.POIAssignment
	timing model.TimingProfile
}

// Run executes the full pipeline over an already-loaded dataset. excluded is
// the loader's dropped-row count, carried into the run summary.
func (p *Pipeline) Run(ctx context.Context, units []model.InfrastructureUnit, excluded int, params model.RunParams) (*Result, error) {
	if len(units) == 0 {
		return nil, eris.New("pipeline: no units to process")
	}

	var run *model.Run
	if p.store != nil {
		var err error
		run, err = p.store.CreateRun(ctx, params)
		if err != nil {
			return nil, eris.Wrap(err, "pipeline: create run")
		}
	}

	res, err := p.execute(ctx, units, excluded)
	if err != nil {
		if run != nil {
			if ferr := p.store.FailRun(ctx, run.ID, err.Error()); ferr != nil {
				zap.L().Error("pipeline: recording run failure", zap.Error(ferr))
			}
		}
		return nil, err
	}

	if run != nil {
		if err := p.store.SaveRows(ctx, run.ID, res.Rows); err != nil {
			return nil, eris.Wrap(err, "pipeline: save rows")
		}
		if err := p.store.CompleteRun(ctx, run.ID, &res.Summary); err != nil {
			return nil, eris.Wrap(err, "pipeline: complete run")
		}
		run.Status = model.RunStatusCompleted
		run.Summary = &res.Summary
		res.Run = run
	}
	return res, nil
}

func (p *Pipeline) execute(ctx context.Context, units []model.InfrastructureUnit, excluded int) (*Result, error) {
	scoring.Apply(units)
	blocks := aggregate.Areas(units)
	zones := aggregate.Zones(blocks)

	ranked := rankZones(zones)
	if len(ranked) > p.opts.TopN {
		ranked = ranked[:p.opts.TopN]
	}

	zap.L().Info("pipeline: ranked zones",
		zap.Int("units", len(units)),
		zap.Int("blocks", len(blocks)),
		zap.Int("zones", len(zones)),
		zap.Int("reported", len(ranked)))

	enrichments, err := p.enrich(ctx, ranked)
	if err != nil {
		return nil, err
	}

	rows := buildRows(ranked, units, enrichments)

	summary := model.RunSummary{
		UnitsLoaded:   len(units),
		UnitsExcluded: excluded,
		AreaBlocks:    len(blocks),
		Zones:         len(zones),
		ZonesReported: len(ranked),
	}
	for _, e := range enrichments {
		if e.poi != nil && e.poi.Found() {
			summary.POIFound++
		}
		if e.timing.Status == model.TimingLive {
			summary.TimingLive++
		}
	}

	return &Result{Rows: rows, Summary: summary}, nil
}

// enrich fans the ranked zones out over a bounded worker pool. Results land
// at their zone's rank index so output order never depends on scheduling.
func (p *Pipeline) enrich(ctx context.Context, ranked []model.Zone) ([]enrichment, error) {
	enrichments := make([]enrichment, len(ranked))

	// The exclusion set and the coordinate cache live for exactly one run,
	// so venues claimed here can never leak into a later report.
	var loc *locator.Locator
	if p.places != nil {
		loc = locator.New(p.places, p.opts.Tiers, locator.NewExclusionSet())
	}
	cache := newCoordCache()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for i, zone := range ranked {
		g.Go(func() error {
			e, err := p.enrichZone(ctx, loc, cache, zone)
			if err != nil {
				return err
			}
			enrichments[i] = *e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "pipeline: enrich zones")
	}
	return enrichments, nil
}

func (p *Pipeline) enrichZone(ctx context.Context, loc *locator.Locator, cache *coordCache, zone model.Zone) (*enrichment, error) {
	anchorAreaID := ""
	if len(zone.BlockIDs) > 0 {
		anchorAreaID = zone.BlockIDs[0]
	}

	poi, err := p.locatePOI(ctx, loc, cache, zone, anchorAreaID)
	if err != nil {
		return nil, err
	}

	mode := timing.ModeFor(zone.LocationType)
	profile := p.timingProfile(ctx, zone, poi, mode)

	return &enrichment{poi: poi, timing: profile}, nil
}

func (p *Pipeline) locatePOI(ctx context.Context, loc *locator.Locator, cache *coordCache, zone model.Zone, anchorAreaID string) (*model.POIAssignment, error) {
	if loc == nil {
		return &model.POIAssignment{
			Confidence:   model.ConfidenceNone,
			AnchorAreaID: anchorAreaID,
			Remark:       "poi lookup disabled",
		}, nil
	}

	key := CoordKey(zone.Latitude, zone.Longitude)
	if a, ok := cache.get(key); ok {
		return a, nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "pipeline: rate limit wait")
	}
	a, err := loc.Locate(ctx, zone.Latitude, zone.Longitude, anchorAreaID)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: locating poi for zone %s", zone.ID)
	}

	cache.put(key, a)
	return a, nil
}

func (p *Pipeline) timingProfile(ctx context.Context, zone model.Zone, poi *model.POIAssignment, mode timing.Mode) model.TimingProfile {
	if !p.opts.TimingEnabled || p.besttime == nil {
		return model.TimingProfile{Status: model.TimingDisabled}
	}
	if poi == nil || !poi.Found() {
		return timing.DefaultProfile(zone.ID, model.TimingNoPOI, mode)
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return timing.DefaultProfile(zone.ID, model.TimingError, mode)
	}
	week, err := p.besttime.VenueWeek(ctx, poi.POI.Name, poi.POI.Address)
	if err != nil {
		status := model.TimingError
		if eris.Is(err, besttime.ErrVenueNotFound) {
			status = model.TimingNotFound
		} else {
			zap.L().Warn("pipeline: timing fetch failed",
				zap.String("zone", zone.ID), zap.Error(err))
		}
		return timing.DefaultProfile(zone.ID, status, mode)
	}

	profile := timing.Correct(week, mode)
	if profile.Status == model.TimingNoData {
		return timing.DefaultProfile(zone.ID, model.TimingNoData, mode)
	}
	return profile
}

// rankZones orders zones by priority score, best first. Equal scores fall
// back to zone id so the ranking is stable across runs.
func rankZones(zones []model.Zone) []model.Zone {
	ranked := append([]model.Zone(nil), zones...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}
