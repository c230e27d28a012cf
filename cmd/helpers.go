package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/fieldscout/internal/loader"
	"github.com/sells-group/fieldscout/internal/locator"
	"github.com/sells-group/fieldscout/internal/model"
	"github.com/sells-group/fieldscout/internal/pipeline"
	"github.com/sells-group/fieldscout/internal/store"
	"github.com/sells-group/fieldscout/pkg/besttime"
	"github.com/sells-group/fieldscout/pkg/places"
)

// initStore opens the configured store backend and runs migrations.
func initStore(ctx context.Context) (store.Store, error) {
	var st store.Store
	var err error

	switch cfg.Store.Driver {
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	case "sqlite", "":
		st, err = store.NewSQLite(cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// initPipeline assembles a report pipeline from the loaded config. Missing
// provider credentials disable that capability instead of failing the run,
// with a single warning at startup.
func initPipeline(st store.Store) (*pipeline.Pipeline, error) {
	tiers, err := locator.LoadTiers(cfg.Locator.TiersPath)
	if err != nil {
		return nil, err
	}

	var placesClient places.Client
	if cfg.Places.Key != "" {
		placesClient = places.NewClient(cfg.Places.Key, placesOpts()...)
	} else {
		zap.L().Warn("places.key not set, poi lookup disabled for this run")
	}

	var besttimeClient besttime.Client
	timingEnabled := cfg.BestTime.Enabled && cfg.BestTime.Key != ""
	if timingEnabled {
		besttimeClient = besttime.NewClient(cfg.BestTime.Key, besttimeOpts()...)
	} else if cfg.BestTime.Enabled {
		zap.L().Warn("besttime.key not set, timing profiles disabled for this run")
	}

	return pipeline.New(placesClient, besttimeClient, st, pipeline.Options{
		TopN:          cfg.Pipeline.TopN,
		Concurrency:   cfg.Pipeline.Concurrency,
		RateLimit:     rate.Limit(cfg.Pipeline.RatePerSec),
		Tiers:         tiers,
		TimingEnabled: timingEnabled,
	}), nil
}

func placesOpts() []places.Option {
	if cfg.Places.BaseURL == "" {
		return nil
	}
	return []places.Option{places.WithBaseURL(cfg.Places.BaseURL)}
}

func besttimeOpts() []besttime.Option {
	if cfg.BestTime.BaseURL == "" {
		return nil
	}
	return []besttime.Option{besttime.WithBaseURL(cfg.BestTime.BaseURL)}
}

// datasetFilter builds the unit filter from the shared report/rank flags.
func datasetFilter(cmd *cobra.Command) pipeline.Filter {
	provinces, _ := cmd.Flags().GetStringSlice("province")
	districts, _ := cmd.Flags().GetStringSlice("district")
	subdistricts, _ := cmd.Flags().GetStringSlice("subdistrict")
	localities, _ := cmd.Flags().GetStringSlice("locality")
	areaIDs, _ := cmd.Flags().GetStringSlice("area")
	locationType, _ := cmd.Flags().GetString("location-type")
	bbox, _ := cmd.Flags().GetFloat64Slice("bbox")

	f := pipeline.Filter{
		Provinces:    provinces,
		Districts:    districts,
		Subdistricts: subdistricts,
		Localities:   localities,
		AreaIDs:      areaIDs,
		LocationType: locationType,
	}
	if len(bbox) == 4 {
		f.MinLat, f.MinLng, f.MaxLat, f.MaxLng = bbox[0], bbox[1], bbox[2], bbox[3]
	}
	return f
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("province", nil, "filter by province name")
	cmd.Flags().StringSlice("district", nil, "filter by district name")
	cmd.Flags().StringSlice("subdistrict", nil, "filter by subdistrict name")
	cmd.Flags().StringSlice("locality", nil, "filter by locality name")
	cmd.Flags().StringSlice("area", nil, "filter by area id")
	cmd.Flags().String("location-type", "", "filter by location type")
	cmd.Flags().Float64Slice("bbox", nil, "bounding box: min-lat,min-lng,max-lat,max-lng")
}

// loadFiltered loads the dataset and applies the command's filters.
func loadFiltered(cmd *cobra.Command, path string) ([]model.InfrastructureUnit, int, error) {
	res, err := loader.Load(path)
	if err != nil {
		return nil, 0, err
	}

	units := datasetFilter(cmd).Apply(res.Units)
	if len(units) == 0 {
		return nil, 0, eris.New("no units match the given filters")
	}
	return units, res.Excluded, nil
}
