// Package locator finds an anchor point of interest for each deployment
// zone, searching outward through confidence tiers and falling back to
// neighboring grid cells when the zone itself has nothing usable.
package locator

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/fieldscout/internal/model"
)

// Query is one provider search within a tier's allow-list.
type Query struct {
	Keyword  string `yaml:"keyword"`
	Category string `yaml:"category,omitempty"`
}

// Tier is one ring of the search waterfall. Every query in the tier's
// allow-list is issued and the results merged before ranking; tiers are
// tried in order and the first one that yields a usable candidate wins.
type Tier struct {
	Confidence model.Confidence `yaml:"confidence"`
	RadiusM    int              `yaml:"radius_m"`
	Queries    []Query          `yaml:"queries"`
}

// DefaultTiers is the built-in search waterfall: a tight ring of small-format
// convenience brands, a wider ring adding supermarkets, and a last generic
// retail ring.
func DefaultTiers() []Tier {
	return []Tier{
		{
			Confidence: model.ConfidenceHigh,
			RadiusM:    1000,
			Queries: []Query{
				{Keyword: "7-Eleven", Category: "convenience_store"},
				{Keyword: "เซเว่น", Category: "convenience_store"},
				{Keyword: "FamilyMart", Category: "convenience_store"},
				{Keyword: "Lotus Go Fresh", Category: "convenience_store"},
				{Keyword: "Big C Mini", Category: "convenience_store"},
				{Keyword: "CP Freshmart", Category: "convenience_store"},
			},
		},
		{
			Confidence: model.ConfidenceMedium,
			RadiusM:    2000,
			Queries: []Query{
				{Keyword: "convenience store", Category: "convenience_store"},
				{Keyword: "Mini Mart", Category: "convenience_store"},
				{Keyword: "108 Shop", Category: "convenience_store"},
				{Keyword: "Lawson", Category: "convenience_store"},
				{Keyword: "supermarket", Category: "supermarket"},
				{Keyword: "grocery", Category: "supermarket"},
			},
		},
		{
			Confidence: model.ConfidenceLow,
			RadiusM:    3000,
			Queries: []Query{
				{Keyword: "store"},
				{Keyword: "market"},
				{Keyword: "grocery store"},
				{Keyword: "minimart"},
				{Keyword: "shop"},
			},
		},
	}
}

type tierFile struct {
	Tiers []Tier `yaml:"tiers"`
}

// LoadTiers reads a tier waterfall from a YAML file. An empty path returns
// the defaults.
func LoadTiers(path string) ([]Tier, error) {
	if path == "" {
		return DefaultTiers(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "locator: reading tier config %s", path)
	}

	var f tierFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "locator: parsing tier config %s", path)
	}
	if len(f.Tiers) == 0 {
		return nil, eris.Errorf("locator: tier config %s defines no tiers", path)
	}
	for i, tier := range f.Tiers {
		if tier.RadiusM <= 0 {
			return nil, eris.Errorf("locator: tier %d has non-positive radius", i)
		}
		if tier.Confidence == "" {
			return nil, eris.Errorf("locator: tier %d has no confidence label", i)
		}
		if len(tier.Queries) == 0 {
			return nil, eris.Errorf("locator: tier %d has no queries", i)
		}
	}
	return f.Tiers, nil
}
