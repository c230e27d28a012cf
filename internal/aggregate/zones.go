package aggregate

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/fieldscout/internal/model"
)

// Zones groups area blocks by locality into deployment zones. Locality names
// are NFC-normalized before grouping so composed and decomposed spellings of
// the same name land in one zone. Every block belongs to exactly one zone.
func Zones(blocks []model.AreaBlock) []model.Zone {
	groups := groupBy(blocks, func(b model.AreaBlock) string { return canonicalLocality(b.Locality) })

	zones := make([]model.Zone, 0, len(groups))
	for _, g := range groups {
		score := round1(meanBy(g.Members, func(b model.AreaBlock) float64 { return b.Score }))

		z := model.Zone{
			ID:             zoneID(g.Key, len(g.Members)),
			Locality:       firstBy(g.Members, func(b model.AreaBlock) string { return b.Locality }),
			Province:       firstBy(g.Members, func(b model.AreaBlock) string { return b.Province }),
			District:       firstBy(g.Members, func(b model.AreaBlock) string { return b.District }),
			Subdistrict:    firstBy(g.Members, func(b model.AreaBlock) string { return b.Subdistrict }),
			LocationType:   dominant(g.Members, func(b model.AreaBlock) string { return b.LocationType }),
			Latitude:       round6(meanBy(g.Members, func(b model.AreaBlock) float64 { return b.Latitude })),
			Longitude:      round6(meanBy(g.Members, func(b model.AreaBlock) float64 { return b.Longitude })),
			BlockCount:     len(g.Members),
			UnitCount:      sumUnitCount(g.Members),
			AvailablePorts: sumBy(g.Members, func(b model.AreaBlock) float64 { return b.AvailablePorts }),
			AreaPorts:      sumBy(g.Members, func(b model.AreaBlock) float64 { return b.AreaPorts }),
			Score:          score,
			AvgAgeDays:     round1(meanBy(g.Members, func(b model.AreaBlock) float64 { return b.AvgAgeDays })),
			Status:         dominant(g.Members, func(b model.AreaBlock) model.InstallationStatus { return b.Status }),
			Label:          dominant(g.Members, func(b model.AreaBlock) model.PriorityLabel { return b.Label }),
		}
		for _, b := range g.Members {
			z.BlockIDs = append(z.BlockIDs, b.ID)
		}
		zones = append(zones, z)
	}
	return zones
}

// zoneID builds the stable zone identifier. A single-block zone reads
// "<locality>_ZONE_1BLOCK", multi-block zones "<locality>_ZONE_<n>BLOCKS".
func zoneID(locality string, blockCount int) string {
	name := strings.TrimSpace(locality)
	if name == "" {
		name = "UNKNOWN"
	}
	if blockCount == 1 {
		return fmt.Sprintf("%s_ZONE_1BLOCK", name)
	}
	return fmt.Sprintf("%s_ZONE_%dBLOCKS", name, blockCount)
}

func canonicalLocality(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func sumUnitCount(blocks []model.AreaBlock) int {
	var n int
	for _, b := range blocks {
		n += b.UnitCount
	}
	return n
}
