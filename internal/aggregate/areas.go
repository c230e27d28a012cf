package aggregate

import (
	"github.com/sells-group/fieldscout/internal/model"
)

// Areas rolls scored units up into one AreaBlock per area id. Block order
// follows the first appearance of each area id in the input, so repeated runs
// over the same dataset produce identical output. Coordinates and the other
// static fields come from the first member; status and label are the most
// frequent member value.
func Areas(units []model.InfrastructureUnit) []model.AreaBlock {
	groups := groupBy(units, func(u model.InfrastructureUnit) string { return u.AreaID })

	blocks := make([]model.AreaBlock, 0, len(groups))
	for _, g := range groups {
		score := round1(meanBy(g.Members, func(u model.InfrastructureUnit) float64 { return u.Score }))

		b := model.AreaBlock{
			ID:             g.Key,
			Locality:       firstBy(g.Members, func(u model.InfrastructureUnit) string { return u.Locality }),
			Province:       firstBy(g.Members, func(u model.InfrastructureUnit) string { return u.Province }),
			District:       firstBy(g.Members, func(u model.InfrastructureUnit) string { return u.District }),
			Subdistrict:    firstBy(g.Members, func(u model.InfrastructureUnit) string { return u.Subdistrict }),
			LocationType:   firstBy(g.Members, func(u model.InfrastructureUnit) string { return u.LocationType }),
			Latitude:       firstBy(g.Members, func(u model.InfrastructureUnit) float64 { return u.Latitude }),
			Longitude:      firstBy(g.Members, func(u model.InfrastructureUnit) float64 { return u.Longitude }),
			UnitCount:      len(g.Members),
			AvailablePorts: sumBy(g.Members, func(u model.InfrastructureUnit) float64 { return u.AvailablePorts }),
			AreaPorts:      firstBy(g.Members, func(u model.InfrastructureUnit) float64 { return u.AreaPorts }),
			Score:          score,
			AvgAgeDays:     meanAge(g.Members),
			Status:         dominant(g.Members, func(u model.InfrastructureUnit) model.InstallationStatus { return u.Status }),
			Label:          dominant(g.Members, func(u model.InfrastructureUnit) model.PriorityLabel { return u.Label }),
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// meanAge averages installation age over units that report one. Units with
// unknown age do not drag the mean down.
func meanAge(units []model.InfrastructureUnit) float64 {
	var sum float64
	var n int
	for _, u := range units {
		if u.AgeDays != nil {
			sum += *u.AgeDays
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return round1(sum / float64(n))
}
