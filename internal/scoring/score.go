// Package scoring computes per-unit priority scores from spare capacity and
// installation age.
package scoring

import (
	"math"

	"go.uber.org/zap"

	"github.com/sells-group/fieldscout/internal/model"
)

// Age thresholds in days for the urgency step function and the installation
// status buckets.
const (
	NewThresholdDays    = 180
	MediumThresholdDays = 365
)

// Urgency sub-scores: newer installs are more urgent to sell into.
const (
	urgencyNew    = 60.0
	urgencyMedium = 36.0
	urgencyOld    = 12.0
)

// availabilityWeight scales the spare-capacity ratio into its 40-point share.
const availabilityWeight = 40.0

// Score computes the 0-100 priority score and its label for one unit.
// Malformed numeric inputs are logged and default the score to 0; the unit
// stays in the dataset for counting purposes.
func Score(u *model.InfrastructureUnit) (float64, model.PriorityLabel) {
	avail, ok := availabilityScore(u)
	if !ok {
		zap.L().Warn("scoring: malformed capacity fields, defaulting to 0",
			zap.String("unit", u.ID),
			zap.Float64("total_ports", u.TotalPorts),
			zap.Float64("available_ports", u.AvailablePorts),
		)
		return 0.0, Label(0.0)
	}

	score := round1(avail + urgencyScore(u.AgeDays))
	return score, Label(score)
}

// Apply scores every unit in place, also assigning the installation status.
func Apply(units []model.InfrastructureUnit) {
	for i := range units {
		u := &units[i]
		u.Score, u.Label = Score(u)
		u.Status = InstallStatus(u.AgeDays)
	}
}

// availabilityScore returns the spare-capacity component, or ok=false when
// the capacity fields are not sane numbers.
func availabilityScore(u *model.InfrastructureUnit) (float64, bool) {
	if badNumber(u.TotalPorts) || badNumber(u.AvailablePorts) {
		return 0, false
	}
	if u.TotalPorts <= 0 {
		return 0, true
	}
	return (u.AvailablePorts / u.TotalPorts) * availabilityWeight, true
}

// urgencyScore is a step function of age in service. Missing age is treated
// the same as old stock.
func urgencyScore(ageDays *float64) float64 {
	if ageDays == nil || badNumber(*ageDays) {
		return urgencyOld
	}
	switch {
	case *ageDays <= NewThresholdDays:
		return urgencyNew
	case *ageDays <= MediumThresholdDays:
		return urgencyMedium
	default:
		return urgencyOld
	}
}

// Label maps a score onto its priority band. Bands are half-open except the
// top, which is closed so a perfect 100 still reads VERY_HIGH.
func Label(score float64) model.PriorityLabel {
	switch {
	case score >= 80 && score <= 100:
		return model.PriorityVeryHigh
	case score >= 60 && score < 80:
		return model.PriorityHigh
	case score >= 40 && score < 60:
		return model.PriorityMedium
	case score >= 20 && score < 40:
		return model.PriorityLow
	default:
		return model.PriorityVeryLow
	}
}

// InstallStatus buckets age in service. Missing age reads as Old.
func InstallStatus(ageDays *float64) model.InstallationStatus {
	if ageDays == nil || badNumber(*ageDays) {
		return model.StatusOld
	}
	switch {
	case *ageDays <= NewThresholdDays:
		return model.StatusNew
	case *ageDays <= MediumThresholdDays:
		return model.StatusMedium
	default:
		return model.StatusOld
	}
}

func badNumber(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0) || v < 0
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
