// Package timing turns raw venue busyness forecasts into survey-ready
// visiting profiles, correcting for closed hours and the zone's land use.
package timing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sells-group/fieldscout/internal/model"
	"github.com/sells-group/fieldscout/pkg/besttime"
)

// Mode selects how a zone's forecast is interpreted.
type Mode string

const (
	// ModeCommercial reads the forecast as-is over the full day.
	ModeCommercial Mode = "commercial"
	// ModeResidential narrows interpretation to daylight hours. Evening
	// spikes at an anchor venue near housing say little about when
	// residents are reachable at home.
	ModeResidential Mode = "residential"
)

// ModeFor maps a zone location type to an interpretation mode.
func ModeFor(locationType string) Mode {
	if strings.EqualFold(strings.TrimSpace(locationType), "residential") {
		return ModeResidential
	}
	return ModeCommercial
}

const (
	// minPeakIntensity is the floor below which an hour is not considered
	// a peak at all.
	minPeakIntensity = 1
	// peaksPerDayType is how many peak hours each day type reports.
	peaksPerDayType = 3

	bestDayStartHour = 16
	bestDayEndHour   = 20

	activityStartHour = 6
	activityEndHour   = 22

	residentialStartHour = 6
	residentialEndHour   = 18
)

var weekdayNames = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true,
}

// Correct builds a visiting profile from a weekly forecast. Hours carrying
// the closed sentinel are dropped before any aggregation; a forecast that is
// entirely sentinel or empty yields a no-data profile.
func Correct(week *besttime.WeekSeries, mode Mode) model.TimingProfile {
	if week == nil || len(week.Days) == 0 {
		return model.TimingProfile{Status: model.TimingNoData}
	}

	startHour, endHour := 0, 23
	if mode == ModeResidential {
		startHour, endHour = residentialStartHour, residentialEndHour
	}

	var weekdaySum, weekendSum hourAccumulator
	live := false
	for _, day := range week.Days {
		for _, h := range day.Hours {
			if h.Intensity == besttime.ClosedSentinel {
				continue
			}
			if h.Hour < startHour || h.Hour > endHour {
				continue
			}
			live = true
			if weekdayNames[strings.ToLower(day.Day)] {
				weekdaySum.add(h.Hour, h.Intensity)
			} else {
				weekendSum.add(h.Hour, h.Intensity)
			}
		}
	}
	if !live {
		return model.TimingProfile{Status: model.TimingNoData}
	}

	return model.TimingProfile{
		WeekdayPeaks: weekdaySum.topPeaks(),
		WeekendPeaks: weekendSum.topPeaks(),
		BestDay:      bestDay(week),
		Activity:     activityLevel(week),
		Status:       model.TimingLive,
	}
}

// hourAccumulator collects per-hour intensity means across the days of one
// day type.
type hourAccumulator struct {
	sum   [24]float64
	count [24]int
}

func (a *hourAccumulator) add(hour, intensity int) {
	if hour < 0 || hour > 23 {
		return
	}
	a.sum[hour] += float64(intensity)
	a.count[hour]++
}

// topPeaks picks the strongest hours and presents them in clock order, so
// "09:00, 12:00, 18:00" rather than strongest-first.
func (a *hourAccumulator) topPeaks() []string {
	type hourMean struct {
		hour int
		mean float64
	}
	var candidates []hourMean
	for h := 0; h < 24; h++ {
		if a.count[h] == 0 {
			continue
		}
		mean := a.sum[h] / float64(a.count[h])
		if mean < minPeakIntensity {
			continue
		}
		candidates = append(candidates, hourMean{hour: h, mean: mean})
	}

	// strongest first; earlier hour wins a tie
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].mean != candidates[j].mean {
			return candidates[i].mean > candidates[j].mean
		}
		return candidates[i].hour < candidates[j].hour
	})
	if len(candidates) > peaksPerDayType {
		candidates = candidates[:peaksPerDayType]
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].hour < candidates[j].hour })

	peaks := make([]string, 0, len(candidates))
	for _, c := range candidates {
		peaks = append(peaks, fmt.Sprintf("%02d:00", c.hour))
	}
	return peaks
}

// bestDay names the day with the highest mean busyness over the late
// afternoon window, when field teams do doorstep visits.
func bestDay(week *besttime.WeekSeries) string {
	best := ""
	bestMean := -1.0
	for _, day := range week.Days {
		var sum float64
		var n int
		for _, h := range day.Hours {
			if h.Intensity == besttime.ClosedSentinel {
				continue
			}
			if h.Hour < bestDayStartHour || h.Hour > bestDayEndHour {
				continue
			}
			sum += float64(h.Intensity)
			n++
		}
		if n == 0 {
			continue
		}
		if mean := sum / float64(n); mean > bestMean {
			bestMean = mean
			best = day.Day
		}
	}
	return best
}

// activityLevel bands the overall daytime busyness of the venue.
func activityLevel(week *besttime.WeekSeries) model.ActivityLevel {
	var sum float64
	var n int
	for _, day := range week.Days {
		for _, h := range day.Hours {
			if h.Intensity == besttime.ClosedSentinel {
				continue
			}
			if h.Hour < activityStartHour || h.Hour > activityEndHour {
				continue
			}
			sum += float64(h.Intensity)
			n++
		}
	}
	if n == 0 {
		return model.ActivityLow
	}

	mean := sum / float64(n)
	switch {
	case mean >= 75:
		return model.ActivityVeryHigh
	case mean >= 60:
		return model.ActivityHigh
	case mean >= 40:
		return model.ActivityMedium
	default:
		return model.ActivityLow
	}
}
