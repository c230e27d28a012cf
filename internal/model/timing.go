package model

// TimingStatus tags where a timing profile came from.
type TimingStatus string

// Timing statuses. Everything except TimingLive is some flavor of default.
const (
	TimingLive     TimingStatus = "live"      // derived from a provider response
	TimingNoData   TimingStatus = "no_data"   // provider responded with an empty series
	TimingNotFound TimingStatus = "not_found" // provider does not know the venue
	TimingError    TimingStatus = "error"     // provider or parse failure
	TimingNoPOI    TimingStatus = "no_poi"    // no POI assigned, corrector never called
	TimingDisabled TimingStatus = "disabled"  // provider credentials missing
)

// ActivityLevel is a banded summary of mean business-hour busyness.
type ActivityLevel string

// Activity levels.
const (
	ActivityVeryHigh ActivityLevel = "Very High"
	ActivityHigh     ActivityLevel = "High"
	ActivityMedium   ActivityLevel = "Medium"
	ActivityLow      ActivityLevel = "Low"
)

// TimingProfile is the derived best-time-to-visit summary for a venue.
// Peak hour slices are "HH:00" strings in ascending hour order.
type TimingProfile struct {
	WeekdayPeaks []string      `json:"weekday_peaks"`
	WeekendPeaks []string      `json:"weekend_peaks"`
	BestDay      string        `json:"best_day"`
	Activity     ActivityLevel `json:"activity"`
	Status       TimingStatus  `json:"status"`
}
