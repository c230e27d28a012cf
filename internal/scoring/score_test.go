package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/fieldscout/internal/model"
)

func age(days float64) *float64 { return &days }

func TestScore_ReferenceCase(t *testing.T) {
	// total=10, available=4, age=100: availability 16.0, urgency 60, score 76.0.
	u := &model.InfrastructureUnit{TotalPorts: 10, AvailablePorts: 4, AgeDays: age(100)}
	score, label := Score(u)
	assert.Equal(t, 76.0, score)
	assert.Equal(t, model.PriorityHigh, label)
}

func TestScore_ZeroTotalPorts(t *testing.T) {
	u := &model.InfrastructureUnit{TotalPorts: 0, AvailablePorts: 4, AgeDays: age(100)}
	score, _ := Score(u)
	assert.Equal(t, 60.0, score) // urgency only
}

func TestScore_RangeBounds(t *testing.T) {
	cases := []*model.InfrastructureUnit{
		{TotalPorts: 10, AvailablePorts: 10, AgeDays: age(1)},   // max: 40+60
		{TotalPorts: 10, AvailablePorts: 0, AgeDays: age(9999)}, // min non-error: 0+12
		{TotalPorts: 0, AvailablePorts: 0},
	}
	for _, u := range cases {
		score, _ := Score(u)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}

func TestUrgencyScore_Steps(t *testing.T) {
	assert.Equal(t, 60.0, urgencyScore(age(100)))
	assert.Equal(t, 60.0, urgencyScore(age(180)))
	assert.Equal(t, 36.0, urgencyScore(age(300)))
	assert.Equal(t, 36.0, urgencyScore(age(365)))
	assert.Equal(t, 12.0, urgencyScore(age(400)))
	assert.Equal(t, 12.0, urgencyScore(nil))
}

func TestScore_PerfectScoreIsVeryHigh(t *testing.T) {
	u := &model.InfrastructureUnit{TotalPorts: 100, AvailablePorts: 100, AgeDays: age(30)}
	score, label := Score(u)
	assert.Equal(t, 100.0, score)
	assert.Equal(t, model.PriorityVeryHigh, label)
}

func TestLabel_Bands(t *testing.T) {
	cases := []struct {
		score float64
		want  model.PriorityLabel
	}{
		{100, model.PriorityVeryHigh},
		{80, model.PriorityVeryHigh},
		{79.9, model.PriorityHigh},
		{60, model.PriorityHigh},
		{59.9, model.PriorityMedium},
		{40, model.PriorityMedium},
		{39.9, model.PriorityLow},
		{20, model.PriorityLow},
		{19.9, model.PriorityVeryLow},
		{0, model.PriorityVeryLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Label(tc.score), "score %.1f", tc.score)
	}
}

func TestScore_MalformedNumbersDefaultToZero(t *testing.T) {
	cases := []*model.InfrastructureUnit{
		{TotalPorts: math.NaN(), AvailablePorts: 4},
		{TotalPorts: 10, AvailablePorts: math.Inf(1)},
		{TotalPorts: -5, AvailablePorts: 4},
	}
	for _, u := range cases {
		score, label := Score(u)
		assert.Equal(t, 0.0, score)
		assert.Equal(t, model.PriorityVeryLow, label)
	}
}

func TestInstallStatus(t *testing.T) {
	assert.Equal(t, model.StatusNew, InstallStatus(age(90)))
	assert.Equal(t, model.StatusMedium, InstallStatus(age(200)))
	assert.Equal(t, model.StatusOld, InstallStatus(age(500)))
	assert.Equal(t, model.StatusOld, InstallStatus(nil))
}

func TestApply_FillsAllUnits(t *testing.T) {
	units := []model.InfrastructureUnit{
		{ID: "a", TotalPorts: 10, AvailablePorts: 4, AgeDays: age(100)},
		{ID: "b", TotalPorts: 8, AvailablePorts: 2, AgeDays: age(500)},
	}
	Apply(units)
	assert.Equal(t, 76.0, units[0].Score)
	assert.Equal(t, model.StatusNew, units[0].Status)
	assert.Equal(t, 22.0, units[1].Score)
	assert.Equal(t, model.StatusOld, units[1].Status)
}
