package stats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.01},
		{2.675, 2.68},
		{-1.005, -1.01},
		{66.666666, 66.67},
		{10, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "Round2(%v)", tt.in)
	}
}

func TestPercentAndRatio(t *testing.T) {
	assert.Equal(t, 33.33, Percent(1, 3))
	assert.Equal(t, 66.67, Percent(2, 3))
	assert.Equal(t, 150.0, Percent(3, 2))
	assert.Equal(t, 0.0, Percent(5, 0))

	assert.Equal(t, 2.5, Ratio(10, 4))
	assert.Equal(t, 11.67, Ratio(35, 3))
	assert.Equal(t, 0.0, Ratio(10, 0))
}

func TestWeightedAverage(t *testing.T) {
	got := WeightedAverage([]Weighted{
		{Value: 50, Weight: 2},
		{Value: 100, Weight: 0},
		{Value: 80, Weight: 1},
	})
	assert.Equal(t, 60.0, got)

	assert.Equal(t, 0.0, WeightedAverage(nil))
	assert.Equal(t, 0.0, WeightedAverage([]Weighted{{Value: 10, Weight: 0}}))
}

func TestFormatAndParseDuration(t *testing.T) {
	tests := []struct {
		minutes Minutes
		text    string
	}{
		{0, "0d 0h 0m"},
		{59, "0d 0h 59m"},
		{61, "0d 1h 1m"},
		{1501, "1d 1h 1m"},
		{3075, "2d 3h 15m"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.text, FormatMinutes(tt.minutes))
			assert.Equal(t, tt.minutes, ParseDuration(tt.text))
		})
	}

	assert.Equal(t, "0d 0h 0m", FormatMinutes(-5))
	assert.Equal(t, Minutes(0), ParseDuration("three days"))
	assert.Equal(t, Minutes(1501), ParseDuration("1d1h1m"))
}

func TestMinutesJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Avg Minutes `json:"avg"`
	}{Avg: 1501})
	require.NoError(t, err)
	assert.JSONEq(t, `{"avg":"1d 1h 1m"}`, string(out))

	var back struct {
		Avg Minutes `json:"avg"`
	}
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, Minutes(1501), back.Avg)

	assert.Error(t, json.Unmarshal([]byte(`{"avg":42}`), &back))
}

func TestMinutesBetween(t *testing.T) {
	start := day(2024, 3, 1)
	later := start.Add(90 * time.Second)
	earlier := start.Add(-time.Hour)

	assert.Equal(t, Minutes(1), MinutesBetween(&start, &later))
	assert.Equal(t, Minutes(0), MinutesBetween(&start, &earlier))
	assert.Equal(t, Minutes(0), MinutesBetween(nil, &later))
	assert.Equal(t, Minutes(0), MinutesBetween(&start, nil))
}

func TestAverageMinutes(t *testing.T) {
	assert.Equal(t, Minutes(2), AverageMinutes([]Minutes{1, 2}))
	assert.Equal(t, Minutes(10), AverageMinutes([]float64{10.4, 10.4}))
	assert.Equal(t, Minutes(0), AverageMinutes([]Minutes{}))
}

func TestWeightedAverageMinutes(t *testing.T) {
	got := WeightedAverageMinutes([]WeightedMinutes{
		{Minutes: 100, Weight: 1},
		{Minutes: 200, Weight: 3},
		{Minutes: 999, Weight: 0},
	})
	assert.Equal(t, Minutes(175), got)
	assert.Equal(t, Minutes(0), WeightedAverageMinutes(nil))
}
