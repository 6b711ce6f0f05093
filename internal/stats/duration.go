package stats

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

// Minutes is a whole-minute duration rendered as "Xd Yh Zm".
type Minutes int64

var durationPattern = regexp.MustCompile(`(\d+)d\s*(\d+)h\s*(\d+)m`)

// FormatMinutes renders m as "Xd Yh Zm". Non-positive values render as
// "0d 0h 0m".
func FormatMinutes(m Minutes) string {
	if m <= 0 {
		return "0d 0h 0m"
	}
	days := m / minutesPerDay
	hours := (m % minutesPerDay) / minutesPerHour
	mins := m % minutesPerHour
	return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
}

// ParseDuration reads "Xd Yh Zm" back into minutes. Anything else is 0.
func ParseDuration(s string) Minutes {
	match := durationPattern.FindStringSubmatch(s)
	if match == nil {
		return 0
	}
	days, _ := strconv.ParseInt(match[1], 10, 64)
	hours, _ := strconv.ParseInt(match[2], 10, 64)
	mins, _ := strconv.ParseInt(match[3], 10, 64)
	return Minutes(days*minutesPerDay + hours*minutesPerHour + mins)
}

func (m Minutes) String() string {
	return FormatMinutes(m)
}

// MarshalJSON writes m in the "Xd Yh Zm" display format.
func (m Minutes) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatMinutes(m))
}

func (m *Minutes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("minutes must be a duration string: %w", err)
	}
	*m = ParseDuration(s)
	return nil
}

// MinutesBetween is the floor of whole minutes from start to end. It is 0
// when either bound is missing or end is before start.
func MinutesBetween(start, end *time.Time) Minutes {
	if start == nil || end == nil {
		return 0
	}
	d := end.Sub(*start)
	if d < 0 {
		return 0
	}
	return Minutes(d / time.Minute)
}

type number interface {
	~int | ~int64 | ~float64
}

// AverageMinutes is the mean of values rounded to the nearest minute, or 0
// when values is empty.
func AverageMinutes[T number](values []T) Minutes {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	return Minutes(math.Round(sum / float64(len(values))))
}

// WeightedMinutes pairs an average duration with the number of samples it
// was computed from.
type WeightedMinutes struct {
	Minutes Minutes
	Weight  int
}

// WeightedAverageMinutes is round(Σ(d·w)/Σw) over pairs with a positive
// weight, or 0 when there are none.
func WeightedAverageMinutes(pairs []WeightedMinutes) Minutes {
	var sum float64
	var total int
	for _, p := range pairs {
		if p.Weight <= 0 {
			continue
		}
		sum += float64(p.Minutes) * float64(p.Weight)
		total += p.Weight
	}
	if total == 0 {
		return 0
	}
	return Minutes(math.Round(sum / float64(total)))
}
