package usage

import (
	"time"

	"github.com/google/uuid"
)

// Day identifies a single UTC calendar day in "YYYY-MM-DD" form.
// It is the second half of the counter key: one row exists per (user, day).
type Day string

const dayLayout = "2006-01-02"

// DayOf returns the UTC day containing t. The conversion to UTC happens
// here so that callers in any time zone agree on the day boundary.
func DayOf(t time.Time) Day {
	return Day(t.UTC().Format(dayLayout))
}

// Time returns the UTC midnight instant at which the day starts.
func (d Day) Time() (time.Time, error) {
	return time.Parse(dayLayout, string(d))
}

// DailyUsage is the counter row for one user on one UTC day.
// All fields are monotonically increasing within the day; the reset is
// implicit in the day key changing at UTC midnight.
type DailyUsage struct {
	UserID       uuid.UUID `json:"user_id"`
	Day          Day       `json:"day"`
	RequestCount int64     `json:"request_count"`
	InputTokens  int64     `json:"input_tokens"`
	OutputTokens int64     `json:"output_tokens"`
	TotalCostUSD float64   `json:"total_cost_usd"`
}

// Delta carries the consumption recorded by a single request.
// The request count itself is not part of the delta: every increment
// adds exactly one request.
type Delta struct {
	InputTokens  int64
	OutputTokens int64
	CostUSD      float64
}

func (d Delta) validate() error {
	if d.InputTokens < 0 || d.OutputTokens < 0 || d.CostUSD < 0 {
		return ErrNegativeDelta
	}
	return nil
}
