package clock

import (
	"fmt"
	"math"
	"time"
)

// accepted layouts for work timestamps, the first one is what datetime-local inputs submit
var layouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

func Now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}

// Parse reads a naive work timestamp
func Parse(value string) (time.Time, error) {
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not a valid time: %s", value)
}

// WorkedHours returns billable hours between start and end minus the break.
// An end not after start is taken as the next day.
func WorkedHours(start, end string, breakMinutes float64) float64 {
	from, err := Parse(start)
	if err != nil {
		return 0
	}
	to, err := Parse(end)
	if err != nil {
		return 0
	}
	if !to.After(from) {
		to = to.AddDate(0, 0, 1)
	}
	minutes := to.Sub(from).Minutes() - breakMinutes
	if minutes < 0 {
		minutes = 0
	}
	return minutes / 60
}

// TotalByWorkedHours is the amount billed for a work span at the given hourly rate
func TotalByWorkedHours(rate float64, start, end string, breakMinutes float64) float64 {
	return Round2(rate * WorkedHours(start, end, breakMinutes))
}

// Round2 rounds half up on the cents value
func Round2(amount float64) float64 {
	return math.Floor(amount*100+0.5) / 100
}
