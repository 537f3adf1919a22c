package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkedHours(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		breakMin   float64
		want       float64
	}{
		{"regular day", "2024-01-01T08:00", "2024-01-01T16:30", 30, 8},
		{"no break", "2024-01-01T09:00", "2024-01-01T10:15", 0, 1.25},
		{"overnight on same date label", "2024-01-01T22:00", "2024-01-01T02:00", 0, 4},
		{"overnight with break", "2024-01-01T22:00", "2024-01-01T02:00", 60, 3},
		{"equal times span a full day", "2024-01-01T08:00", "2024-01-01T08:00", 0, 24},
		{"break longer than span", "2024-01-01T08:00", "2024-01-01T09:00", 90, 0},
		{"seconds layout", "2024-01-01T08:00:00", "2024-01-01T12:00:00", 0, 4},
		{"invalid start", "yesterday", "2024-01-01T12:00", 0, 0},
		{"invalid end", "2024-01-01T12:00", "", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WorkedHours(tt.start, tt.end, tt.breakMin), 1e-9)
		})
	}
}

func TestTotalByWorkedHours(t *testing.T) {
	assert.Equal(t, 160.00, TotalByWorkedHours(20, "2024-01-01T08:00", "2024-01-01T16:30", 30))
	// 1h20 at 10.01 = 13.3466..
	assert.Equal(t, 13.35, TotalByWorkedHours(10.01, "2024-01-01T08:00", "2024-01-01T09:20", 0))
	assert.Equal(t, 0.0, TotalByWorkedHours(50, "bad", "2024-01-01T09:20", 0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 2.5, Round2(2.499999999))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, 9.98, Round2(9.975))
	assert.Equal(t, 100.0, Round2(100))
}
