package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFormTimestamp(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"latin am", "9/1/2025 8:03:15 AM", time.Date(2025, 9, 1, 8, 3, 15, 0, time.UTC)},
		{"latin pm", "9/1/2025 8:03:15 PM", time.Date(2025, 9, 1, 20, 3, 15, 0, time.UTC)},
		{"latin noon", "9/1/2025 12:00:00 PM", time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)},
		{"latin midnight", "9/1/2025 12:00:00 AM", time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)},
		{"localized morning", "2025/9/1 上午8:03:15", time.Date(2025, 9, 1, 8, 3, 15, 0, time.UTC)},
		{"localized afternoon", "2025/9/1 下午8:03:15", time.Date(2025, 9, 1, 20, 3, 15, 0, time.UTC)},
		{"no marker 24h", "2025/9/1 20:03:15", time.Date(2025, 9, 1, 20, 3, 15, 0, time.UTC)},
		{"iso style", "2025-09-01 08:03:15", time.Date(2025, 9, 1, 8, 3, 15, 0, time.UTC)},
		{"garbage", "not a timestamp", time.Time{}},
		{"empty", "", time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, ParseFormTimestamp(tt.raw).Equal(tt.want), "raw=%q", tt.raw)
		})
	}
}
