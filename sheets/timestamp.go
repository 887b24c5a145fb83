package sheets

import (
	"strings"
	"time"
)

// Form exports stamp rows with a locale date, a locale time, and a period
// marker that may be Latin (AM/PM) or a localized morning/afternoon marker.
// Both orders occur ("9/1/2025 8:03:15 PM" and "2025/9/1 下午8:03:15").

var morningMarkers = []string{"AM", "am", "上午"}
var afternoonMarkers = []string{"PM", "pm", "下午"}

var timestampLayouts = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseFormTimestamp parses a form timestamp. Values that cannot be parsed
// return the zero time, which sorts as earliest.
func ParseFormTimestamp(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}
	}

	afternoon := false
	marked := false
	for _, m := range afternoonMarkers {
		if strings.Contains(s, m) {
			afternoon = true
			marked = true
			s = strings.ReplaceAll(s, m, "")
			break
		}
	}
	if !marked {
		for _, m := range morningMarkers {
			if strings.Contains(s, m) {
				marked = true
				s = strings.ReplaceAll(s, m, "")
				break
			}
		}
	}
	s = strings.Join(strings.Fields(s), " ")

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if marked {
			hour := t.Hour()
			if afternoon && hour < 12 {
				t = t.Add(12 * time.Hour)
			} else if !afternoon && hour == 12 {
				t = t.Add(-12 * time.Hour)
			}
		}
		return t
	}
	return time.Time{}
}
