package praytimes

import (
	"fmt"
	"math"
	"strconv"

	"github.com/anis00/mawaquit/internal/solar"
)

// TimeFormat selects the external rendering of event times.
type TimeFormat string

const (
	Format24h   TimeFormat = "24h"
	Format12h   TimeFormat = "12h"
	FormatFloat TimeFormat = "Float" // decimal hours
)

// InvalidTime is the sentinel rendered for events with no solution.
const InvalidTime = "-----"

var timeSuffixes = [2]string{"am", "pm"}

// FormatTime renders a clock value in the requested format. Events with no
// solution render as InvalidTime. Half a minute is added before truncation
// so the printed minute is the nearest one, matching timetable convention.
func FormatTime(h solar.Hours, format TimeFormat) string {
	v, ok := h.Value()
	if !ok {
		return InvalidTime
	}

	if format == FormatFloat {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	t := solar.FixHour(v + 0.5/60)
	hours := int(math.Floor(t))
	minutes := int(math.Floor((t - float64(hours)) * 60))

	if format == Format12h {
		suffix := timeSuffixes[0]
		if hours >= 12 {
			suffix = timeSuffixes[1]
		}
		return fmt.Sprintf("%d:%02d%s", (hours+11)%12+1, minutes, suffix)
	}

	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// ClockLabel renders a minute-of-day as "HH:MM", wrapping past midnight in
// either direction. Curve and band annotations use it for isochrone labels.
func ClockLabel(minuteOfDay int) string {
	m := minuteOfDay % (24 * 60)
	if m < 0 {
		m += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
