package businessflow

import (
	"time"

	"github.com/amirphl/marketing-manager/app/dto"
	"github.com/amirphl/marketing-manager/models"
)

// Analytics window selectors
const (
	TimeRangeToday      = "today"
	TimeRangeYesterday  = "yesterday"
	TimeRangeLast7Days  = "last7days"
	TimeRangeLast30Days = "last30days"
	TimeRangeThisMonth  = "thisMonth"
	TimeRangeLastMonth  = "lastMonth"

	DefaultTimeRange = TimeRangeLast30Days
)

// TimeWindow is an inclusive [Start, End] interval
type TimeWindow struct {
	Range string
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, bounds included
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ResolveTimeRange maps a selector to a window ending at now. Unknown or empty
// selectors resolve to the last 30 days. All calendar arithmetic happens in
// now's location.
func ResolveTimeRange(r string, now time.Time) TimeWindow {
	loc := now.Location()
	y, m, _ := now.Date()
	midnight := func(t time.Time) time.Time {
		ty, tm, td := t.Date()
		return time.Date(ty, tm, td, 0, 0, 0, 0, loc)
	}

	switch r {
	case TimeRangeToday:
		return TimeWindow{Range: r, Start: midnight(now), End: now}
	case TimeRangeYesterday:
		return TimeWindow{Range: r, Start: midnight(now.AddDate(0, 0, -1)), End: now}
	case TimeRangeLast7Days:
		return TimeWindow{Range: r, Start: now.AddDate(0, 0, -7), End: now}
	case TimeRangeThisMonth:
		return TimeWindow{Range: r, Start: time.Date(y, m, 1, 0, 0, 0, 0, loc), End: now}
	case TimeRangeLastMonth:
		// day 0 of this month is the last day of the previous one
		return TimeWindow{
			Range: r,
			Start: time.Date(y, m-1, 1, 0, 0, 0, 0, loc),
			End:   time.Date(y, m, 0, 23, 59, 59, int(999*time.Millisecond), loc),
		}
	case TimeRangeLast30Days:
		return TimeWindow{Range: r, Start: now.AddDate(0, 0, -30), End: now}
	}
	return TimeWindow{Range: DefaultTimeRange, Start: now.AddDate(0, 0, -30), End: now}
}

// ReduceTotals sums every row's metrics starting from zero
func ReduceTotals(records []*models.AnalyticsRecord) dto.AnalyticsTotals {
	var totals dto.AnalyticsTotals
	for _, record := range records {
		if record == nil {
			continue
		}
		totals = totals.Add(record.Metrics)
	}
	return totals
}
