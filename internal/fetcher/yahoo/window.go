package yahoo

import (
	"fmt"
	"time"

	"github.com/piquette/finance-go/datetime"
)

// resolveWindow turns a HistoryQuery into an absolute start/end pair plus bar
// interval. An explicit date pair wins over the relative period; a lone start
// or end date is not enough and falls back to the period.
func resolveWindow(q HistoryQuery, now time.Time) (start, end time.Time, interval datetime.Interval, err error) {
	interval = datetime.OneDay
	if q.Interval != "" {
		interval = datetime.Interval(q.Interval)
	}

	if !q.Start.IsZero() && !q.End.IsZero() {
		return q.Start, q.End, interval, nil
	}

	period := q.Period
	if period == "" {
		period = "1mo"
	}
	start, err = periodStart(period, now)
	if err != nil {
		return time.Time{}, time.Time{}, "", err
	}
	return start, now, interval, nil
}

// periodStart maps a relative period tag to its absolute start, measured back
// from now.
func periodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case "1d":
		return now.AddDate(0, 0, -1), nil
	case "5d":
		return now.AddDate(0, 0, -5), nil
	case "1mo":
		return now.AddDate(0, -1, 0), nil
	case "3mo":
		return now.AddDate(0, -3, 0), nil
	case "6mo":
		return now.AddDate(0, -6, 0), nil
	case "1y":
		return now.AddDate(-1, 0, 0), nil
	case "2y":
		return now.AddDate(-2, 0, 0), nil
	case "5y":
		return now.AddDate(-5, 0, 0), nil
	case "10y":
		return now.AddDate(-10, 0, 0), nil
	case "ytd":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), nil
	case "max":
		return time.Unix(0, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unknown period %q", period)
}
