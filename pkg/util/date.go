package util

import (
    "strconv"
    "time"
)

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
        return t, true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0), true
    }
    return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
    if t, ok := ParseTime(s); ok {
        return t
    }
    return def
}

// DayFloor truncates t to 00:00:00 UTC of its calendar day.
func DayFloor(t time.Time) time.Time {
    u := t.UTC()
    return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// SessionDay buckets a timestamp into a trading day under a local cut-over
// hour: the day only rolls over at cutHour UTC, so an event at 07:59 with
// cutHour=8 still belongs to the previous day's session.
func SessionDay(t time.Time, cutHour int) time.Time {
    return DayFloor(t.UTC().Add(-time.Duration(cutHour) * time.Hour))
}

// LastCompleteDay returns the label of the most recent trading day whose
// bucket is closed under cutHour. If now has passed today's cut the label is
// yesterday; otherwise yesterday's bucket is still open and the label is the
// day before.
func LastCompleteDay(now time.Time, cutHour int) time.Time {
    u := now.UTC()
    cut := time.Date(u.Year(), u.Month(), u.Day(), cutHour, 0, 0, 0, time.UTC)
    if !u.Before(cut) {
        return DayFloor(u).AddDate(0, 0, -1)
    }
    return DayFloor(u).AddDate(0, 0, -2)
}

// MTDWindow returns [first day of now's calendar month, today] as UTC day floors.
func MTDWindow(now time.Time) (time.Time, time.Time) {
    u := now.UTC()
    start := time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
    return start, DayFloor(u)
}

// FormatDay renders a day label as YYYY-MM-DD.
func FormatDay(t time.Time) string {
    return t.UTC().Format("2006-01-02")
}

// FormatDayStamp renders a day label as the equity-series key convention
// YYYY-MM-DD 00:00:00.
func FormatDayStamp(t time.Time) string {
    return t.UTC().Format("2006-01-02 15:04:05")
}

// FormatISO renders an instant as an ISO timestamp with trailing Z.
func FormatISO(t time.Time) string {
    return t.UTC().Format("2006-01-02T15:04:05Z")
}
