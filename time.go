package suuid

import (
	"math"
	"strconv"
	"time"
)

const (
	// Seconds between the gregorian UUID epoch (1582-10-15T00:00:00Z) and
	// the unix epoch.
	gregorianToUnixSec = 12219292800

	ticksPerSec = 10000000 // 100ns ticks

	// maxGregorianTicks is the largest value the 60-bit timestamp field of
	// v1/v2/v6 can hold (circa year 5236).
	maxGregorianTicks = 0x0FFFFFFFFFFFFFFF

	// maxUnixMilli is the largest value the 48-bit timestamp field of v7
	// can hold (circa year 10889).
	maxUnixMilli = 0xFFFFFFFFFFFF
)

// gregorianTicks adjusts t to the 60-bit timestamp of v1/v2/v6: 100ns
// ticks since 1582-10-15. Out-of-range instants yield
// ErrTimestampOutOfRange with a negative tick count (before the epoch) or
// one above maxGregorianTicks (overflow), letting the caller pick the nil
// or max fallback.
func gregorianTicks(t time.Time) (int64, error) {
	sec := t.Unix() + gregorianToUnixSec
	if sec < 0 {
		return -1, ErrTimestampOutOfRange
	}
	if sec > maxGregorianTicks/ticksPerSec {
		return maxGregorianTicks + 1, ErrTimestampOutOfRange
	}
	ticks := sec*ticksPerSec + int64(t.Nanosecond())/100
	if ticks > maxGregorianTicks {
		return maxGregorianTicks + 1, ErrTimestampOutOfRange
	}
	return ticks, nil
}

// unixMilliTicks adjusts t to the 48-bit millisecond timestamp of v7, with
// the same out-of-range convention as gregorianTicks.
func unixMilliTicks(t time.Time) (int64, error) {
	ms := t.UnixMilli()
	if ms < 0 {
		return -1, ErrTimestampOutOfRange
	}
	if ms > maxUnixMilli {
		return maxUnixMilli + 1, ErrTimestampOutOfRange
	}
	return ms, nil
}

// rangeFallback maps an out-of-range adjusted timestamp to the sentinel the
// effective version flips to: nil before the epoch, max past the end.
func rangeFallback(ticks int64) (UUID, error) {
	if ticks < 0 {
		return Nil, ErrTimestampOutOfRange
	}
	return Max, ErrTimestampOutOfRange
}

// dateLayouts are tried in order when resolving free-form date text.
// Resolution is best effort; anything unparseable falls back to "now".
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// resolveDateText resolves a date-like token to an instant: "now" or the
// empty string mean the current time, a numeric value is taken as epoch
// seconds (fractions kept), and otherwise the known layouts are tried.
// A token that resolves to nothing falls back to now rather than erroring.
func resolveDateText(s string, now func() time.Time) time.Time {
	if s == "" || s == "now" {
		return now()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		sec, frac := math.Modf(f)
		return time.Unix(int64(sec), int64(frac*1e9)).UTC()
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return now()
}
