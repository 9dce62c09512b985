// Package recurrence computes the next occurrence date for recurring
// quests. It is pure date arithmetic: persistence and orchestration live in
// the service layer.
package recurrence

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ymorita/questboard/internal/domain"
)

// NextOccurrence computes the date the next quest instance is due, given a
// recurrence rule and a base date. The second return value is false when the
// rule yields no further occurrence (unknown type, or the computed date
// falls past the rule's end date).
//
// Rules:
//   - daily: base + 1 day.
//   - weekly with a weekday set: the first date within 7 days after base
//     whose weekday (Monday = 0) is in the set; base + 7 days as a fallback.
//   - weekly without a weekday set: base + 7 days. Legacy behavior for rows
//     created before weekday selection existed.
//   - monthly: same day one month later, day clamped to 28. The clamp is a
//     deliberate simplification over calendar-exact month arithmetic; tests
//     assert it.
func NextOccurrence(rule domain.Recurrence, base time.Time) (time.Time, bool) {
	base = DateOnly(base)

	var next time.Time
	switch rule.Type {
	case domain.RecurDaily:
		next = base.AddDate(0, 0, 1)
	case domain.RecurWeekly:
		next = nextWeekly(base, rule.Weekdays)
	case domain.RecurMonthly:
		y, m, d := base.Date()
		if d > 28 {
			d = 28
		}
		next = time.Date(y, m+1, d, 0, 0, 0, 0, base.Location())
	default:
		return time.Time{}, false
	}

	if rule.EndDate != nil && next.After(DateOnly(*rule.EndDate)) {
		return time.Time{}, false
	}
	return next, true
}

func nextWeekly(base time.Time, weekdays []int) time.Time {
	if len(weekdays) == 0 {
		return base.AddDate(0, 0, 7)
	}
	set := make(map[int]bool, len(weekdays))
	for _, d := range weekdays {
		set[d] = true
	}
	for i := 1; i <= 7; i++ {
		candidate := base.AddDate(0, 0, i)
		if set[MondayIndex(candidate.Weekday())] {
			return candidate
		}
	}
	// Unreachable for a non-empty set of valid weekdays, but keep the
	// legacy fallback rather than failing.
	return base.AddDate(0, 0, 7)
}

// MondayIndex converts Go's Sunday-based weekday to the Monday = 0 indexing
// the weekday set is stored in.
func MondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// DateOnly truncates a timestamp to its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseWeekdays decodes the persisted comma-joined weekday list. Malformed
// or out-of-range tokens are dropped, not propagated: rows written before
// validation existed may carry them. The result is sorted and de-duplicated.
func ParseWeekdays(s string) []int {
	var days []int
	seen := make(map[int]bool)
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		d, err := strconv.Atoi(tok)
		if err != nil || d < 0 || d > 6 || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// FormatWeekdays encodes a weekday set into the comma-joined persisted form.
// An empty set encodes as the empty string ("no weekday restriction").
func FormatWeekdays(days []int) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}
