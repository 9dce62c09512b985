package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymorita/questboard/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence_Daily(t *testing.T) {
	next, ok := NextOccurrence(domain.Recurrence{Type: domain.RecurDaily}, date(2024, 1, 10))
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 11), next)
}

func TestNextOccurrence_WeeklyWithWeekdays(t *testing.T) {
	rule := domain.Recurrence{Type: domain.RecurWeekly, Weekdays: []int{0, 2, 4}} // Mon/Wed/Fri

	// Thursday -> Friday next day.
	next, ok := NextOccurrence(rule, date(2024, 1, 11))
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 12), next)

	// Friday -> skips the weekend to Monday.
	next, ok = NextOccurrence(rule, date(2024, 1, 12))
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 15), next)
}

func TestNextOccurrence_WeeklySingleWeekday_FullWeek(t *testing.T) {
	// Base is itself a Wednesday; the next Wednesday is 7 days out.
	rule := domain.Recurrence{Type: domain.RecurWeekly, Weekdays: []int{2}}
	next, ok := NextOccurrence(rule, date(2024, 1, 10))
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 17), next)
}

func TestNextOccurrence_WeeklyWithoutWeekdays_LegacyFallback(t *testing.T) {
	next, ok := NextOccurrence(domain.Recurrence{Type: domain.RecurWeekly}, date(2024, 1, 10))
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 17), next)
}

func TestNextOccurrence_Monthly(t *testing.T) {
	next, ok := NextOccurrence(domain.Recurrence{Type: domain.RecurMonthly}, date(2024, 3, 15))
	require.True(t, ok)
	assert.Equal(t, date(2024, 4, 15), next)
}

func TestNextOccurrence_Monthly_ClampsTo28(t *testing.T) {
	next, ok := NextOccurrence(domain.Recurrence{Type: domain.RecurMonthly}, date(2024, 1, 31))
	require.True(t, ok)
	assert.Equal(t, date(2024, 2, 28), next)
}

func TestNextOccurrence_Monthly_DecemberRollsIntoNextYear(t *testing.T) {
	next, ok := NextOccurrence(domain.Recurrence{Type: domain.RecurMonthly}, date(2024, 12, 10))
	require.True(t, ok)
	assert.Equal(t, date(2025, 1, 10), next)
}

func TestNextOccurrence_EndDateCutoff(t *testing.T) {
	end := date(2024, 1, 10)
	rule := domain.Recurrence{Type: domain.RecurDaily, EndDate: &end}
	_, ok := NextOccurrence(rule, date(2024, 1, 11))
	assert.False(t, ok, "computed date past the end date yields no further occurrence")
}

func TestNextOccurrence_EndDateOnBoundary(t *testing.T) {
	end := date(2024, 1, 11)
	rule := domain.Recurrence{Type: domain.RecurDaily, EndDate: &end}
	next, ok := NextOccurrence(rule, date(2024, 1, 10))
	require.True(t, ok, "occurrence landing exactly on the end date is still valid")
	assert.Equal(t, date(2024, 1, 11), next)
}

func TestNextOccurrence_NoneType(t *testing.T) {
	_, ok := NextOccurrence(domain.Recurrence{Type: domain.RecurNone}, date(2024, 1, 10))
	assert.False(t, ok)
}

func TestNextOccurrence_IgnoresTimeComponent(t *testing.T) {
	base := time.Date(2024, 1, 10, 17, 45, 3, 0, time.UTC)
	next, ok := NextOccurrence(domain.Recurrence{Type: domain.RecurDaily}, base)
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 11), next)
}

func TestMondayIndex(t *testing.T) {
	assert.Equal(t, 0, MondayIndex(time.Monday))
	assert.Equal(t, 4, MondayIndex(time.Friday))
	assert.Equal(t, 6, MondayIndex(time.Sunday))
}

func TestParseWeekdays(t *testing.T) {
	assert.Equal(t, []int{0, 2, 4}, ParseWeekdays("0,2,4"))
	assert.Equal(t, []int{1, 3}, ParseWeekdays(" 3 , 1 "))
	assert.Nil(t, ParseWeekdays(""))
}

func TestParseWeekdays_FiltersMalformedTokens(t *testing.T) {
	// Rows created before validation existed may carry junk; it is dropped,
	// never propagated.
	assert.Equal(t, []int{2, 5}, ParseWeekdays("2,abc,5,9,-1,,5"))
}

func TestFormatWeekdays_RoundTrip(t *testing.T) {
	assert.Equal(t, "0,2,4", FormatWeekdays([]int{0, 2, 4}))
	assert.Equal(t, "", FormatWeekdays(nil))
	assert.Equal(t, []int{0, 2, 4}, ParseWeekdays(FormatWeekdays([]int{0, 2, 4})))
}
