package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ymorita/questboard/internal/domain"
)

func testQuest() *domain.Quest {
	due := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return &domain.Quest{
		ID:               "abcd1234-0000-0000-0000-000000000000",
		Title:            "Slay the dragon",
		Status:           domain.StatusInProgress,
		Priority:         4,
		EstimatedMinutes: 120,
		DueDate:          &due,
		Assignee:         "alice",
		Creator:          "guildmaster",
	}
}

func TestFormatQuestList(t *testing.T) {
	today := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	out := FormatQuestList([]*domain.Quest{testQuest()}, today)
	assert.Contains(t, out, "Slay the dragon")
	assert.Contains(t, out, "abcd1234")
	assert.Contains(t, out, "2024-03-15")
	assert.Contains(t, out, "alice")
}

func TestFormatQuestList_Empty(t *testing.T) {
	out := FormatQuestList(nil, time.Now())
	assert.Contains(t, out, "No quests found.")
}

func TestFormatQuestDetail(t *testing.T) {
	q := testQuest()
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	q.Recurrence = domain.Recurrence{
		Type:     domain.RecurWeekly,
		Weekdays: []int{0, 4},
		EndDate:  &end,
	}
	today := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	out := FormatQuestDetail(q, today)
	assert.Contains(t, out, "SLAY THE DRAGON")
	assert.Contains(t, out, "92 EXP") // 4*20 + 120/10
	assert.Contains(t, out, "weekly")
	assert.Contains(t, out, "Mon, Fri")
	assert.Contains(t, out, "2024-12-31")
}

func TestFormatQuestList_OverdueMarker(t *testing.T) {
	q := testQuest()
	today := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC) // past the due date
	out := FormatQuestList([]*domain.Quest{q}, today)
	assert.Contains(t, out, "2024-03-15 !")
}

func TestFormatLog(t *testing.T) {
	comments := []*domain.Comment{
		{
			Author:    "alice",
			Content:   "halfway there",
			LogType:   domain.LogUser,
			CreatedAt: time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC),
			FilePath:  "map.png",
		},
	}
	out := FormatLog(comments)
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "halfway there")
	assert.Contains(t, out, "map.png")
	assert.Contains(t, out, "2024-03-10 14:30")
}
