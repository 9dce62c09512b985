package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/ymorita/questboard/internal/domain"
	"github.com/ymorita/questboard/internal/reward"
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func dueLabel(q *domain.Quest, today time.Time) string {
	if q.DueDate == nil {
		return Dim("-")
	}
	s := q.DueDate.Format("2006-01-02")
	if q.Status != domain.StatusDone && q.DueDate.Before(today) {
		return StyleRed.Render(s + " !")
	}
	return s
}

// FormatQuestRow builds the table cells for one quest.
func FormatQuestRow(q *domain.Quest, today time.Time) []string {
	assignee := q.Assignee
	if assignee == "" {
		assignee = Dim("unassigned")
	}
	recur := ""
	if q.Recurrence.IsRecurring() {
		recur = StylePurple.Render("↻")
	}
	return []string{
		Dim(shortID(q.ID)),
		q.Title + " " + recur,
		StatusBadge(q.Status),
		PriorityStars(q.Priority),
		dueLabel(q, today),
		assignee,
	}
}

// FormatQuestList renders quests as a table.
func FormatQuestList(quests []*domain.Quest, today time.Time) string {
	if len(quests) == 0 {
		return Dim("No quests found.") + "\n"
	}
	headers := []string{"ID", "TITLE", "STATUS", "PRIORITY", "DUE", "ASSIGNEE"}
	rows := make([][]string, 0, len(quests))
	for _, q := range quests {
		rows = append(rows, FormatQuestRow(q, today))
	}
	return RenderTable(headers, rows)
}

// FormatQuestDetail renders the full view of a single quest.
func FormatQuestDetail(q *domain.Quest, today time.Time) string {
	var b strings.Builder
	b.WriteString(Header(q.Title))
	b.WriteString("\n")

	write := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(label+":"), value))
	}
	write("ID", q.ID)
	write("Status", StatusBadge(q.Status))
	write("Priority", PriorityStars(q.Priority))
	write("Estimate", fmt.Sprintf("%d min", q.EstimatedMinutes))
	write("Reward", fmt.Sprintf("%d EXP", reward.Score(q.Priority, q.EstimatedMinutes)))
	write("Due", dueLabel(q, today))
	if q.Assignee != "" {
		write("Assignee", q.Assignee)
	}
	write("Creator", q.Creator)

	if q.Recurrence.IsRecurring() {
		b.WriteString("\n")
		b.WriteString(Bold("Recurrence") + "\n")
		write("Type", string(q.Recurrence.Type))
		if len(q.Recurrence.Weekdays) > 0 {
			write("Weekdays", weekdayNames(q.Recurrence.Weekdays))
		}
		if q.Recurrence.EndDate != nil {
			write("Until", q.Recurrence.EndDate.Format("2006-01-02"))
		}
	}

	if q.Description != "" {
		b.WriteString("\n" + q.Description + "\n")
	}
	return b.String()
}

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func weekdayNames(days []int) string {
	var names []string
	for _, d := range days {
		if d >= 0 && d < len(weekdayLabels) {
			names = append(names, weekdayLabels[d])
		}
	}
	return strings.Join(names, ", ")
}

// FormatLog renders a quest's log entries oldest first.
func FormatLog(comments []*domain.Comment) string {
	if len(comments) == 0 {
		return Dim("No log entries.") + "\n"
	}
	var b strings.Builder
	for _, c := range comments {
		ts := Dim(c.CreatedAt.Format("2006-01-02 15:04"))
		author := StyleBlue.Render(c.Author)
		if c.LogType == domain.LogSystem {
			author = StylePurple.Render(c.Author)
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", ts, author, c.Content))
		if c.FilePath != "" {
			b.WriteString(fmt.Sprintf("  %s %s\n", Dim("attachment:"), c.FilePath))
		}
	}
	return b.String()
}
