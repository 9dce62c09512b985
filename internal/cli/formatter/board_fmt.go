package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ymorita/questboard/internal/domain"
	"github.com/ymorita/questboard/internal/reward"
	"github.com/ymorita/questboard/internal/service"
)

// FormatSummary renders the dashboard view of the board.
func FormatSummary(s *service.BoardSummary, today time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Quest Board"))
	b.WriteString("\n")

	for _, status := range domain.AllQuestStatuses() {
		count := s.StatusCounts[status]
		b.WriteString(fmt.Sprintf("%s  %d\n", StatusBadge(status), count))
	}

	if len(s.AssigneeCounts) > 0 {
		b.WriteString("\n" + Bold("Active by assignee") + "\n")
		names := make([]string, 0, len(s.AssigneeCounts))
		for name := range s.AssigneeCounts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			label := name
			if label == "" {
				label = Dim("unassigned")
			}
			b.WriteString(fmt.Sprintf("  %s  %d\n", label, s.AssigneeCounts[name]))
		}
	}

	if len(s.Overdue) > 0 {
		b.WriteString("\n" + StyleRed.Render("Overdue") + "\n")
		b.WriteString(FormatQuestList(s.Overdue, today))
	}
	return b.String()
}

// FormatProgress renders an actor's accumulated EXP and level.
func FormatProgress(p *service.ActorProgress) string {
	var b strings.Builder
	name := p.Assignee
	if name == "" {
		name = "unassigned"
	}
	b.WriteString(Header("Progress: " + name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %d\n", Dim("Level:"), p.Level))
	b.WriteString(fmt.Sprintf("%s %d EXP\n", Dim("Total:"), p.TotalEXP))
	b.WriteString(fmt.Sprintf("%s %d\n", Dim("Quests done:"), p.DoneCount))

	earned, needed := reward.LevelProgress(p.TotalEXP)
	b.WriteString(fmt.Sprintf("%s %s %d/%d to next level\n",
		Dim("Next:"), progressBar(earned, needed, 20), earned, needed))
	return b.String()
}

func progressBar(current, total, width int) string {
	if total <= 0 {
		total = 1
	}
	filled := current * width / total
	if filled > width {
		filled = width
	}
	return StyleGreen.Render(strings.Repeat("█", filled)) +
		StyleDim.Render(strings.Repeat("░", width-filled))
}
