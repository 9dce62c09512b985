package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ymorita/questboard/internal/repository"
)

// resolveQuestID accepts a full quest ID or a unique prefix.
func resolveQuestID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("quest ID is required")
	}

	quests, err := app.Quests.List(ctx, repository.QuestFilter{})
	if err != nil {
		return "", err
	}

	for _, q := range quests {
		if q.ID == input {
			return q.ID, nil
		}
	}

	var matches []string
	for _, q := range quests {
		if strings.HasPrefix(q.ID, input) {
			matches = append(matches, q.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("quest not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("quest ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
