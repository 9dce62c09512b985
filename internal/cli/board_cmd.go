package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/ymorita/questboard/internal/cli/formatter"
	"github.com/ymorita/questboard/internal/domain"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show the board dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			today := time.Now().UTC()
			summary, err := app.Quests.Summary(context.Background(), today)
			if err != nil {
				return err
			}
			if app.IsInteractive != nil && !app.IsInteractive() {
				// Plain output for pipes and scripts.
				for _, status := range domain.AllQuestStatuses() {
					fmt.Printf("%s\t%d\n", status, summary.StatusCounts[status])
				}
				fmt.Printf("overdue\t%d\n", len(summary.Overdue))
				return nil
			}
			fmt.Print(formatter.FormatSummary(summary, today))
			return nil
		},
	}
}

func newProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress <assignee>",
		Short: "Show an adventurer's EXP and level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Quests.Progress(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatProgress(p))
			return nil
		},
	}
	return cmd
}
