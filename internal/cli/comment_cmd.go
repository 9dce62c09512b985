package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ymorita/questboard/internal/cli/formatter"
)

func newCommentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Quest log comments",
	}

	cmd.AddCommand(
		newCommentAddCmd(app),
		newCommentListCmd(app),
	)

	return cmd
}

func newCommentAddCmd(app *App) *cobra.Command {
	var actor, file string

	cmd := &cobra.Command{
		Use:   "add <quest-id> <content>",
		Short: "Add a comment to a quest",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveQuestID(ctx, app, args[0])
			if err != nil {
				return err
			}
			content := ""
			if len(args) == 2 {
				content = args[1]
			}
			if _, err := app.Comments.Add(ctx, id, actor, content, file); err != nil {
				return err
			}
			fmt.Println("Comment added")
			return nil
		},
	}

	addActorFlag(cmd.Flags(), &actor)
	cmd.Flags().StringVar(&file, "file", "", "Attachment path")
	_ = cmd.MarkFlagRequired("as")
	return cmd
}

func newCommentListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <quest-id>",
		Short: "Show a quest's log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveQuestID(ctx, app, args[0])
			if err != nil {
				return err
			}
			log, err := app.Comments.ListByQuest(ctx, id)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatLog(log))
			return nil
		},
	}
}
