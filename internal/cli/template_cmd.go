package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ymorita/questboard/internal/cli/formatter"
	"github.com/ymorita/questboard/internal/domain"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage quest templates",
	}

	cmd.AddCommand(
		newTemplateAddCmd(app),
		newTemplateListCmd(app),
		newTemplateUseCmd(app),
		newTemplateRemoveCmd(app),
	)

	return cmd
}

func newTemplateAddCmd(app *App) *cobra.Command {
	var description string
	var priority, estimate int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a quest template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.Template{
				Title:            args[0],
				Description:      description,
				Priority:         priority,
				EstimatedMinutes: estimate,
			}
			if err := app.Templates.Create(context.Background(), t); err != nil {
				return err
			}
			fmt.Printf("Created template %s (%s)\n", t.Title, t.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "Template description")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority 1-5 (default 3)")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "Estimated minutes (default 30)")
	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List quest templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(context.Background())
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				fmt.Println(formatter.Dim("No templates."))
				return nil
			}
			headers := []string{"ID", "TITLE", "PRIORITY", "ESTIMATE"}
			var rows [][]string
			for _, t := range templates {
				rows = append(rows, []string{
					formatter.Dim(t.ID[:8]),
					t.Title,
					formatter.PriorityStars(t.Priority),
					fmt.Sprintf("%d min", t.EstimatedMinutes),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newTemplateUseCmd(app *App) *cobra.Command {
	var creator, due string

	cmd := &cobra.Command{
		Use:   "use <template-id>",
		Short: "Post a quest from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dueDate, err := parseDateFlag(due, "due date")
			if err != nil {
				return err
			}
			q, err := app.Templates.Instantiate(context.Background(), args[0], creator, dueDate)
			if err != nil {
				return err
			}
			fmt.Printf("Posted quest %s (%s)\n", q.Title, q.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&creator, "creator", "", "Quest creator (required)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("creator")
	return cmd
}

func newTemplateRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <template-id>",
		Short: "Delete a quest template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Templates.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Template removed")
			return nil
		},
	}
}
