package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ymorita/questboard/internal/cli/formatter"
	"github.com/ymorita/questboard/internal/domain"
)

func newResourceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Shared bookmark collection",
	}

	cmd.AddCommand(
		newResourceAddCmd(app),
		newResourceListCmd(app),
		newResourceOpenCmd(app),
		newResourceFavCmd(app),
		newResourceRemoveCmd(app),
		newResourceCategoriesCmd(app),
		newResourceTagsCmd(app),
	)

	return cmd
}

func newResourceAddCmd(app *App) *cobra.Command {
	var category, tags, memo, creator string

	cmd := &cobra.Command{
		Use:   "add <title> <url>",
		Short: "Bookmark a resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &domain.Resource{
				Title:     args[0],
				URL:       args[1],
				Category:  category,
				Tags:      tags,
				Memo:      memo,
				CreatedBy: creator,
			}
			if err := app.Resources.Create(context.Background(), r); err != nil {
				return err
			}
			fmt.Printf("Bookmarked %s (%s)\n", r.Title, r.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Resource category")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&memo, "memo", "", "Free-form note")
	cmd.Flags().StringVar(&creator, "creator", "", "Who bookmarked it")
	return cmd
}

func newResourceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List resources, favorites first",
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := app.Resources.List(context.Background())
			if err != nil {
				return err
			}
			if len(resources) == 0 {
				fmt.Println(formatter.Dim("No resources."))
				return nil
			}
			headers := []string{"ID", "TITLE", "CATEGORY", "TAGS", "VIEWS"}
			var rows [][]string
			for _, r := range resources {
				title := r.Title
				if r.IsFavorite {
					title = formatter.StyleYellow.Render("★ ") + title
				}
				rows = append(rows, []string{
					formatter.Dim(r.ID[:8]),
					title,
					r.Category,
					strings.Join(r.TagList(), ", "),
					fmt.Sprintf("%d", r.ViewCount),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newResourceOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <resource-id>",
		Short: "Show a resource's URL and count the view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Resources.View(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(r.URL)
			if r.Memo != "" {
				fmt.Println(formatter.Dim(r.Memo))
			}
			return nil
		},
	}
}

func newResourceFavCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "fav <resource-id>",
		Short: "Toggle a resource's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Resources.ToggleFavorite(context.Background(), args[0])
			if err != nil {
				return err
			}
			if r.IsFavorite {
				fmt.Printf("Starred %s\n", r.Title)
			} else {
				fmt.Printf("Unstarred %s\n", r.Title)
			}
			return nil
		},
	}
}

func newResourceRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <resource-id>",
		Short: "Delete a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Resources.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Resource removed")
			return nil
		},
	}
}

func newResourceTagsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List resource tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := app.Resources.Tags(context.Background())
			if err != nil {
				return err
			}
			for _, t := range tags {
				fmt.Println(t)
			}
			return nil
		},
	}
}

func newResourceCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List resource categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := app.Resources.Categories(context.Background())
			if err != nil {
				return err
			}
			for _, c := range cats {
				fmt.Println(c)
			}
			return nil
		},
	}
}
