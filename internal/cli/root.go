package cli

import (
	"github.com/spf13/cobra"
	"github.com/ymorita/questboard/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Quests    service.QuestService
	Comments  service.CommentService
	Templates service.TemplateService
	Resources service.ResourceService

	// IsInteractive reports whether stdout is a terminal; non-interactive
	// output skips decorative rendering.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "questboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "questboard",
		Short: "Shared quest board with recurring quests and EXP rewards",
	}

	root.AddCommand(
		newQuestCmd(app),
		newCommentCmd(app),
		newTemplateCmd(app),
		newResourceCmd(app),
		newBoardCmd(app),
		newProgressCmd(app),
	)

	return root
}
