package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ymorita/questboard/internal/cli/formatter"
	"github.com/ymorita/questboard/internal/domain"
	"github.com/ymorita/questboard/internal/repository"
)

func newQuestCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Manage quests",
	}

	cmd.AddCommand(
		newQuestAddCmd(app),
		newQuestListCmd(app),
		newQuestShowCmd(app),
		newQuestAcceptCmd(app),
		newQuestStatusCmd(app),
		newQuestDoneCmd(app),
		newQuestUpdateCmd(app),
		newQuestAssignCmd(app),
		newQuestRemoveCmd(app),
		newQuestOverdueCmd(app),
	)

	return cmd
}

// addActorFlag registers the --as flag shared by every mutating command.
func addActorFlag(fs *pflag.FlagSet, actor *string) {
	fs.StringVar(actor, "as", "", "Acting user name")
}

func parseDateFlag(value, flagName string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q (want YYYY-MM-DD)", flagName, value)
	}
	return &d, nil
}

var weekdayAliases = map[string]int{
	"mon": 0, "tue": 1, "wed": 2, "thu": 3, "fri": 4, "sat": 5, "sun": 6,
}

// parseWeekdayFlag accepts weekday names ("mon,wed,fri") or Monday-based
// indexes ("0,2,4").
func parseWeekdayFlag(value string) ([]int, error) {
	if value == "" {
		return nil, nil
	}
	var days []int
	for _, tok := range strings.Split(value, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		if d, ok := weekdayAliases[tok]; ok {
			days = append(days, d)
			continue
		}
		d, err := strconv.Atoi(tok)
		if err != nil || d < 0 || d > 6 {
			return nil, fmt.Errorf("invalid weekday %q (want mon..sun or 0..6)", tok)
		}
		days = append(days, d)
	}
	return days, nil
}

func newQuestAddCmd(app *App) *cobra.Command {
	var description, due, assignee, creator, recur, weekdays, until string
	var priority, estimate int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Post a new quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dueDate, err := parseDateFlag(due, "due date")
			if err != nil {
				return err
			}
			endDate, err := parseDateFlag(until, "end date")
			if err != nil {
				return err
			}
			days, err := parseWeekdayFlag(weekdays)
			if err != nil {
				return err
			}

			q := &domain.Quest{
				Title:            args[0],
				Description:      description,
				Priority:         priority,
				EstimatedMinutes: estimate,
				DueDate:          dueDate,
				Assignee:         assignee,
				Creator:          creator,
			}
			if recur != "" {
				q.Recurrence = domain.Recurrence{
					Type:     domain.RecurrenceType(recur),
					EndDate:  endDate,
					Weekdays: days,
				}
			}

			if err := app.Quests.Create(context.Background(), q); err != nil {
				return err
			}
			fmt.Printf("Posted quest %s (%s)\n", q.Title, q.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "Quest description")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority 1-5 (default 3)")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "Estimated minutes (default 30)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Initial assignee")
	cmd.Flags().StringVar(&creator, "creator", "", "Quest creator (required)")
	cmd.Flags().StringVar(&recur, "recur", "", "Recurrence: daily, weekly, or monthly")
	cmd.Flags().StringVar(&weekdays, "weekdays", "", "Weekly recurrence weekdays, e.g. mon,wed,fri")
	cmd.Flags().StringVar(&until, "until", "", "Recurrence end date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("creator")

	return cmd
}

func newQuestListCmd(app *App) *cobra.Command {
	var statuses, priorities []string
	var assignee string
	var unassigned bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := repository.QuestFilter{
				Assignee:   assignee,
				Unassigned: unassigned,
			}
			for _, s := range statuses {
				status, err := parseStatusArg(s)
				if err != nil {
					return err
				}
				filter.Statuses = append(filter.Statuses, status)
			}
			for _, p := range priorities {
				n, err := strconv.Atoi(p)
				if err != nil {
					return fmt.Errorf("invalid priority %q", p)
				}
				filter.Priorities = append(filter.Priorities, n)
			}

			quests, err := app.Quests.List(context.Background(), filter)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatQuestList(quests, time.Now().UTC()))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Filter by status (repeatable)")
	cmd.Flags().StringSliceVar(&priorities, "priority", nil, "Filter by priority (repeatable)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Filter by assignee substring")
	cmd.Flags().BoolVar(&unassigned, "unassigned", false, "Only unassigned quests")

	return cmd
}

func newQuestShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a quest with its log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveQuestID(ctx, app, args[0])
			if err != nil {
				return err
			}
			q, err := app.Quests.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatQuestDetail(q, time.Now().UTC()))

			log, err := app.Comments.ListByQuest(ctx, id)
			if err != nil {
				return err
			}
			if len(log) > 0 {
				fmt.Println()
				fmt.Println(formatter.Bold("Log"))
				fmt.Print(formatter.FormatLog(log))
			}
			return nil
		},
	}
}

func newQuestAcceptCmd(app *App) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "accept <id>",
		Short: "Accept a quest from the backlog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveQuestID(ctx, app, args[0])
			if err != nil {
				return err
			}
			q, err := app.Quests.Accept(ctx, id, actor)
			if err != nil {
				return err
			}
			fmt.Printf("%s accepted %q\n", q.Assignee, q.Title)
			return nil
		},
	}

	addActorFlag(cmd.Flags(), &actor)
	_ = cmd.MarkFlagRequired("as")
	return cmd
}

func newQuestStatusCmd(app *App) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a quest to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := parseStatusArg(args[1])
			if err != nil {
				return err
			}
			return setQuestStatus(app, args[0], status, actor)
		},
	}

	addActorFlag(cmd.Flags(), &actor)
	return cmd
}

// parseStatusArg accepts the canonical literals plus shell-friendly
// lowercase aliases like "in-progress".
func parseStatusArg(s string) (domain.QuestStatus, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", " ")) {
	case "backlog":
		return domain.StatusBacklog, nil
	case "in progress":
		return domain.StatusInProgress, nil
	case "review":
		return domain.StatusReview, nil
	case "done":
		return domain.StatusDone, nil
	}
	return domain.ParseQuestStatus(s)
}

func newQuestDoneCmd(app *App) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a quest and collect the reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setQuestStatus(app, args[0], domain.StatusDone, actor)
		},
	}

	addActorFlag(cmd.Flags(), &actor)
	return cmd
}

func setQuestStatus(app *App, input string, status domain.QuestStatus, actor string) error {
	ctx := context.Background()
	id, err := resolveQuestID(ctx, app, input)
	if err != nil {
		return err
	}
	change, err := app.Quests.SetStatus(ctx, id, status, actor)
	if err != nil {
		return err
	}
	fmt.Printf("%q: %s → %s\n", change.Quest.Title, change.OldStatus, change.NewStatus)
	if change.EarnedEXP > 0 {
		fmt.Printf("Earned %d EXP\n", change.EarnedEXP)
	}
	if change.Spawned != nil {
		fmt.Printf("Next occurrence due %s (%s)\n",
			change.Spawned.DueDate.Format("2006-01-02"), change.Spawned.ID[:8])
	}
	return nil
}

func newQuestUpdateCmd(app *App) *cobra.Command {
	var actor, title, description, due, assignee string
	var priority, estimate int
	var clearDue bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit quest fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveQuestID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var u domain.QuestUpdate
			if cmd.Flags().Changed("title") {
				u.Title = &title
			}
			if cmd.Flags().Changed("desc") {
				u.Description = &description
			}
			if cmd.Flags().Changed("priority") {
				u.Priority = &priority
			}
			if cmd.Flags().Changed("estimate") {
				u.EstimatedMinutes = &estimate
			}
			if clearDue {
				u.ClearDueDate = true
			} else if cmd.Flags().Changed("due") {
				dueDate, err := parseDateFlag(due, "due date")
				if err != nil {
					return err
				}
				u.DueDate = dueDate
			}
			if cmd.Flags().Changed("assignee") {
				u.Assignee = &assignee
			}
			if u.Empty() {
				return fmt.Errorf("nothing to update")
			}

			q, err := app.Quests.Update(ctx, id, u, actor)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %q\n", q.Title)
			return nil
		},
	}

	addActorFlag(cmd.Flags(), &actor)
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "desc", "", "New description")
	cmd.Flags().IntVar(&priority, "priority", 0, "New priority 1-5")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "New estimate in minutes")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date")
	cmd.Flags().StringVar(&assignee, "assignee", "", "New assignee (empty unassigns)")

	return cmd
}

func newQuestAssignCmd(app *App) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "assign <id> [assignee]",
		Short: "Reassign a quest; omit the assignee to unassign",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveQuestID(ctx, app, args[0])
			if err != nil {
				return err
			}
			assignee := ""
			if len(args) == 2 {
				assignee = args[1]
			}
			q, err := app.Quests.Reassign(ctx, id, assignee, actor)
			if err != nil {
				return err
			}
			if q.Assignee == "" {
				fmt.Printf("Unassigned %q\n", q.Title)
			} else {
				fmt.Printf("Assigned %q to %s\n", q.Title, q.Assignee)
			}
			return nil
		},
	}

	addActorFlag(cmd.Flags(), &actor)
	return cmd
}

func newQuestRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a quest and its log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveQuestID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Quests.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Removed quest %s\n", id[:8])
			return nil
		},
	}
}

func newQuestOverdueCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List overdue quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			today := time.Now().UTC()
			quests, err := app.Quests.Overdue(context.Background(), today)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatQuestList(quests, today))
			return nil
		},
	}
}
