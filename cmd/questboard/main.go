package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/ymorita/questboard/internal/cli"
	"github.com/ymorita/questboard/internal/config"
	"github.com/ymorita/questboard/internal/db"
	"github.com/ymorita/questboard/internal/repository"
	"github.com/ymorita/questboard/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := os.Getenv("QUESTBOARD_CONFIG")
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	var (
		questRepo    repository.QuestRepo
		commentRepo  repository.CommentRepo
		templateRepo repository.TemplateRepo
		resourceRepo repository.ResourceRepo
	)

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		questRepo = repository.NewMemoryQuestRepo()
		commentRepo = repository.NewMemoryCommentRepo()
		templateRepo = repository.NewMemoryTemplateRepo()
		resourceRepo = repository.NewMemoryResourceRepo()
	default:
		database, err := db.OpenDB(cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		questRepo = repository.NewSQLiteQuestRepo(database)
		commentRepo = repository.NewSQLiteCommentRepo(database)
		templateRepo = repository.NewSQLiteTemplateRepo(database)
		resourceRepo = repository.NewSQLiteResourceRepo(database)
	}

	var questOpts []service.QuestServiceOption
	if cfg.Logging.UseCases {
		questOpts = append(questOpts, service.WithObserver(service.NewLogUseCaseObserver(os.Stderr)))
	}

	questSvc := service.NewQuestService(questRepo, commentRepo, questOpts...)

	app := &cli.App{
		Quests:    questSvc,
		Comments:  service.NewCommentService(questRepo, commentRepo),
		Templates: service.NewTemplateService(templateRepo, questSvc),
		Resources: service.NewResourceService(resourceRepo),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
