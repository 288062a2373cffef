package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"go-reporting/internal/config"
	"go-reporting/internal/database"
	"go-reporting/internal/features/index"
	"go-reporting/internal/features/view"
	"go-reporting/internal/logger"
	"go-reporting/internal/search"

	"go.uber.org/zap"
)

const usage = `usage: views <command> [args]

commands:
  list [path]         list folders and views under path
  read <view>         print the filters of folder/name
  delete <path>       delete a view or a folder tree
  move <src> <dest>   move a view or folder into an existing folder
  bootstrap           register the index template and create the index`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	zapLogger, err := logger.NewLogger(cfg, &database.MongodbDB{})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if os.Args[1] == "bootstrap" {
		bootstrap(ctx, cfg, zapLogger)
		return
	}

	repo, err := view.NewViewRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to open views root %s: %v", cfg.ViewsRoot, err)
	}
	views := view.NewViewService(repo, nil, zapLogger)

	args := os.Args[2:]
	switch os.Args[1] {
	case "list":
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		listing, err := views.ListViews(ctx, path)
		if err != nil {
			log.Fatalf("Failed to list %q: %v", path, err)
		}
		for _, f := range listing.Folders {
			fmt.Printf("%s/\n", f)
		}
		for _, v := range listing.Views {
			fmt.Println(v)
		}

	case "read":
		requireArgs(args, 1)
		filters, err := views.ReadView(ctx, args[0], true)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", args[0], err)
		}
		out, _ := json.MarshalIndent(filters, "", "    ")
		fmt.Println(string(out))

	case "delete":
		requireArgs(args, 1)
		if err := views.DeleteView(ctx, args[0]); err != nil {
			log.Fatalf("Failed to delete %s: %v", args[0], err)
		}
		fmt.Printf("Deleted %s\n", args[0])

	case "move":
		requireArgs(args, 2)
		if err := views.MoveView(ctx, args[0], args[1]); err != nil {
			log.Fatalf("Failed to move %s to %s: %v", args[0], args[1], err)
		}
		fmt.Printf("Moved %s into %s\n", args[0], args[1])

	default:
		fmt.Println(usage)
		os.Exit(2)
	}
}

func bootstrap(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) {
	client, err := search.NewElasticClient(cfg, zapLogger)
	if err != nil {
		log.Fatalf("Failed to create search client: %v", err)
	}
	result := index.NewIndexService(cfg, client, nil, zapLogger).EnsureReady(ctx)
	for _, step := range []index.StepResult{result.Template, result.Index} {
		if step.Ignored() {
			fmt.Printf("%s: ignored (%s)\n", step.Step, step.Reason())
			continue
		}
		fmt.Printf("%s: done\n", step.Step)
	}
}

func requireArgs(args []string, n int) {
	if len(args) < n {
		fmt.Println(usage)
		os.Exit(2)
	}
}
