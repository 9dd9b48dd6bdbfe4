package main

import (
	"CarmartScraper/internal/app"
	"CarmartScraper/pkg/config"
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	task := flag.String("task", "crawl", "Task to run: crawl or summary")
	configPath := flag.String("config", "config.yml", "Path to the YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Running task: %s", *task)

	switch *task {
	case "crawl":
		err = application.RunCrawl(ctx)
	case "summary":
		err = application.ShowLatest(ctx)
	default:
		log.Fatalf("Unknown task: %s.", *task)
	}
	if err != nil {
		application.Close()
		log.Fatalf("Task %s failed: %v", *task, err)
	}
}
