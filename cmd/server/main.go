package main

import (
	"CarmartScraper/internal/database"
	"CarmartScraper/internal/server"
	"CarmartScraper/pkg/config"
	"flag"
	"log"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "config.yml", "Path to the YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Output.Database == "" {
		log.Fatal("output.database is empty; nothing to serve")
	}

	repo, err := database.InitDB(cfg.Output.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer repo.Close()

	if err := server.Start(repo, cfg); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
