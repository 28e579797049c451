package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/cognicore/topiq/internal/gemini"
	"github.com/cognicore/topiq/pkg/topiq"
	"github.com/cognicore/topiq/pkg/topiq/config"
	"github.com/cognicore/topiq/pkg/topiq/store"
	"github.com/cognicore/topiq/pkg/topiq/store/sqlite"
)

func main() {
	var (
		configPath   = flag.String("config", "", "Optional pipeline YAML config")
		input        = flag.String("input", "", "Directory of topic dump .txt files (overrides config)")
		categorized  = flag.String("categorized", "", "Categorized documents CSV path (overrides config)")
		distribution = flag.String("distribution", "", "Topic proportions CSV path (overrides config)")
		model        = flag.String("model", "", "Gemini model name (overrides config)")
		delayMS      = flag.Int("delay-ms", -1, "Delay between documents in ms (overrides config)")
		archiveDB    = flag.String("archive-db", "", "Optional SQLite run archive (overrides config)")
	)
	flag.Parse()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable required")
	}

	loader := config.Loader{PipelinePath: *configPath}
	components, err := loader.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg := components.Pipeline

	// Flags override the config file.
	if *input != "" {
		cfg.InputDir = *input
	}
	if *categorized != "" {
		cfg.CategorizedCSV = *categorized
	}
	if *distribution != "" {
		cfg.DistributionCSV = *distribution
	}
	if *model != "" {
		cfg.Model = *model
	}
	if *delayMS >= 0 {
		cfg.DelayMS = *delayMS
	}
	if *archiveDB != "" {
		cfg.ArchiveDB = *archiveDB
	}

	ctx := context.Background()

	var archive store.Store
	if cfg.ArchiveDB != "" {
		archive, err = sqlite.Open(ctx, cfg.ArchiveDB)
		if err != nil {
			log.Fatalf("open archive: %v", err)
		}
		defer archive.Close()
	}

	pipeline := topiq.New(topiq.Options{
		Classifier: &gemini.Client{APIKey: apiKey, Model: cfg.Model},
		Model:      cfg.Model,
		TopTopics:  cfg.TopTopics,
		TopTerms:   cfg.TopTerms,
		Delay:      time.Duration(cfg.DelayMS) * time.Millisecond,
		Store:      archive,
		Logf:       log.Printf,
	})

	result, err := pipeline.Run(ctx, cfg.InputDir)
	if err != nil {
		log.Fatalf("pipeline: %v", err)
	}

	if err := result.WriteCSV(cfg.CategorizedCSV, cfg.DistributionCSV); err != nil {
		log.Fatalf("write CSV: %v", err)
	}

	log.Printf("✓ Processed %d documents (run %s)", len(result.Docs), result.RunID)
	log.Printf("✓ Wrote %s and %s", cfg.CategorizedCSV, cfg.DistributionCSV)
}
