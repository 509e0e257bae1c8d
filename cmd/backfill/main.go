package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/beelight/beelight/pkg/brightness"
	"github.com/beelight/beelight/pkg/data"
	"github.com/beelight/beelight/pkg/report"
	"github.com/beelight/beelight/pkg/store/duckdb"
)

// Config holds backfill configuration
type Config struct {
	CSVPath    string
	DuckDBPath string

	MinAmbient int
	MaxAmbient int
	BinCount   int
}

func main() {
	cfg := parseFlags()

	log.Printf("Starting backfill from %s", cfg.CSVPath)

	ctx := context.Background()

	// Load the record log.
	provider := data.NewCSVProvider(cfg.CSVPath)
	history, err := provider.FetchObservations(ctx)
	if err != nil {
		log.Fatalf("Failed to load record log: %v", err)
	}
	log.Printf("Loaded %d observations", len(history))

	// Store in DuckDB.
	log.Println("Connecting to DuckDB...")
	duckClient, err := duckdb.NewClient(cfg.DuckDBPath)
	if err != nil {
		log.Fatalf("Failed to connect to DuckDB: %v", err)
	}
	defer duckClient.Close()

	if err := duckdb.InitializeSchema(ctx, duckClient); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	repo := duckdb.NewObservationRepo(duckClient)
	if err := repo.InsertBatch(ctx, history); err != nil {
		log.Fatalf("Failed to insert observations: %v", err)
	}
	log.Printf("Stored %d observations in DuckDB", len(history))

	// Dry-run a warm start so boundary and training problems surface here
	// rather than in the agent.
	model, err := brightness.NewModel(brightness.Config{
		MinAmbient:     cfg.MinAmbient,
		MaxAmbient:     cfg.MaxAmbient,
		BinCount:       cfg.BinCount,
		TimeWeight:     0.3,
		RecencyWeight:  0.4,
		ActivityWeight: 0.3,
	})
	if err != nil {
		log.Fatalf("Failed to build model: %v", err)
	}
	model.LoadHistorical(history, time.Now().Unix(), true)

	fmt.Println()
	fmt.Println(report.Summarize(history))
	fmt.Println()
	fmt.Println("Bin boundaries after warm start:")
	for i, b := range model.Bins() {
		fmt.Printf("  bin %2d: [%d, %d) samples=%d weight=%.2f\n", i, b.Min, b.Max, b.Size(), b.TotalWeight())
	}

	log.Println("Backfill complete")
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.CSVPath, "csv", "brightness_data.csv", "record log CSV path")
	flag.StringVar(&cfg.DuckDBPath, "duckdb", "beelight.db", "DuckDB file path")
	flag.IntVar(&cfg.MinAmbient, "min-ambient", 0, "ambient domain lower bound")
	flag.IntVar(&cfg.MaxAmbient, "max-ambient", 2000, "ambient domain upper bound")
	flag.IntVar(&cfg.BinCount, "bins", 10, "number of ambient bins")

	flag.Parse()

	if cfg.CSVPath == "" {
		fmt.Println("Usage: backfill [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	return cfg
}
