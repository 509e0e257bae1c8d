package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/beelight/beelight/pkg/brightness"
	"github.com/beelight/beelight/pkg/config"
	"github.com/beelight/beelight/pkg/queue/nats"
	"github.com/beelight/beelight/pkg/store/duckdb"
)

func main() {
	cfg := config.Load()

	log.Println("Starting brightness agent...")
	log.Printf("NATS: %s, DuckDB: %s", cfg.NATSUrl, cfg.DuckDBPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// History store
	log.Println("Connecting to DuckDB...")
	duckClient, err := duckdb.NewClient(cfg.DuckDBPath)
	if err != nil {
		log.Fatalf("Failed to connect to DuckDB: %v", err)
	}
	defer duckClient.Close()

	if err := duckdb.InitializeSchema(ctx, duckClient); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	log.Println("DuckDB schema initialized")

	repo := duckdb.NewObservationRepo(duckClient)

	// Model. All access is serialized behind one mutex: Predict mutates the
	// smoothing window, so the model must have a single logical owner.
	model, err := brightness.NewModel(brightness.Config{
		MinAmbient:     cfg.MinAmbient,
		MaxAmbient:     cfg.MaxAmbient,
		BinCount:       cfg.BinCount,
		TimeWeight:     cfg.TimeWeight,
		RecencyWeight:  cfg.RecencyWeight,
		ActivityWeight: cfg.ActivityWeight,
	})
	if err != nil {
		log.Fatalf("Failed to build model: %v", err)
	}
	var mu sync.Mutex

	// Warm start from the history store.
	history, err := repo.ReadAll(ctx)
	if err != nil {
		log.Fatalf("Failed to read history: %v", err)
	}
	if len(history) > 0 {
		log.Printf("Warm-starting model from %d historical observations...", len(history))
		mu.Lock()
		model.LoadHistorical(history, time.Now().Unix(), true)
		mu.Unlock()
	} else {
		log.Println("No history available, starting cold")
	}

	// NATS
	log.Println("Connecting to NATS...")
	natsClient, err := nats.NewClient(nats.Config{
		URL:        cfg.NATSUrl,
		StreamName: cfg.NATSStream,
	})
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer natsClient.Close()

	if err := natsClient.CreateStream(ctx, []string{nats.SubjectObservationWrite}); err != nil {
		log.Fatalf("Failed to create stream: %v", err)
	}
	log.Println("NATS stream ready")

	// Observation writes: append to the log, then train.
	obsConsumer, err := natsClient.Subscribe(ctx, nats.SubjectObservationWrite, "observation-writer", func(msg jetstream.Msg) error {
		m, err := nats.DecodeObservation(msg.Data())
		if err != nil {
			log.Printf("Failed to decode observation: %v", err)
			return err
		}
		if m.Observation == nil {
			return nil
		}

		if err := repo.Append(ctx, *m.Observation); err != nil {
			log.Printf("Failed to append observation: %v", err)
			return err
		}

		mu.Lock()
		model.Train(*m.Observation, time.Now().Unix(), m.IsActive)
		mu.Unlock()
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe to observation writes: %v", err)
	}
	defer obsConsumer.Stop()

	// Prediction request/reply.
	predictSub, err := natsClient.SubscribeReply(nats.SubjectPredictRequest, func(data []byte) ([]byte, error) {
		req, err := nats.DecodePredictRequest(data)
		if err != nil {
			log.Printf("Failed to decode predict request: %v", err)
			return nil, err
		}

		ts := req.Timestamp
		if ts == 0 {
			ts = time.Now().Unix()
		}

		mu.Lock()
		value, ok := model.Predict(req.AmbientLight, ts, req.IsActive)
		mu.Unlock()

		return nats.Encode(&nats.PredictResponseMsg{Brightness: value, OK: ok})
	})
	if err != nil {
		log.Fatalf("Failed to subscribe to predict requests: %v", err)
	}
	defer predictSub.Unsubscribe()

	// Periodic sample expiry.
	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				mu.Lock()
				model.Cleanup(time.Now().Unix())
				mu.Unlock()
				log.Println("Expired stale samples")
			}
		}
	}()

	log.Println("Brightness agent started, waiting for messages...")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down brightness agent...")
}
