package main

import (
	"context"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_map/internal/adapters/observability"
	"hotel_map/internal/dataset"
	"hotel_map/internal/shared"
	mysqlrepo "hotel_map/internal/storage/mysql"
)

// loader publishes the validated hotels CSV into the MySQL hotels table.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("csv", cfg.HotelsCSV).
		Int("workers", cfg.LoadWorkers).
		Int("batch", cfg.LoadBatch).
		Msg("loader starting")

	ds, err := dataset.LoadFile(cfg.HotelsCSV)
	if err != nil {
		log.Fatal().Err(err).Msg("read dataset failed")
	}

	repo, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer repo.Close()
	log.Info().Msg("db ping ok")

	records := ds.Records()
	rows := make([]mysqlrepo.Row, len(records))
	for i, h := range records {
		rows[i] = mysqlrepo.Row{Seq: i, Hotel: h}
	}

	size := max(cfg.LoadBatch, 1)
	sem := semaphore.NewWeighted(int64(max(cfg.LoadWorkers, 1)))
	var wg sync.WaitGroup
	var failed atomic.Int64

	for start := 0; start < len(rows); start += size {
		batch := rows[start:min(start+size, len(rows))]

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(first int, batch []mysqlrepo.Row) {
			defer wg.Done()
			defer sem.Release(1)

			if err := repo.UpsertHotels(ctx, batch); err != nil {
				failed.Add(int64(len(batch)))
				log.Warn().Int("first", first).Int("rows", len(batch)).Err(err).Msg("upsert failed")
				return
			}
			log.Debug().Int("first", first).Int("rows", len(batch)).Msg("upsert ok")
		}(start, batch)
	}

	wg.Wait()

	n, err := repo.CountHotels(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("count hotels failed")
	}
	ev := log.Info()
	if failed.Load() > 0 {
		ev = log.Error()
	}
	ev.Int("rows", len(rows)).Int64("failed", failed.Load()).Int("table_rows", n).Msg("load completed")
	if failed.Load() > 0 {
		log.Fatal().Msg("load incomplete")
	}
}
