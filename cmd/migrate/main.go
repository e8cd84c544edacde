// Command migrate imports a JSON snapshot of product records into the
// SQLite key-value backend. Used to move data exported from another
// device or an older install into a fresh database.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/rs/zerolog"

	"apple-inventory/internal/codec"
	"apple-inventory/internal/kvstore"
	"apple-inventory/internal/model"
)

func main() {
	input := flag.String("input", "products.json", "path to the JSON snapshot (array of records)")
	dataDir := flag.String("data-dir", "./data", "directory holding the SQLite database")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	raw, err := os.ReadFile(*input)
	if err != nil {
		log.Fatal().Err(err).Str("input", *input).Msg("failed to read snapshot")
	}

	var records []*model.ProductRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Fatal().Err(err).Msg("failed to parse snapshot")
	}

	kv, err := kvstore.NewSQLite(*dataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer kv.Close()

	adapter := kvstore.NewAdapter(kv)

	migrated, skipped := 0, 0
	for _, r := range records {
		if err := r.Normalize(); err != nil {
			log.Warn().Err(err).Str("id", r.ID).Msg("skipping record")
			skipped++
			continue
		}
		if r.ID == "" {
			r.ID = model.NewID(r.Category)
		}
		encoded, err := codec.EncodeRecord(r)
		if err != nil {
			log.Warn().Err(err).Str("id", r.ID).Msg("skipping record")
			skipped++
			continue
		}
		if err := adapter.PutRecord(r.ID, encoded); err != nil {
			log.Fatal().Err(err).Str("id", r.ID).Msg("failed to write record")
		}
		migrated++
	}

	log.Info().Int("migrated", migrated).Int("skipped", skipped).Msg("migration complete")
}
