package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"weather-location-api/internal/config"
	"weather-location-api/internal/models"
	"weather-location-api/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// header is the expected first line of the CSV file.
var header = []string{"alias", "address", "place_id", "latitude", "longitude"}

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	flag.Parse()

	if *file == "" {
		log.Fatal().Msg("--file flag is required")
	}

	log.Info().Str("file", *file).Msg("starting import")

	records, err := parseCSVFile(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse CSV")
	}

	log.Info().Int("records", len(records)).Msg("parsed records")

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	ctx := context.Background()

	// Connect to DB
	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close(ctx)

	// Ensure table exists
	if _, err := conn.Exec(ctx, repository.Schema); err != nil {
		log.Fatal().Err(err).Msg("cannot create table")
	}

	existing, err := existingPlaceIDs(ctx, conn)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load saved place ids")
	}

	parsed := len(records)
	records = dropDuplicates(records, existing)

	// Insert records
	inserted, err := insertRecords(ctx, conn, records)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot insert records")
	}

	log.Info().Int64("inserted", inserted).Int("skipped", parsed-len(records)).Msg("import finished")
}

func parseCSVFile(path string) ([]models.Location, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return parseCSV(file)
}

// parseCSV reads saved locations; each gets a new id.
func parseCSV(r io.Reader) ([]models.Location, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(header)
	reader.TrimLeadingSpace = true

	first, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, name := range header {
		if strings.ToLower(strings.TrimSpace(first[i])) != name {
			return nil, fmt.Errorf("unexpected header column %d: %q, want %q", i+1, first[i], name)
		}
	}

	var records []models.Location
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		lat, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid latitude: %s", line, record[3])
		}

		lon, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid longitude: %s", line, record[4])
		}

		location := models.Location{
			ID:        uuid.NewString(),
			Alias:     strings.TrimSpace(record[0]),
			Address:   strings.TrimSpace(record[1]),
			PlaceID:   strings.TrimSpace(record[2]),
			Latitude:  lat,
			Longitude: lon,
		}
		if !location.Coordinates().Valid() {
			return nil, fmt.Errorf("line %d: coordinates out of range: %s", line, location.Coordinates())
		}
		if location.Alias == "" {
			location.Alias = location.Address
		}
		if location.Alias == "" {
			return nil, fmt.Errorf("line %d: alias and address are both empty", line)
		}

		records = append(records, location)
	}

	return records, nil
}

func existingPlaceIDs(ctx context.Context, conn *pgx.Conn) (map[string]bool, error) {
	rows, err := conn.Query(ctx, "SELECT place_id FROM saved_locations WHERE place_id <> ''")
	if err != nil {
		return nil, fmt.Errorf("failed to query place ids: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan place ids: %w", err)
	}

	existing := make(map[string]bool, len(ids))
	for _, id := range ids {
		existing[id] = true
	}
	return existing, nil
}

// dropDuplicates removes records whose place id is already saved or appeared
// earlier in the file, recording every kept place id in seen.
func dropDuplicates(records []models.Location, seen map[string]bool) []models.Location {
	kept := records[:0]
	for _, r := range records {
		if r.PlaceID != "" {
			if seen[r.PlaceID] {
				log.Warn().Str("place_id", r.PlaceID).Str("alias", r.Alias).Msg("skipping duplicate place")
				continue
			}
			seen[r.PlaceID] = true
		}
		kept = append(kept, r)
	}
	return kept
}

func insertRecords(ctx context.Context, conn *pgx.Conn, records []models.Location) (int64, error) {
	// Use CopyFrom for bulk insert
	return conn.CopyFrom(
		ctx,
		pgx.Identifier{"saved_locations"},
		[]string{"id", "alias", "address", "place_id", "geom"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			id, err := uuid.Parse(r.ID)
			if err != nil {
				return nil, err
			}
			geom := fmt.Sprintf("SRID=4326;POINT(%f %f)", r.Longitude, r.Latitude) // PostGIS format: lon lat
			return []any{id, r.Alias, r.Address, r.PlaceID, geom}, nil
		}),
	)
}
