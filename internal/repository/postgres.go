package repository

import (
	"context"
	"errors"
	"fmt"

	"weather-location-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no saved location matches.
var ErrNotFound = errors.New("repository: saved location not found")

// ErrDuplicate is returned when an insert collides with a saved location's id or place id.
var ErrDuplicate = errors.New("repository: saved location already exists")

const uniqueViolation = "23505"

// Schema creates the saved_locations table. Requires PostGIS.
const Schema = `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS saved_locations (
		id UUID PRIMARY KEY,
		alias VARCHAR(255) NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		place_id VARCHAR(255) NOT NULL DEFAULT '',
		geom GEOGRAPHY(POINT, 4326) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE UNIQUE INDEX IF NOT EXISTS saved_locations_place_id_idx ON saved_locations (place_id) WHERE place_id <> '';
	CREATE INDEX IF NOT EXISTS saved_locations_geom_idx ON saved_locations USING GIST (geom);
`

const savedLocationColumns = `
	id::text,
	alias,
	address,
	place_id,
	ST_Y(geom::geometry) as latitude,
	ST_X(geom::geometry) as longitude
`

// Repository implements saved-location storage on PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the tables the repository needs if they are missing
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// ListSavedLocations returns saved locations in the order they were saved
func (r *Repository) ListSavedLocations(ctx context.Context) ([]models.Location, error) {
	sql := `SELECT ` + savedLocationColumns + ` FROM saved_locations ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute list query: %w", err)
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan location: %w", err)
		}
		locations = append(locations, *loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return locations, nil
}

// FindSavedLocation looks a saved location up by id
func (r *Repository) FindSavedLocation(ctx context.Context, id string) (*models.Location, error) {
	sql := `SELECT ` + savedLocationColumns + ` FROM saved_locations WHERE id = $1::uuid`
	return r.queryOne(ctx, sql, id)
}

// FindSavedLocationByPlaceID looks a saved location up by its provider place id
func (r *Repository) FindSavedLocationByPlaceID(ctx context.Context, placeID string) (*models.Location, error) {
	sql := `SELECT ` + savedLocationColumns + ` FROM saved_locations WHERE place_id = $1 AND place_id <> ''`
	return r.queryOne(ctx, sql, placeID)
}

// FindNearestSavedLocation returns the saved location closest to the coordinates within radiusMeters
func (r *Repository) FindNearestSavedLocation(ctx context.Context, lat, lon, radiusMeters float64) (*models.Location, error) {
	sql := `
		SELECT ` + savedLocationColumns + `
		FROM saved_locations
		WHERE ST_DWithin(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $3)
		ORDER BY geom <-> ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography
		LIMIT 1
	`
	return r.queryOne(ctx, sql, lat, lon, radiusMeters)
}

// InsertSavedLocation stores loc, whose ID must already be set
func (r *Repository) InsertSavedLocation(ctx context.Context, loc models.Location) error {
	sql := `
		INSERT INTO saved_locations (id, alias, address, place_id, geom)
		VALUES ($1::uuid, $2, $3, $4, ST_SetSRID(ST_MakePoint($6, $5), 4326)::geography)
	`
	_, err := r.db.Exec(ctx, sql, loc.ID, loc.Alias, loc.Address, loc.PlaceID, loc.Latitude, loc.Longitude)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("repository: failed to insert saved location: %w", err)
	}
	return nil
}

// RenameSavedLocation changes the alias of a saved location
func (r *Repository) RenameSavedLocation(ctx context.Context, id, alias string) (*models.Location, error) {
	sql := `UPDATE saved_locations SET alias = $2 WHERE id = $1::uuid RETURNING ` + savedLocationColumns
	return r.queryOne(ctx, sql, id, alias)
}

// DeleteSavedLocation removes a saved location
func (r *Repository) DeleteSavedLocation(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM saved_locations WHERE id = $1::uuid`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete saved location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) queryOne(ctx context.Context, sql string, args ...any) (*models.Location, error) {
	loc, err := scanLocation(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to execute query: %w", err)
	}
	return loc, nil
}

func scanLocation(row pgx.Row) (*models.Location, error) {
	var loc models.Location
	err := row.Scan(
		&loc.ID,
		&loc.Alias,
		&loc.Address,
		&loc.PlaceID,
		&loc.Latitude,
		&loc.Longitude,
	)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}
