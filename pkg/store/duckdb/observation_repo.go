package duckdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/beelight/beelight/pkg/model"
)

// ObservationRepo handles observation log persistence. The log is
// append-only: records are never updated in place.
type ObservationRepo struct {
	client *Client
}

// NewObservationRepo creates a new observation repository.
func NewObservationRepo(client *Client) *ObservationRepo {
	return &ObservationRepo{client: client}
}

// Append writes a single observation to the log.
func (r *ObservationRepo) Append(ctx context.Context, obs model.Observation) error {
	query := `
		INSERT INTO observations (ts, ambient_light, screen_brightness, is_manual_adjustment)
		VALUES (?, ?, ?, ?)
	`
	return r.client.Exec(ctx, query,
		obs.Timestamp, obs.AmbientLight, obs.ScreenBrightness, obs.IsManualAdjustment,
	)
}

// InsertBatch writes multiple observations in a single transaction.
func (r *ObservationRepo) InsertBatch(ctx context.Context, observations []model.Observation) error {
	tx, err := r.client.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO observations (ts, ambient_light, screen_brightness, is_manual_adjustment)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, obs := range observations {
		_, err := stmt.ExecContext(ctx,
			obs.Timestamp, obs.AmbientLight, obs.ScreenBrightness, obs.IsManualAdjustment,
		)
		if err != nil {
			return fmt.Errorf("failed to insert observation: %w", err)
		}
	}

	return tx.Commit()
}

// ReadAll retrieves the complete observation log in timestamp order.
func (r *ObservationRepo) ReadAll(ctx context.Context) ([]model.Observation, error) {
	query := `
		SELECT ts, ambient_light, screen_brightness, is_manual_adjustment
		FROM observations
		ORDER BY ts ASC
	`

	rows, err := r.client.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	return scanObservations(rows)
}

// GetByTimeRange retrieves observations with start <= ts <= end in timestamp
// order.
func (r *ObservationRepo) GetByTimeRange(ctx context.Context, start, end int64) ([]model.Observation, error) {
	query := `
		SELECT ts, ambient_light, screen_brightness, is_manual_adjustment
		FROM observations
		WHERE ts >= ? AND ts <= ?
		ORDER BY ts ASC
	`

	rows, err := r.client.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	return scanObservations(rows)
}

// Count returns the total number of logged observations.
func (r *ObservationRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	row := r.client.QueryRow(ctx, "SELECT COUNT(*) FROM observations")
	err := row.Scan(&count)
	return count, err
}

// CountManual returns the number of logged manual adjustments.
func (r *ObservationRepo) CountManual(ctx context.Context) (int64, error) {
	var count int64
	row := r.client.QueryRow(ctx, "SELECT COUNT(*) FROM observations WHERE is_manual_adjustment")
	err := row.Scan(&count)
	return count, err
}

func scanObservations(rows *sql.Rows) ([]model.Observation, error) {
	var observations []model.Observation
	for rows.Next() {
		var obs model.Observation
		if err := rows.Scan(
			&obs.Timestamp, &obs.AmbientLight, &obs.ScreenBrightness, &obs.IsManualAdjustment,
		); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		observations = append(observations, obs)
	}
	return observations, nil
}
