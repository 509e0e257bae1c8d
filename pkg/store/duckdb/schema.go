package duckdb

import (
	"context"
	"fmt"
)

// CreateObservationsTable creates the append-only observation log. Booleans
// are stored natively; the CSV record-log format serializes them as 1/0.
const CreateObservationsTable = `
CREATE TABLE IF NOT EXISTS observations (
    ts BIGINT NOT NULL,
    ambient_light INTEGER NOT NULL,
    screen_brightness INTEGER NOT NULL,
    is_manual_adjustment BOOLEAN NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_observations_ts ON observations(ts);
`

// InitializeSchema creates all required tables.
func InitializeSchema(ctx context.Context, c *Client) error {
	schemas := []string{
		CreateObservationsTable,
	}

	for _, schema := range schemas {
		if err := c.Exec(ctx, schema); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// DropAllTables drops all tables (use with caution).
func DropAllTables(ctx context.Context, c *Client) error {
	tables := []string{"observations"}
	for _, table := range tables {
		if err := c.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
