// Package db persists detection runs and their per-slice angles to SQLite.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/eventcam/wheeltrack/internal/dvs"
	"github.com/eventcam/wheeltrack/internal/wheel"
)

type DB struct {
	*sql.DB
}

// NewDB opens (or creates) the SQLite database at path and ensures the
// schema exists.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id            TEXT PRIMARY KEY,
			source            TEXT,
			width             INTEGER,
			height            INTEGER,
			config_json       TEXT,
			event_count       BIGINT,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS slice_angles (
			run_id            TEXT,
			slice_index       INTEGER,
			angle_degrees     DOUBLE,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY(run_id, slice_index),
			FOREIGN KEY(run_id) REFERENCES runs(run_id)
		);
	`)
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// Run describes one pipeline invocation persisted alongside its angles.
type Run struct {
	ID         string
	Source     string
	Resolution dvs.Resolution
	Config     wheel.Config
	EventCount int
	CreatedAt  time.Time
}

// RecordRun inserts a run row and returns its generated ID.
func (db *DB) RecordRun(source string, res dvs.Resolution, cfg wheel.Config, eventCount int) (string, error) {
	runID := uuid.NewString()

	configJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	_, err = db.Exec(
		`INSERT INTO runs (run_id, source, width, height, config_json, event_count) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, source, res.Width, res.Height, string(configJSON), eventCount,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// RecordAngles stores a complete angle series for a run in one
// transaction. Undefined entries are stored as NULL, never as zero.
func (db *DB) RecordAngles(runID string, series wheel.AngleSeries) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO slice_angles (run_id, slice_index, angle_degrees) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range series {
		var angle interface{}
		if a.Defined {
			angle = a.Degrees
		}
		if _, err := stmt.Exec(runID, a.SliceIndex, angle); err != nil {
			return fmt.Errorf("failed to insert slice %d: %w", a.SliceIndex, err)
		}
	}
	return tx.Commit()
}

// RunAngles loads the angle series recorded for a run, ordered by slice
// index. NULL rows come back as undefined entries.
func (db *DB) RunAngles(runID string) (wheel.AngleSeries, error) {
	rows, err := db.Query(
		`SELECT slice_index, angle_degrees FROM slice_angles WHERE run_id = ? ORDER BY slice_index`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query slice angles: %w", err)
	}
	defer rows.Close()

	var series wheel.AngleSeries
	for rows.Next() {
		var idx int
		var angle sql.NullFloat64
		if err := rows.Scan(&idx, &angle); err != nil {
			return nil, fmt.Errorf("failed to scan slice angle: %w", err)
		}
		entry := wheel.SliceAngle{SliceIndex: idx}
		if angle.Valid {
			entry.Degrees = angle.Float64
			entry.Defined = true
		}
		series = append(series, entry)
	}
	return series, rows.Err()
}

// Runs lists persisted runs, most recent first.
func (db *DB) Runs() ([]Run, error) {
	rows, err := db.Query(
		`SELECT run_id, source, width, height, config_json, event_count, timestamp FROM runs ORDER BY timestamp DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var configJSON string
		if err := rows.Scan(&r.ID, &r.Source, &r.Resolution.Width, &r.Resolution.Height, &configJSON, &r.EventCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(configJSON), &r.Config); err != nil {
			return nil, fmt.Errorf("failed to parse run config: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
