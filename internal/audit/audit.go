// Copyright 2026 The Enterprise MCP Gateway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package audit persists a local, append-only record of the gateway's own
// administrative actions (cache clears and circuit-breaker resets) for
// operational forensics. ActionConfigSet is part of the action set, but
// no caller appends it: set_config changes are not recorded here. It never stores tenant memory
// content, has no external read endpoint, and a write failure here never
// blocks the admin action that triggered it.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Action names appended to the log. Kept as a closed set so entries stay
// queryable without free-text drift.
const (
	ActionCacheClear   = "cache.clear"
	ActionBreakerReset = "breaker.reset"
	ActionConfigSet    = "config.set"
)

// Entry is one administrative action record.
type Entry struct {
	Timestamp     time.Time
	CorrelationID string
	Action        string
	Target        string
	Outcome       string
}

// Log is the append-only SQLite-backed audit trail.
type Log struct {
	db *sql.DB
}

// Open creates or opens the audit database under dataDir. The caller owns
// the returned Log's lifetime and must call Close on shutdown.
func Open(dataDir string) (*Log, error) {
	path := filepath.Join(dataDir, "audit.db")
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("audit: open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: connect: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS admin_audit_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts INTEGER NOT NULL,
			correlation_id TEXT NOT NULL,
			action TEXT NOT NULL,
			target TEXT NOT NULL,
			outcome TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: migrate: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_admin_audit_ts ON admin_audit_entries(ts)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: migrate index: %w", err)
	}

	return &Log{db: db}, nil
}

// Append records one admin action. Callers treat a returned error as
// advisory only — spec requires a logged warning, never a blocked or
// failed admin response.
func (l *Log) Append(ctx context.Context, e Entry) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO admin_audit_entries (ts, correlation_id, action, target, outcome) VALUES (?, ?, ?, ?, ?)`,
		e.Timestamp.UnixNano(), e.CorrelationID, e.Action, e.Target, e.Outcome,
	)
	if err != nil {
		return fmt.Errorf("audit: append entry: %w", err)
	}
	return nil
}

// Recent returns up to limit of the most recently appended entries,
// newest first. Used only by tests and local forensics — there is no
// external HTTP endpoint exposing this.
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT ts, correlation_id, action, target, outcome FROM admin_audit_entries ORDER BY ts DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("audit: query: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&ts, &e.CorrelationID, &e.Action, &e.Target, &e.Outcome); err != nil {
			return nil, fmt.Errorf("audit: scan: %w", err)
		}
		e.Timestamp = time.Unix(0, ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database connection.
func (l *Log) Close() error {
	return l.db.Close()
}
