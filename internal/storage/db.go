// Package storage provides the SQLite mirror of the content fixtures.
// The REST surface reads from these repositories; the agent path uses the
// in-memory content snapshot instead.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

// DB wraps the SQLite database connection.
type DB struct {
	conn *sql.DB
	path string
}

// New opens (or creates) the content database and initializes its schema.
func New(ctx context.Context, dbPath string) (*DB, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=30000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := InitSchema(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Ready verifies the database answers queries; used by the readiness probe.
func (db *DB) Ready(ctx context.Context) error {
	var one int
	if err := db.conn.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	return nil
}

// execBatch runs fn against a prepared statement inside a transaction.
func (db *DB) execBatch(ctx context.Context, query string, fn func(stmt *sql.Stmt) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare statement: %w", err)
	}

	if err := fn(stmt); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("close statement: %w", err)
	}
	return tx.Commit()
}
