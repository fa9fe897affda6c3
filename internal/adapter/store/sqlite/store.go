package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bkyoung/pr-digest/internal/store"
	_ "github.com/mattn/go-sqlite3"
)

// Store implements the store.Store interface using SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite store at the given path.
// Use ":memory:" for in-memory database (useful for testing).
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}

	if err := s.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return s, nil
}

// createSchema creates all tables and indexes if they don't exist.
func (s *Store) createSchema() error {
	schema := `
	-- One row per generated digest
	CREATE TABLE IF NOT EXISTS digests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		repository TEXT NOT NULL,
		pull_number INTEGER NOT NULL,
		digest TEXT NOT NULL,
		general_comments INTEGER NOT NULL DEFAULT 0,
		threads INTEGER NOT NULL DEFAULT 0,
		reviews INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_digests_pr ON digests(repository, pull_number, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveDigest records a generated digest.
func (s *Store) SaveDigest(ctx context.Context, record store.DigestRecord) (int64, error) {
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO digests (repository, pull_number, digest, general_comments, threads, reviews, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		record.Repository,
		record.PullNumber,
		record.Digest,
		record.GeneralComments,
		record.Threads,
		record.Reviews,
		createdAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save digest: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}

	return id, nil
}

// GetDigest retrieves a single record by ID.
func (s *Store) GetDigest(ctx context.Context, id int64) (store.DigestRecord, error) {
	query := `
		SELECT id, repository, pull_number, digest, general_comments, threads, reviews, created_at
		FROM digests WHERE id = ?
	`

	return s.scanRecord(s.db.QueryRowContext(ctx, query, id))
}

// ListDigests returns the most recent records for a pull request, newest first.
func (s *Store) ListDigests(ctx context.Context, repository string, pullNumber int, limit int) ([]store.DigestRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, repository, pull_number, digest, general_comments, threads, reviews, created_at
		FROM digests
		WHERE repository = ? AND pull_number = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, repository, pullNumber, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list digests: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []store.DigestRecord
	for rows.Next() {
		var r store.DigestRecord
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.Repository, &r.PullNumber, &r.Digest,
			&r.GeneralComments, &r.Threads, &r.Reviews, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan digest: %w", err)
		}
		r.CreatedAt = time.Unix(createdAt, 0)
		records = append(records, r)
	}

	return records, rows.Err()
}

// LatestDigest returns the most recent record for a pull request.
func (s *Store) LatestDigest(ctx context.Context, repository string, pullNumber int) (store.DigestRecord, error) {
	query := `
		SELECT id, repository, pull_number, digest, general_comments, threads, reviews, created_at
		FROM digests
		WHERE repository = ? AND pull_number = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	return s.scanRecord(s.db.QueryRowContext(ctx, query, repository, pullNumber))
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) scanRecord(row *sql.Row) (store.DigestRecord, error) {
	var r store.DigestRecord
	var createdAt int64

	err := row.Scan(&r.ID, &r.Repository, &r.PullNumber, &r.Digest,
		&r.GeneralComments, &r.Threads, &r.Reviews, &createdAt)
	if err == sql.ErrNoRows {
		return store.DigestRecord{}, fmt.Errorf("digest not found")
	}
	if err != nil {
		return store.DigestRecord{}, fmt.Errorf("failed to scan digest: %w", err)
	}

	r.CreatedAt = time.Unix(createdAt, 0)
	return r, nil
}
