package store

import (
	"context"
	"time"
)

// Store defines the persistence layer interface for digest run history.
type Store interface {
	// SaveDigest records a generated digest.
	SaveDigest(ctx context.Context, record DigestRecord) (int64, error)

	// GetDigest retrieves a single record by ID.
	GetDigest(ctx context.Context, id int64) (DigestRecord, error)

	// ListDigests returns the most recent records for a pull request,
	// newest first.
	ListDigests(ctx context.Context, repository string, pullNumber int, limit int) ([]DigestRecord, error)

	// LatestDigest returns the most recent record for a pull request.
	LatestDigest(ctx context.Context, repository string, pullNumber int) (DigestRecord, error)

	Close() error
}

// DigestRecord stores one generated digest and its source counts.
type DigestRecord struct {
	ID              int64
	Repository      string // "owner/name"
	PullNumber      int
	Digest          string
	GeneralComments int
	Threads         int
	Reviews         int
	CreatedAt       time.Time
}
