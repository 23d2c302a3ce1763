// Package gitquery provides the version-control query surface the release
// catalog is built on. It exposes a small read-only interface so the core
// can be tested against an in-memory implementation.
package gitquery

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the underlying version-control query
// cannot complete (process error, inaccessible repository, malformed range).
// Callers decide whether to retry; no retries happen at this layer.
var ErrUnavailable = errors.New("version control source unavailable")

// Commit is one entry from a log query.
type Commit struct {
	// Hash is the full commit hash.
	Hash string

	// Message is the full commit message, subject and body.
	Message string
}

// Source defines the version-control queries the release catalog needs.
// Implementations must be safe for concurrent use; the catalog issues
// many queries at once during a full load.
type Source interface {
	// ListTags returns all tag names in the repository, in arbitrary order.
	ListTags(ctx context.Context) ([]string, error)

	// Log returns the commits reachable from end and not from start,
	// newest first. An empty start means the full history up to end.
	Log(ctx context.Context, start, end string) ([]Commit, error)

	// FirstCommit returns the hash of the repository's root commit.
	FirstCommit(ctx context.Context) (string, error)
}
