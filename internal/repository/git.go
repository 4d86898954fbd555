package repository

import (
	"context"
	"errors"

	"github.com/buildforge/releasetag/internal/domain"
)

// ErrInsufficientTags reports that fewer tags match a pattern than the
// requested query needs. Callers must handle it instead of ever seeing an
// out-of-range result.
var ErrInsufficientTags = errors.New("not enough tags match the pattern")

// WorkTreeReader defines the read-only git queries.

type WorkTreeReader interface {
	// CurrentCommit resolves the tip of the configured branch to its
	// abbreviated, lower-cased hash.
	CurrentCommit(ctx context.Context) (string, error)
	// TagsByPattern returns all annotated tags whose name contains pattern,
	// newest first by tagger date.
	TagsByPattern(ctx context.Context, pattern string) ([]string, error)
	// TwoNewestTags returns the two most recent tags matching pattern.
	TwoNewestTags(ctx context.Context, pattern string) (domain.TagPair, error)
	// NewestTagParentCommit resolves the abbreviated hash of the commit
	// immediately preceding the newest matching tag.
	NewestTagParentCommit(ctx context.Context, pattern string) (string, error)
	// CommitLog returns the formatted commit log for older^..newer^,
	// excluding merges and including file statistics.
	CommitLog(ctx context.Context, older, newer string) (string, error)
}
