package repository

import "context"

// ReleaseRepository defines the interface for publishing release notes to the
// hosting service after a tag has been pushed.

type ReleaseRepository interface {
	// PublishRelease creates a release for an existing tag, carrying the
	// generated changelog as its body, and returns the release URL.
	PublishRelease(ctx context.Context, tag, name, body string) (string, error)
}
