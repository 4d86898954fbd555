package service

import "context"

// BuildService defines the interface for running the caller-supplied build
// command between prepare and commit.

type BuildService interface {
	Run(ctx context.Context, name string, args ...string) error
}
