package usecase

import (
	"context"
	"fmt"

	"github.com/buildforge/releasetag/internal/repository"
)

// GenerateChangelogUseCase renders the changelog between the two most recent
// tags of a release train.

type GenerateChangelogUseCase struct {
	Git repository.WorkTreeReader
}

// Execute runs the use case. The log body is opaque text; only the range
// boundaries are computed here.
func (uc *GenerateChangelogUseCase) Execute(ctx context.Context, pattern string) (string, error) {
	pair, err := uc.Git.TwoNewestTags(ctx, pattern)
	if err != nil {
		return "", fmt.Errorf("failed to resolve tag range: %w", err)
	}
	log, err := uc.Git.CommitLog(ctx, pair.Previous, pair.Newest)
	if err != nil {
		return "", fmt.Errorf("failed to generate changelog: %w", err)
	}
	return log, nil
}
