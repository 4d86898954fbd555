package usecase

import (
	"context"
	"fmt"

	"github.com/buildforge/releasetag/internal/repository"
)

// CommitAndTagUseCase commits everything the build produced, tags the commit,
// and pushes only the tag. Each step is fatal: a mid-sequence failure leaves
// the repository as-is for the operator.

type CommitAndTagUseCase struct {
	Git repository.WorkTreeRepository
}

// Execute runs the use case.
func (uc *CommitAndTagUseCase) Execute(ctx context.Context, tagName string) error {
	if err := uc.Git.StageAll(ctx); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	if err := uc.Git.CommitBuild(ctx); err != nil {
		return fmt.Errorf("failed to commit build: %w", err)
	}
	if err := uc.Git.CreateTag(ctx, tagName); err != nil {
		return fmt.Errorf("failed to create tag %s: %w", tagName, err)
	}
	if err := uc.Git.PushTags(ctx); err != nil {
		return fmt.Errorf("failed to push tags: %w", err)
	}
	return nil
}
