package usecase

import (
	"context"
	"fmt"

	"github.com/buildforge/releasetag/internal/repository"
)

// BuildBase describes where a new cycle would start: the branch tip and the
// commit just before the newest release of the train.
type BuildBase struct {
	BranchTip       string
	LatestTagParent string
}

// ResolveBuildBaseUseCase contains the read-only resolution queries.

type ResolveBuildBaseUseCase struct {
	Git repository.WorkTreeReader
}

// Execute runs the use case.
func (uc *ResolveBuildBaseUseCase) Execute(ctx context.Context, pattern string) (BuildBase, error) {
	tip, err := uc.Git.CurrentCommit(ctx)
	if err != nil {
		return BuildBase{}, fmt.Errorf("failed to resolve branch tip: %w", err)
	}
	parent, err := uc.Git.NewestTagParentCommit(ctx, pattern)
	if err != nil {
		return BuildBase{}, fmt.Errorf("failed to resolve latest tag parent: %w", err)
	}
	return BuildBase{BranchTip: tip, LatestTagParent: parent}, nil
}
