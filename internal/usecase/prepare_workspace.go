package usecase

import (
	"context"
	"fmt"

	"github.com/buildforge/releasetag/internal/repository"
)

// PrepareWorkspaceUseCase moves the work tree into the detached state the
// build mutates in: checked out on the branch, local changes stashed away,
// HEAD detached so the build commit moves no branch pointer.

type PrepareWorkspaceUseCase struct {
	Git repository.WorkTreeRepository
}

// Execute runs the use case. The returned flag records whether local changes
// were stashed; the caller owns it and must pass it back to restore. The
// use case keeps no state between calls.
func (uc *PrepareWorkspaceUseCase) Execute(ctx context.Context) (bool, error) {
	if err := uc.Git.CheckoutBranch(ctx); err != nil {
		return false, fmt.Errorf("failed to check out branch: %w", err)
	}
	dirty, err := uc.Git.HasLocalChanges(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to probe for local changes: %w", err)
	}
	stashed := false
	if dirty {
		fmt.Println("Stashing local changes for later recovery")
		if err := uc.Git.StashChanges(ctx); err != nil {
			return false, fmt.Errorf("failed to stash local changes: %w", err)
		}
		stashed = true
	}
	if err := uc.Git.DetachHead(ctx); err != nil {
		return stashed, fmt.Errorf("failed to detach HEAD: %w", err)
	}
	return stashed, nil
}
