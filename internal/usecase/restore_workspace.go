package usecase

import (
	"context"
	"fmt"

	"github.com/buildforge/releasetag/internal/repository"
)

// RestoreWorkspaceUseCase returns the work tree to the developer: back on the
// branch, with stashed changes reapplied when prepare stashed any.

type RestoreWorkspaceUseCase struct {
	Git repository.WorkTreeRepository
}

// Execute runs the use case. A failed stash pop leaves the entry in the
// stash list; nothing is retried.
func (uc *RestoreWorkspaceUseCase) Execute(ctx context.Context, stashed bool) error {
	if err := uc.Git.CheckoutBranch(ctx); err != nil {
		return fmt.Errorf("failed to check out branch: %w", err)
	}
	if stashed {
		fmt.Println("Restoring previous changes")
		if err := uc.Git.PopStash(ctx); err != nil {
			return fmt.Errorf("failed to pop stash: %w", err)
		}
	}
	return nil
}
