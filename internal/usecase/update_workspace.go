package usecase

import (
	"context"
	"fmt"

	"github.com/buildforge/releasetag/internal/repository"
)

// UpdateWorkspaceUseCase refreshes the branch from the remote before a new
// cycle starts. It is independent of the prepare/restore protocol.

type UpdateWorkspaceUseCase struct {
	Git repository.WorkTreeRepository
}

// Execute runs the use case.
func (uc *UpdateWorkspaceUseCase) Execute(ctx context.Context) error {
	if err := uc.Git.CheckoutBranch(ctx); err != nil {
		return fmt.Errorf("failed to check out branch: %w", err)
	}
	if err := uc.Git.Pull(ctx); err != nil {
		return fmt.Errorf("failed to pull: %w", err)
	}
	return nil
}
