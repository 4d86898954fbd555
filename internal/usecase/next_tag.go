package usecase

import (
	"context"
	"fmt"

	"github.com/buildforge/releasetag/internal/domain"
	"github.com/buildforge/releasetag/internal/repository"
)

// NextTagUseCase proposes the next tag name of a release train by bumping
// the patch component of the newest existing tag.

type NextTagUseCase struct {
	Git repository.WorkTreeReader
}

// Execute runs the use case. The pattern doubles as the tag prefix: the
// remainder of the newest matching tag must parse as a semantic version.
func (uc *NextTagUseCase) Execute(ctx context.Context, pattern string) (string, error) {
	tags, err := uc.Git.TagsByPattern(ctx, pattern)
	if err != nil {
		return "", fmt.Errorf("failed to list tags: %w", err)
	}
	if len(tags) == 0 {
		return "", fmt.Errorf(
			"%w: need 1 tag matching %q to derive the next one", repository.ErrInsufficientTags, pattern)
	}
	version, err := domain.VersionFromTag(tags[0], pattern)
	if err != nil {
		return "", err
	}
	return version.BumpPatch().TagName(pattern), nil
}
