package usecase

import (
	"context"
	"testing"

	"github.com/buildforge/releasetag/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextTagUseCase_Execute(t *testing.T) {
	t.Run("Should bump the patch of the newest tag", func(t *testing.T) {
		git := new(mockWorkTreeRepository)
		uc := &NextTagUseCase{Git: git}
		ctx := context.Background()
		git.On("TagsByPattern", ctx, "rel-").
			Return([]string{"rel-1.2.3", "rel-1.2.2"}, nil)
		next, err := uc.Execute(ctx, "rel-")
		require.NoError(t, err)
		assert.Equal(t, "rel-1.2.4", next)
	})
	t.Run("Should fail with the insufficient-tags error when the train is empty", func(t *testing.T) {
		git := new(mockWorkTreeRepository)
		uc := &NextTagUseCase{Git: git}
		ctx := context.Background()
		git.On("TagsByPattern", ctx, "rel-").Return([]string{}, nil)
		_, err := uc.Execute(ctx, "rel-")
		assert.ErrorIs(t, err, repository.ErrInsufficientTags)
	})
	t.Run("Should fail when the newest tag is not semver", func(t *testing.T) {
		git := new(mockWorkTreeRepository)
		uc := &NextTagUseCase{Git: git}
		ctx := context.Background()
		git.On("TagsByPattern", ctx, "rel-").Return([]string{"rel-nightly"}, nil)
		_, err := uc.Execute(ctx, "rel-")
		assert.Error(t, err)
	})
}
