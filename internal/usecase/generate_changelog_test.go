package usecase

import (
	"context"
	"testing"

	"github.com/buildforge/releasetag/internal/domain"
	"github.com/buildforge/releasetag/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateChangelogUseCase_Execute(t *testing.T) {
	t.Run("Should render the log between the two newest tags", func(t *testing.T) {
		git := new(mockWorkTreeRepository)
		uc := &GenerateChangelogUseCase{Git: git}
		ctx := context.Background()
		pair := domain.TagPair{Newest: "rel-2024.02", Previous: "rel-2024.01"}
		git.On("TwoNewestTags", ctx, "rel-").Return(pair, nil)
		git.On("CommitLog", ctx, "rel-2024.01", "rel-2024.02").Return("log body", nil)
		log, err := uc.Execute(ctx, "rel-")
		require.NoError(t, err)
		assert.Equal(t, "log body", log)
		git.AssertExpectations(t)
	})
	t.Run("Should surface the insufficient-tags error", func(t *testing.T) {
		git := new(mockWorkTreeRepository)
		uc := &GenerateChangelogUseCase{Git: git}
		ctx := context.Background()
		git.On("TwoNewestTags", ctx, "rel-").
			Return(domain.TagPair{}, repository.ErrInsufficientTags)
		_, err := uc.Execute(ctx, "rel-")
		assert.ErrorIs(t, err, repository.ErrInsufficientTags)
		git.AssertNotCalled(t, "CommitLog", ctx)
	})
}
