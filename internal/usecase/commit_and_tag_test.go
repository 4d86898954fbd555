package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitAndTagUseCase_Execute(t *testing.T) {
	t.Run("Should stage, commit, tag, and push tags in order", func(t *testing.T) {
		git := new(mockWorkTreeRepository)
		uc := &CommitAndTagUseCase{Git: git}
		ctx := context.Background()
		git.On("StageAll", ctx).Return(nil)
		git.On("CommitBuild", ctx).Return(nil)
		git.On("CreateTag", ctx, "rel-1.2.3").Return(nil)
		git.On("PushTags", ctx).Return(nil)
		require.NoError(t, uc.Execute(ctx, "rel-1.2.3"))
		git.AssertExpectations(t)
	})
	t.Run("Should stop at the first failing step", func(t *testing.T) {
		git := new(mockWorkTreeRepository)
		uc := &CommitAndTagUseCase{Git: git}
		ctx := context.Background()
		git.On("StageAll", ctx).Return(nil)
		git.On("CommitBuild", ctx).Return(nil)
		git.On("CreateTag", ctx, "rel-1.2.3").Return(errors.New("tag exists"))
		err := uc.Execute(ctx, "rel-1.2.3")
		assert.Error(t, err)
		git.AssertNotCalled(t, "PushTags", ctx)
	})
}
