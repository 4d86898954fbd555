package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBuildBaseUseCase_Execute(t *testing.T) {
	t.Run("Should return the branch tip and the latest tag parent", func(t *testing.T) {
		git := new(mockWorkTreeRepository)
		uc := &ResolveBuildBaseUseCase{Git: git}
		ctx := context.Background()
		git.On("CurrentCommit", ctx).Return("abc1234", nil)
		git.On("NewestTagParentCommit", ctx, "rel-").Return("def5678", nil)
		base, err := uc.Execute(ctx, "rel-")
		require.NoError(t, err)
		assert.Equal(t, "abc1234", base.BranchTip)
		assert.Equal(t, "def5678", base.LatestTagParent)
	})
	t.Run("Should fail when the branch tip cannot be resolved", func(t *testing.T) {
		git := new(mockWorkTreeRepository)
		uc := &ResolveBuildBaseUseCase{Git: git}
		ctx := context.Background()
		git.On("CurrentCommit", ctx).Return("", errors.New("unknown revision"))
		_, err := uc.Execute(ctx, "rel-")
		assert.Error(t, err)
	})
}
