package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/buildforge/releasetag/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flock needs real paths, so the run directory lives in a temp dir.
func newTestRunStateRepo(t *testing.T) RunStateRepository {
	dir := filepath.Join(t.TempDir(), "state")
	return NewJSONRunStateRepository(afero.NewOsFs(), dir)
}

func TestJSONRunStateRepository_SaveAndLoad(t *testing.T) {
	t.Run("Should round-trip a run record", func(t *testing.T) {
		repo := newTestRunStateRepo(t)
		ctx := context.Background()
		run := domain.NewBuildRun("session-1", "main")
		run.TagName = "rel-1.2.3"
		run.Stashed = true
		run.MarkStepStarted(domain.StepTypePrepare)
		run.MarkStepCompleted(domain.StepTypePrepare)
		require.NoError(t, repo.Save(ctx, run))

		loaded, err := repo.Load(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, "rel-1.2.3", loaded.TagName)
		assert.True(t, loaded.Stashed)
		assert.Len(t, loaded.Steps, 1)
	})
	t.Run("Should fail to load an unknown session", func(t *testing.T) {
		repo := newTestRunStateRepo(t)
		_, err := repo.Load(context.Background(), "missing")
		assert.Error(t, err)
	})
}

func TestJSONRunStateRepository_LoadLatest(t *testing.T) {
	t.Run("Should return the most recently saved run", func(t *testing.T) {
		repo := newTestRunStateRepo(t)
		ctx := context.Background()
		first := domain.NewBuildRun("session-a", "main")
		second := domain.NewBuildRun("session-b", "main")
		require.NoError(t, repo.Save(ctx, first))
		require.NoError(t, repo.Save(ctx, second))

		latest, err := repo.LoadLatest(ctx)
		require.NoError(t, err)
		assert.Equal(t, "session-b", latest.SessionID)
	})
	t.Run("Should fail when nothing was recorded", func(t *testing.T) {
		repo := newTestRunStateRepo(t)
		_, err := repo.LoadLatest(context.Background())
		assert.Error(t, err)
	})
}

func TestJSONRunStateRepository_ExistsAndDelete(t *testing.T) {
	t.Run("Should report and delete recorded runs", func(t *testing.T) {
		repo := newTestRunStateRepo(t)
		ctx := context.Background()
		run := domain.NewBuildRun("session-x", "main")
		require.NoError(t, repo.Save(ctx, run))

		exists, err := repo.Exists(ctx, "session-x")
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, repo.Delete(ctx, "session-x"))
		exists, err = repo.Exists(ctx, "session-x")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
