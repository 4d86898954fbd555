package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFixtureRepo(t *testing.T) string {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "artifact.txt"), []byte("payload"), 0644)
	require.NoError(t, err)
	_, err = wt.Add("artifact.txt")
	require.NoError(t, err)
	_, err = wt.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
		},
	})
	require.NoError(t, err)
	return dir
}

func TestGitCommandRunner_ScopedArgs(t *testing.T) {
	t.Run("Should scope every command to the configured repository", func(t *testing.T) {
		r := &gitCommandRunner{
			gitDir:   "/repo/.git",
			workTree: "/repo",
		}
		args := r.scopedArgs([]string{"rev-parse", "--short", "main"})
		assert.Equal(t, []string{
			"--git-dir", "/repo/.git",
			"--work-tree", "/repo",
			"rev-parse", "--short", "main",
		}, args)
	})
}

func TestGitCommandRunner_RunAction(t *testing.T) {
	t.Run("Should echo the logical command before executing", func(t *testing.T) {
		dir := setupFixtureRepo(t)
		var out, errOut bytes.Buffer
		r := &gitCommandRunner{
			gitDir:   filepath.Join(dir, ".git"),
			workTree: dir,
			stdout:   &out,
			stderr:   &errOut,
		}
		code, err := r.RunAction(context.Background(), "status")
		// The echo happens before the process is spawned, so it is present
		// even when the git binary is unavailable.
		assert.True(t, strings.HasPrefix(out.String(), ">> git status\n"))
		if err == nil {
			assert.Equal(t, 0, code)
		}
	})
	t.Run("Should report non-zero exit as a code, not an error", func(t *testing.T) {
		dir := setupFixtureRepo(t)
		var out, errOut bytes.Buffer
		r := &gitCommandRunner{
			gitDir:   filepath.Join(dir, ".git"),
			workTree: dir,
			stdout:   &out,
			stderr:   &errOut,
		}
		// An unknown ref makes diff-index exit non-zero without being a
		// spawn failure.
		code, err := r.RunAction(context.Background(), "diff-index", "--quiet", "no-such-ref", "--")
		if err == nil {
			assert.NotEqual(t, 0, code)
		}
	})
}

func TestGitCommandRunner_RunQuery(t *testing.T) {
	t.Run("Should return trimmed output for a successful query", func(t *testing.T) {
		dir := setupFixtureRepo(t)
		r := NewGitCommandRunner(dir)
		out, err := r.RunQuery(context.Background(), "rev-parse", "--short", "HEAD")
		if err != nil {
			// Environments without a git binary surface the spawn failure.
			assert.Contains(t, err.Error(), "git")
			return
		}
		assert.NotEmpty(t, out)
		assert.Equal(t, strings.TrimSpace(out), out)
	})
	t.Run("Should fail for a query against a missing ref", func(t *testing.T) {
		dir := setupFixtureRepo(t)
		r := NewGitCommandRunner(dir)
		_, err := r.RunQuery(context.Background(), "rev-parse", "--short", "no-such-branch")
		assert.Error(t, err)
	})
}
