package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// gitCommandRunner is the implementation of the CommandRunner interface. It
// invokes git by argument vector; no shell is involved, so arguments never
// need escaping. No timeout is applied: a command runs until it completes or
// the caller's context is canceled.
type gitCommandRunner struct {
	gitDir   string
	workTree string
	stdout   io.Writer
	stderr   io.Writer
	stdin    io.Reader
}

// NewGitCommandRunner creates a CommandRunner bound to the repository at path.
func NewGitCommandRunner(path string) CommandRunner {
	return &gitCommandRunner{
		gitDir:   filepath.Join(path, ".git"),
		workTree: path,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		stdin:    os.Stdin,
	}
}

// scopedArgs prepends the repository scoping flags to the logical arguments.
func (r *gitCommandRunner) scopedArgs(args []string) []string {
	scoped := make([]string, 0, len(args)+4)
	scoped = append(scoped, "--git-dir", r.gitDir, "--work-tree", r.workTree)
	return append(scoped, args...)
}

// RunQuery executes git and captures its output.
func (r *gitCommandRunner) RunQuery(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", r.scopedArgs(args)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg != "" {
			return "", fmt.Errorf("git %s failed: %w (stderr: %s)", args[0], err, errMsg)
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// RunAction executes git with output streamed to the operator. The logical
// command is echoed first so the operator can audit what ran.
func (r *gitCommandRunner) RunAction(ctx context.Context, args ...string) (int, error) {
	fmt.Fprintf(r.stdout, ">> git %s\n", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, "git", r.scopedArgs(args)...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.Stdin = r.stdin
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("failed to run git %s: %w", args[0], err)
}
