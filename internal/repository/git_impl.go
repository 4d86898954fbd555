package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/buildforge/releasetag/internal/domain"
	"github.com/buildforge/releasetag/internal/service"
)

// logSeparator opens every changelog entry. Its exact width is a
// compatibility surface: downstream tooling posts the log verbatim into
// release notes.
var logSeparator = strings.Repeat("-", 72)

// changelogFormat is the fixed entry template: separator, abbreviated hash,
// author and committer identity with date, blank line, four-space-indented
// subject. Field order and spacing must not change.
var changelogFormat = "--pretty=format:" + logSeparator +
	"%ncommit %h" +
	"%nAuthor: %an <%ae> %ad" +
	"%nCommit: %cn <%ce> %cd" +
	"%n%n    %s"

// Options carries the caller-supplied identity of a work tree: where it is
// checked out, which branch and remote it tracks, and the fixed automation
// identity used for build commits.
type Options struct {
	Branch        string
	Remote        string
	CommitMessage string
	CommitAuthor  string
	TagMessage    string
}

// workTreeRepository is the implementation of the WorkTreeRepository
// interface. It holds no state between calls; everything it knows is in
// Options and in the repository itself.
type workTreeRepository struct {
	runner service.CommandRunner
	opts   Options
}

// NewWorkTreeRepository creates a WorkTreeRepository on top of a
// CommandRunner already scoped to the repository path.
func NewWorkTreeRepository(runner service.CommandRunner, opts Options) WorkTreeRepository {
	return &workTreeRepository{runner: runner, opts: opts}
}

// CurrentCommit resolves the branch tip to its abbreviated hash.
func (r *workTreeRepository) CurrentCommit(ctx context.Context) (string, error) {
	out, err := r.runner.RunQuery(ctx, "rev-parse", "--short", r.opts.Branch)
	if err != nil {
		return "", fmt.Errorf("failed to resolve branch %s: %w", r.opts.Branch, err)
	}
	return strings.ToLower(out), nil
}

// TagsByPattern lists annotated tags newest-first and keeps those whose name
// contains pattern. The match is a plain substring test, not a glob.
func (r *workTreeRepository) TagsByPattern(ctx context.Context, pattern string) ([]string, error) {
	out, err := r.runner.RunQuery(ctx,
		"for-each-ref", "--sort=-taggerdate", "--format=%(tag)", "refs/tags")
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	var tags []string
	for _, line := range strings.Split(out, "\n") {
		tag := strings.TrimSpace(line)
		// Lightweight tags render an empty %(tag) field; they carry no
		// tagger date and are skipped.
		if tag == "" {
			continue
		}
		if strings.Contains(tag, pattern) {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// TwoNewestTags returns the newest and second-newest matching tags.
func (r *workTreeRepository) TwoNewestTags(ctx context.Context, pattern string) (domain.TagPair, error) {
	tags, err := r.TagsByPattern(ctx, pattern)
	if err != nil {
		return domain.TagPair{}, err
	}
	if len(tags) < 2 {
		return domain.TagPair{}, fmt.Errorf(
			"%w: need 2 tags matching %q, found %d", ErrInsufficientTags, pattern, len(tags))
	}
	return domain.TagPair{Newest: tags[0], Previous: tags[1]}, nil
}

// NewestTagParentCommit resolves the first parent of the newest matching
// tag's commit, the boundary "everything before this release".
func (r *workTreeRepository) NewestTagParentCommit(ctx context.Context, pattern string) (string, error) {
	tags, err := r.TagsByPattern(ctx, pattern)
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", fmt.Errorf(
			"%w: need 1 tag matching %q, found 0", ErrInsufficientTags, pattern)
	}
	out, err := r.runner.RunQuery(ctx, "rev-parse", "--short", tags[0]+"^")
	if err != nil {
		return "", fmt.Errorf("failed to resolve parent of tag %s: %w", tags[0], err)
	}
	return out, nil
}

// CommitLog renders the fixed-format log for the exclusive-parent range
// older^..newer^.
func (r *workTreeRepository) CommitLog(ctx context.Context, older, newer string) (string, error) {
	out, err := r.runner.RunQuery(ctx,
		"log", fmt.Sprintf("%s^..%s^", older, newer),
		"--no-merges", "--stat", changelogFormat)
	if err != nil {
		return "", fmt.Errorf("failed to read log for %s..%s: %w", older, newer, err)
	}
	return out, nil
}

// CheckoutBranch switches to the configured branch.
func (r *workTreeRepository) CheckoutBranch(ctx context.Context) error {
	return r.runFatal(ctx, "checkout", r.opts.Branch)
}

// DetachHead detaches HEAD from the branch.
func (r *workTreeRepository) DetachHead(ctx context.Context) error {
	return r.runFatal(ctx, "checkout", "--detach")
}

// HasLocalChanges probes the work tree for uncommitted changes. The probe's
// exit code is the signal: non-zero means dirty. A failure of the probe
// itself (for example a bad HEAD) is indistinguishable from a dirty tree and
// is reported as dirty.
func (r *workTreeRepository) HasLocalChanges(ctx context.Context) (bool, error) {
	code, err := r.runner.RunAction(ctx, "diff-index", "--quiet", "HEAD", "--")
	if err != nil {
		return false, err
	}
	return code != 0, nil
}

// StashChanges stashes everything, untracked and ignored files included.
func (r *workTreeRepository) StashChanges(ctx context.Context) error {
	return r.runFatal(ctx, "stash", "-u", "-a")
}

// PopStash reapplies the most recent stash entry. On conflict the entry
// stays in the stash list; resolving that is the operator's job.
func (r *workTreeRepository) PopStash(ctx context.Context) error {
	return r.runFatal(ctx, "stash", "pop")
}

// StageAll stages the whole work tree.
func (r *workTreeRepository) StageAll(ctx context.Context) error {
	return r.runFatal(ctx, "add", ".")
}

// CommitBuild commits with the fixed automation identity and message.
func (r *workTreeRepository) CommitBuild(ctx context.Context) error {
	return r.runFatal(ctx,
		"commit", "-m", r.opts.CommitMessage, "--author", r.opts.CommitAuthor)
}

// CreateTag creates an annotated tag at HEAD.
func (r *workTreeRepository) CreateTag(ctx context.Context, name string) error {
	return r.runFatal(ctx, "tag", "-a", name, "-m", r.opts.TagMessage)
}

// PushTags pushes only tags; the branch itself is never pushed.
func (r *workTreeRepository) PushTags(ctx context.Context) error {
	return r.runFatal(ctx, "push", "--tags")
}

// Pull refreshes the configured branch from the remote.
func (r *workTreeRepository) Pull(ctx context.Context) error {
	return r.runFatal(ctx, "pull", r.opts.Remote, r.opts.Branch)
}

// runFatal runs an action-mode command and promotes any non-zero exit to an
// error. No retry and no cleanup: a mid-sequence failure leaves the
// repository where it stopped.
func (r *workTreeRepository) runFatal(ctx context.Context, args ...string) error {
	code, err := r.runner.RunAction(ctx, args...)
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf("git %s exited with code %d", strings.Join(args, " "), code)
	}
	return nil
}
