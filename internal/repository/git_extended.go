package repository

import "context"

// WorkTreeRepository extends WorkTreeReader with the mutating work-tree
// operations of the tag-build cycle. Every mutating call is fatal on a
// non-zero exit except HasLocalChanges, whose exit code is the answer.
type WorkTreeRepository interface {
	WorkTreeReader
	// CheckoutBranch switches the work tree to the configured branch.
	CheckoutBranch(ctx context.Context) error
	// DetachHead detaches HEAD so later commits move no branch pointer.
	DetachHead(ctx context.Context) error
	// HasLocalChanges probes for uncommitted changes. A non-zero exit from
	// the probe means dirty; it is not an error.
	HasLocalChanges(ctx context.Context) (bool, error)
	// StashChanges stashes all local changes, untracked files included.
	StashChanges(ctx context.Context) error
	// PopStash reapplies the most recent stash entry.
	PopStash(ctx context.Context) error
	// StageAll stages every working-tree change.
	StageAll(ctx context.Context) error
	// CommitBuild commits staged changes with the automation identity.
	CommitBuild(ctx context.Context) error
	// CreateTag creates an annotated tag at HEAD.
	CreateTag(ctx context.Context, name string) error
	// PushTags pushes tags, and only tags, to the remote.
	PushTags(ctx context.Context) error
	// Pull updates the configured branch from the remote.
	Pull(ctx context.Context) error
}
