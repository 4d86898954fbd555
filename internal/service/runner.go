package service

import "context"

// CommandRunner abstracts the external git binary. Every invocation is scoped
// to a fixed repository directory and work tree; callers pass only the logical
// command arguments.
//
// The two modes deliberately split the "is a non-zero exit a failure?"
// decision: RunQuery treats it as one, RunAction leaves it to the call site.

type CommandRunner interface {
	// RunQuery executes git and returns its trimmed standard output.
	// A non-zero exit is an error.
	RunQuery(ctx context.Context, args ...string) (string, error)
	// RunAction executes git with stdout/stderr streamed to the operator and
	// returns the exit code. A non-zero exit is not an error; the returned
	// error only reports a process that could not be run at all.
	RunAction(ctx context.Context, args ...string) (int, error)
}
