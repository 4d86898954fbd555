package repository

import (
	"context"
	"errors"
	"fmt"
)

var ErrGithubTokenRequired = errors.New("github token is required for GitHub operations")

type githubNoopRepository struct {
	owner string
	repo  string
}

// NewGithubNoopRepository returns a ReleaseRepository that rejects every
// operation; it stands in when no token is configured so that wiring stays
// uniform.
func NewGithubNoopRepository(owner, repo string) ReleaseRepository {
	return &githubNoopRepository{owner: owner, repo: repo}
}

func (r *githubNoopRepository) PublishRelease(_ context.Context, _, _, _ string) (string, error) {
	return "", r.operationError("publish release")
}

func (r *githubNoopRepository) operationError(action string) error {
	return fmt.Errorf("%w: unable to %s for %s/%s", ErrGithubTokenRequired, action, r.owner, r.repo)
}
