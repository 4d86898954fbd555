package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/buildforge/releasetag/internal/config"
	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

// githubReleaseRepository is the implementation of the ReleaseRepository
// interface.
type githubReleaseRepository struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGithubReleaseRepository creates a new ReleaseRepository with validation.
func NewGithubReleaseRepository(token, owner, repo string) (ReleaseRepository, error) {
	if err := config.ValidateGitHubToken(token); err != nil {
		return nil, fmt.Errorf("invalid GitHub token: %w", err)
	}
	if err := config.ValidateGitHubOwnerRepo(owner, repo); err != nil {
		return nil, fmt.Errorf("invalid repository configuration: %w", err)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	return &githubReleaseRepository{
		client: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
	}, nil
}

// PublishRelease creates a release pointing at an already-pushed tag.
func (r *githubReleaseRepository) PublishRelease(ctx context.Context, tag, name, body string) (string, error) {
	release, _, err := r.client.Repositories.CreateRelease(ctx, r.owner, r.repo, &github.RepositoryRelease{
		TagName: github.Ptr(tag),
		Name:    github.Ptr(name),
		Body:    github.Ptr(body),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create release for tag %s: %w", tag, err)
	}
	return release.GetHTMLURL(), nil
}
