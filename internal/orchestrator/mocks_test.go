package orchestrator

import (
	"context"

	"github.com/buildforge/releasetag/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for WorkTreeRepository - implements ALL methods from the interface
type mockWorkTreeRepository struct{ mock.Mock }

func (m *mockWorkTreeRepository) CurrentCommit(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *mockWorkTreeRepository) TagsByPattern(ctx context.Context, pattern string) ([]string, error) {
	args := m.Called(ctx, pattern)
	if tags := args.Get(0); tags != nil {
		return tags.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockWorkTreeRepository) TwoNewestTags(ctx context.Context, pattern string) (domain.TagPair, error) {
	args := m.Called(ctx, pattern)
	return args.Get(0).(domain.TagPair), args.Error(1)
}
func (m *mockWorkTreeRepository) NewestTagParentCommit(ctx context.Context, pattern string) (string, error) {
	args := m.Called(ctx, pattern)
	return args.String(0), args.Error(1)
}
func (m *mockWorkTreeRepository) CommitLog(ctx context.Context, older, newer string) (string, error) {
	args := m.Called(ctx, older, newer)
	return args.String(0), args.Error(1)
}
func (m *mockWorkTreeRepository) CheckoutBranch(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *mockWorkTreeRepository) DetachHead(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *mockWorkTreeRepository) HasLocalChanges(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
func (m *mockWorkTreeRepository) StashChanges(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *mockWorkTreeRepository) PopStash(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *mockWorkTreeRepository) StageAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *mockWorkTreeRepository) CommitBuild(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *mockWorkTreeRepository) CreateTag(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
func (m *mockWorkTreeRepository) PushTags(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *mockWorkTreeRepository) Pull(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Mock for ReleaseRepository
type mockReleaseRepository struct{ mock.Mock }

func (m *mockReleaseRepository) PublishRelease(ctx context.Context, tag, name, body string) (string, error) {
	args := m.Called(ctx, tag, name, body)
	return args.String(0), args.Error(1)
}

// Mock for BuildService
type mockBuildService struct{ mock.Mock }

func (m *mockBuildService) Run(ctx context.Context, name string, args ...string) error {
	callArgs := m.Called(ctx, name, args)
	return callArgs.Error(0)
}

// Mock for RunStateRepository
type mockRunStateRepository struct{ mock.Mock }

func (m *mockRunStateRepository) Save(ctx context.Context, run *domain.BuildRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}
func (m *mockRunStateRepository) Load(ctx context.Context, sessionID string) (*domain.BuildRun, error) {
	args := m.Called(ctx, sessionID)
	if run := args.Get(0); run != nil {
		return run.(*domain.BuildRun), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockRunStateRepository) LoadLatest(ctx context.Context) (*domain.BuildRun, error) {
	args := m.Called(ctx)
	if run := args.Get(0); run != nil {
		return run.(*domain.BuildRun), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockRunStateRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
func (m *mockRunStateRepository) Exists(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}
