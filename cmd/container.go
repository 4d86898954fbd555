package cmd

import (
	"go.uber.org/zap"

	"github.com/buildforge/releasetag/internal/config"
	"github.com/buildforge/releasetag/internal/orchestrator"
	"github.com/buildforge/releasetag/internal/repository"
	"github.com/buildforge/releasetag/internal/service"
	"github.com/spf13/afero"
)

// container holds all the dependencies for the application.

type container struct {
	cfg *config.Config
	log *zap.Logger

	fsRepo      repository.FileSystemRepository
	gitRepo     repository.WorkTreeRepository
	releaseRepo repository.ReleaseRepository
	stateRepo   repository.RunStateRepository
	buildSvc    service.BuildService
}

// newContainer creates a new container with all the dependencies.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	log, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	runner := service.NewGitCommandRunner(cfg.RepoPath)
	gitRepo := repository.NewWorkTreeRepository(runner, repository.Options{
		Branch:        cfg.Branch,
		Remote:        cfg.Remote,
		CommitMessage: cfg.CommitMessage,
		CommitAuthor:  cfg.CommitAuthor,
		TagMessage:    cfg.TagMessage,
	})

	// Release publication needs a token; without one the repository rejects
	// the publish call instead of failing deep inside the cycle.
	var releaseRepo repository.ReleaseRepository
	if cfg.GithubToken != "" {
		releaseRepo, err = repository.NewGithubReleaseRepository(cfg.GithubToken, cfg.GithubOwner, cfg.GithubRepo)
		if err != nil {
			return nil, err
		}
	} else {
		releaseRepo = repository.NewGithubNoopRepository(cfg.GithubOwner, cfg.GithubRepo)
	}

	stateRepo := repository.NewJSONRunStateRepository(fsRepo, cfg.StateDir)

	return &container{
		cfg:         cfg,
		log:         log,
		fsRepo:      fsRepo,
		gitRepo:     gitRepo,
		releaseRepo: releaseRepo,
		stateRepo:   stateRepo,
		buildSvc:    service.NewBuildService(),
	}, nil
}

func (c *container) tagBuildOrchestrator() *orchestrator.TagBuildOrchestrator {
	return orchestrator.NewTagBuildOrchestrator(
		c.cfg.Branch,
		c.gitRepo,
		c.releaseRepo,
		c.fsRepo,
		c.buildSvc,
		c.stateRepo,
		c.log,
	)
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	c, err := newContainer()
	if err != nil {
		return err
	}

	rootCmd.AddCommand(newTagBuildCmd(c))
	rootCmd.AddCommand(newChangelogCmd(c))
	rootCmd.AddCommand(newNextTagCmd(c))
	rootCmd.AddCommand(newBuildBaseCmd(c))
	rootCmd.AddCommand(newUpdateCmd(c))
	rootCmd.AddCommand(newLastRunCmd(c))
	rootCmd.AddCommand(newVersionCmd())
	return nil
}
