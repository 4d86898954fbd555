package orchestrator

import (
	"context"
	"fmt"

	"github.com/buildforge/releasetag/internal/domain"
	"github.com/buildforge/releasetag/internal/repository"
	"github.com/buildforge/releasetag/internal/service"
	"github.com/buildforge/releasetag/internal/usecase"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// TagBuildConfig contains configuration for one tag-build cycle.
type TagBuildConfig struct {
	TagName        string   // explicit tag; derived from Pattern when empty
	Pattern        string   // release-train substring/prefix
	SkipUpdate     bool     // skip the pull before the cycle
	DryRun         bool     // prepare and restore only, commit nothing
	BuildCommand   []string // command run between prepare and commit
	ChangelogFile  string   // write the generated changelog here when set
	PublishRelease bool     // publish a GitHub release carrying the changelog
}

// TagBuildOrchestrator sequences the whole prepare/commit/restore cycle.
// It threads the stashed flag from prepare to restore as a plain value and
// records each step in a run-state file so an operator can see exactly where
// a failed cycle stopped. Failures are final: no step is retried and nothing
// is cleaned up automatically.
type TagBuildOrchestrator struct {
	branch      string
	gitRepo     repository.WorkTreeRepository
	releaseRepo repository.ReleaseRepository
	fsRepo      repository.FileSystemRepository
	buildSvc    service.BuildService
	stateRepo   repository.RunStateRepository
	log         *zap.Logger
}

// NewTagBuildOrchestrator creates a new tag-build orchestrator.
func NewTagBuildOrchestrator(
	branch string,
	gitRepo repository.WorkTreeRepository,
	releaseRepo repository.ReleaseRepository,
	fsRepo repository.FileSystemRepository,
	buildSvc service.BuildService,
	stateRepo repository.RunStateRepository,
	log *zap.Logger,
) *TagBuildOrchestrator {
	return &TagBuildOrchestrator{
		branch:      branch,
		gitRepo:     gitRepo,
		releaseRepo: releaseRepo,
		fsRepo:      fsRepo,
		buildSvc:    buildSvc,
		stateRepo:   stateRepo,
		log:         log,
	}
}

// Execute runs the complete tag-build cycle.
func (o *TagBuildOrchestrator) Execute(ctx context.Context, cfg TagBuildConfig) error {
	tagName, err := o.resolveTagName(ctx, cfg)
	if err != nil {
		return err
	}
	run := domain.NewBuildRun(uuid.New().String(), o.branch)
	run.TagName = tagName
	run.Pattern = cfg.Pattern
	run.Status = domain.RunStatusRunning
	o.saveRun(ctx, run)
	o.log.Info("starting tag-build cycle",
		zap.String("session", run.SessionID),
		zap.String("tag", tagName),
		zap.Bool("dry_run", cfg.DryRun))

	if err := o.executeCycle(ctx, cfg, run, tagName); err != nil {
		o.log.Error("tag-build cycle failed; repository left as-is for manual recovery",
			zap.String("session", run.SessionID),
			zap.Error(err))
		return err
	}

	run.Status = domain.RunStatusCompleted
	o.saveRun(ctx, run)
	o.log.Info("tag-build cycle completed",
		zap.String("session", run.SessionID),
		zap.String("tag", tagName))
	return nil
}

// executeCycle runs the steps in protocol order. The stashed flag returned
// by prepare travels through this function only.
func (o *TagBuildOrchestrator) executeCycle(
	ctx context.Context,
	cfg TagBuildConfig,
	run *domain.BuildRun,
	tagName string,
) error {
	if !cfg.SkipUpdate {
		if err := o.runStep(ctx, run, domain.StepTypeUpdate, func(ctx context.Context) error {
			return o.updateWorkspace(ctx)
		}); err != nil {
			return err
		}
	}

	var stashed bool
	if err := o.runStep(ctx, run, domain.StepTypePrepare, func(ctx context.Context) error {
		var err error
		stashed, err = o.prepareWorkspace(ctx)
		// Record the flag immediately: after a later failure it tells the
		// operator whether a stash entry is waiting.
		run.Stashed = stashed
		return err
	}); err != nil {
		return err
	}

	if len(cfg.BuildCommand) > 0 {
		if err := o.runStep(ctx, run, domain.StepTypeBuild, func(ctx context.Context) error {
			return o.buildSvc.Run(ctx, cfg.BuildCommand[0], cfg.BuildCommand[1:]...)
		}); err != nil {
			return err
		}
	}

	if cfg.DryRun {
		o.log.Info("dry-run: skipping commit, tag, and push")
		return o.runStep(ctx, run, domain.StepTypeRestore, func(ctx context.Context) error {
			return o.restoreWorkspace(ctx, stashed)
		})
	}

	if err := o.runStep(ctx, run, domain.StepTypeCommitAndTag, func(ctx context.Context) error {
		return o.commitAndTag(ctx, tagName)
	}); err != nil {
		return err
	}

	var changelog string
	if cfg.ChangelogFile != "" || cfg.PublishRelease {
		if err := o.runStep(ctx, run, domain.StepTypeChangelog, func(ctx context.Context) error {
			var err error
			changelog, err = o.generateChangelog(ctx, cfg)
			return err
		}); err != nil {
			return err
		}
	}

	if cfg.PublishRelease {
		if err := o.runStep(ctx, run, domain.StepTypePublishRelease, func(ctx context.Context) error {
			return o.publishRelease(ctx, tagName, changelog)
		}); err != nil {
			return err
		}
	}

	return o.runStep(ctx, run, domain.StepTypeRestore, func(ctx context.Context) error {
		return o.restoreWorkspace(ctx, stashed)
	})
}

// resolveTagName picks the explicit tag or derives the next one of the train.
func (o *TagBuildOrchestrator) resolveTagName(ctx context.Context, cfg TagBuildConfig) (string, error) {
	tagName := cfg.TagName
	if tagName == "" {
		uc := &usecase.NextTagUseCase{Git: o.gitRepo}
		next, err := uc.Execute(ctx, cfg.Pattern)
		if err != nil {
			return "", fmt.Errorf("failed to derive next tag: %w", err)
		}
		tagName = next
	}
	if err := ValidateTagName(tagName); err != nil {
		return "", fmt.Errorf("invalid tag: %w", err)
	}
	return tagName, nil
}

// runStep executes one cycle step and records its outcome. The step itself
// runs exactly once.
func (o *TagBuildOrchestrator) runStep(
	ctx context.Context,
	run *domain.BuildRun,
	step domain.StepType,
	fn func(ctx context.Context) error,
) error {
	run.MarkStepStarted(step)
	o.saveRun(ctx, run)
	if err := fn(ctx); err != nil {
		run.MarkStepFailed(step, err)
		o.saveRun(ctx, run)
		return fmt.Errorf("step %s failed: %w", step, err)
	}
	run.MarkStepCompleted(step)
	o.saveRun(ctx, run)
	return nil
}

// saveRun persists the run record. The record is an audit artifact, so a
// failed save is logged and the cycle continues.
func (o *TagBuildOrchestrator) saveRun(ctx context.Context, run *domain.BuildRun) {
	if err := o.stateRepo.Save(ctx, run); err != nil {
		o.log.Warn("failed to save run state", zap.Error(err))
	}
}

func (o *TagBuildOrchestrator) updateWorkspace(ctx context.Context) error {
	uc := &usecase.UpdateWorkspaceUseCase{Git: o.gitRepo}
	return uc.Execute(ctx)
}

func (o *TagBuildOrchestrator) prepareWorkspace(ctx context.Context) (bool, error) {
	uc := &usecase.PrepareWorkspaceUseCase{Git: o.gitRepo}
	return uc.Execute(ctx)
}

func (o *TagBuildOrchestrator) commitAndTag(ctx context.Context, tagName string) error {
	uc := &usecase.CommitAndTagUseCase{Git: o.gitRepo}
	return uc.Execute(ctx, tagName)
}

func (o *TagBuildOrchestrator) restoreWorkspace(ctx context.Context, stashed bool) error {
	uc := &usecase.RestoreWorkspaceUseCase{Git: o.gitRepo}
	return uc.Execute(ctx, stashed)
}

// generateChangelog renders the changelog and writes it out when configured.
func (o *TagBuildOrchestrator) generateChangelog(ctx context.Context, cfg TagBuildConfig) (string, error) {
	uc := &usecase.GenerateChangelogUseCase{Git: o.gitRepo}
	changelog, err := uc.Execute(ctx, cfg.Pattern)
	if err != nil {
		return "", err
	}
	if cfg.ChangelogFile != "" {
		if err := afero.WriteFile(o.fsRepo, cfg.ChangelogFile, []byte(changelog), FilePermissionsReadWrite); err != nil {
			return "", fmt.Errorf("failed to write changelog: %w", err)
		}
	}
	return changelog, nil
}

// publishRelease posts the changelog as a release for the pushed tag.
// Network flakiness is retried; the tag already exists, so replays are safe
// on the git side.
func (o *TagBuildOrchestrator) publishRelease(ctx context.Context, tagName, changelog string) error {
	return retry.Do(
		ctx,
		retry.WithMaxRetries(DefaultRetryCount, retry.NewExponential(DefaultRetryDelay)),
		func(ctx context.Context) error {
			url, err := o.releaseRepo.PublishRelease(ctx, tagName, tagName, changelog)
			if err != nil {
				return retry.RetryableError(err)
			}
			o.log.Info("published release", zap.String("url", url))
			return nil
		},
	)
}
