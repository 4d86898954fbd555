package domain

import (
	"time"
)

// RunStatus represents the overall status of a tag-build cycle.
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// StepStatus represents the status of an individual cycle step.
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusRunning   StepStatus = "running"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
)

// StepType identifies a step of the tag-build cycle.
type StepType string

const (
	StepTypeUpdate         StepType = "update"
	StepTypePrepare        StepType = "prepare"
	StepTypeBuild          StepType = "build"
	StepTypeCommitAndTag   StepType = "commit_and_tag"
	StepTypeChangelog      StepType = "changelog"
	StepTypePublishRelease StepType = "publish_release"
	StepTypeRestore        StepType = "restore"
)

// BuildRun is the audit record of one tag-build cycle. It exists so that an
// operator can reconstruct what a failed cycle had already done (in particular
// whether local changes were stashed). The cycle itself never reads it back;
// the stashed flag travels through the caller as a plain value.
type BuildRun struct {
	SessionID string       `json:"session_id"`
	StartedAt time.Time    `json:"started_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Branch    string       `json:"branch"`
	TagName   string       `json:"tag_name"`
	Pattern   string       `json:"pattern"`
	Stashed   bool         `json:"stashed"`
	Steps     []StepRecord `json:"steps"`
	Status    RunStatus    `json:"status"`
	Error     string       `json:"error,omitempty"`
}

// StepRecord represents a single step in the cycle.
type StepRecord struct {
	Type        StepType   `json:"type"`
	Status      StepStatus `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// NewBuildRun creates a new run record.
func NewBuildRun(sessionID, branch string) *BuildRun {
	now := time.Now()
	return &BuildRun{
		SessionID: sessionID,
		StartedAt: now,
		UpdatedAt: now,
		Branch:    branch,
		Steps:     []StepRecord{},
		Status:    RunStatusPending,
	}
}

// MarkStepStarted appends a running step record.
func (r *BuildRun) MarkStepStarted(step StepType) {
	r.Steps = append(r.Steps, StepRecord{
		Type:      step,
		Status:    StepStatusRunning,
		StartedAt: time.Now(),
	})
	r.UpdatedAt = time.Now()
}

// MarkStepCompleted marks the most recent record for the step as completed.
func (r *BuildRun) MarkStepCompleted(step StepType) {
	if rec := r.findStep(step); rec != nil {
		now := time.Now()
		rec.Status = StepStatusCompleted
		rec.CompletedAt = &now
	}
	r.UpdatedAt = time.Now()
}

// MarkStepFailed marks the most recent record for the step as failed and
// fails the whole run.
func (r *BuildRun) MarkStepFailed(step StepType, err error) {
	if rec := r.findStep(step); rec != nil {
		now := time.Now()
		rec.Status = StepStatusFailed
		rec.CompletedAt = &now
		if err != nil {
			rec.Error = err.Error()
		}
	}
	r.Status = RunStatusFailed
	if err != nil {
		r.Error = err.Error()
	}
	r.UpdatedAt = time.Now()
}

// LastStep returns the most recent step record.
func (r *BuildRun) LastStep() *StepRecord {
	if len(r.Steps) == 0 {
		return nil
	}
	return &r.Steps[len(r.Steps)-1]
}

// CompletedSteps returns all completed steps in execution order.
func (r *BuildRun) CompletedSteps() []StepRecord {
	var completed []StepRecord
	for i := range r.Steps {
		if r.Steps[i].Status == StepStatusCompleted {
			completed = append(completed, r.Steps[i])
		}
	}
	return completed
}

func (r *BuildRun) findStep(step StepType) *StepRecord {
	for i := len(r.Steps) - 1; i >= 0; i-- {
		if r.Steps[i].Type == step {
			return &r.Steps[i]
		}
	}
	return nil
}
