package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/buildforge/releasetag/internal/domain"
	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

const (
	// RunSchemaVersion defines the current schema version for run files
	RunSchemaVersion = "1.0.0"
	// RunFilePermissions defines the permissions for run files
	RunFilePermissions = 0600
	// RunDirPermissions defines the permissions for the run directory
	RunDirPermissions = 0700
	// RunLockTimeout defines the maximum time to wait for a lock
	RunLockTimeout = 30 * time.Second
	// RunLockRetryInterval defines the interval between lock retry attempts
	RunLockRetryInterval = 100 * time.Millisecond
)

// RunStateRepository persists the audit record of each tag-build cycle. The
// record is write-mostly: the cycle never reads it back, operators do.
type RunStateRepository interface {
	Save(ctx context.Context, run *domain.BuildRun) error
	Load(ctx context.Context, sessionID string) (*domain.BuildRun, error)
	LoadLatest(ctx context.Context) (*domain.BuildRun, error)
	Delete(ctx context.Context, sessionID string) error
	Exists(ctx context.Context, sessionID string) (bool, error)
}

// runMetadata contains metadata about the run file
type runMetadata struct {
	SchemaVersion string    `json:"schema_version"`
	Checksum      string    `json:"checksum"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// runWrapper wraps the run with metadata
type runWrapper struct {
	Metadata runMetadata      `json:"metadata"`
	Run      *domain.BuildRun `json:"run"`
}

// JSONRunStateRepository implements RunStateRepository using JSON files.
type JSONRunStateRepository struct {
	fs     afero.Fs
	runDir string
	mu     sync.RWMutex
}

// NewJSONRunStateRepository creates a new JSON-based run-state repository.
func NewJSONRunStateRepository(fs afero.Fs, runDir string) RunStateRepository {
	if runDir == "" {
		runDir = ".releasetag-state"
	}
	return &JSONRunStateRepository{fs: fs, runDir: runDir}
}

// Save persists the run to a JSON file under an exclusive file lock.
func (r *JSONRunStateRepository) Save(ctx context.Context, run *domain.BuildRun) error {
	if err := r.fs.MkdirAll(r.runDir, RunDirPermissions); err != nil {
		return fmt.Errorf("failed to ensure run directory: %w", err)
	}
	filename := r.runFilename(run.SessionID)
	lock := flock.New(r.lockFilename(run.SessionID))
	if err := r.withLock(ctx, lock, lock.TryLock); err != nil {
		return err
	}
	defer r.unlock(lock)
	runData, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run for checksum: %w", err)
	}
	wrapper := runWrapper{
		Metadata: runMetadata{
			SchemaVersion: RunSchemaVersion,
			Checksum:      checksum(runData),
			CreatedAt:     run.StartedAt,
			UpdatedAt:     time.Now(),
		},
		Run: run,
	}
	data, err := json.MarshalIndent(wrapper, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run wrapper: %w", err)
	}
	// Write atomically using a temp file
	tempFile := filename + ".tmp"
	if err := afero.WriteFile(r.fs, tempFile, data, RunFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp run file: %w", err)
	}
	if err := r.fs.Rename(tempFile, filename); err != nil {
		if removeErr := r.fs.Remove(tempFile); removeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp file: %v\n", removeErr)
		}
		return fmt.Errorf("failed to rename run file: %w", err)
	}
	return r.updateLatestLink(filename)
}

// Load retrieves a specific run by session ID with checksum validation.
func (r *JSONRunStateRepository) Load(ctx context.Context, sessionID string) (*domain.BuildRun, error) {
	filename := r.runFilename(sessionID)
	lock := flock.New(r.lockFilename(sessionID))
	if err := r.withLock(ctx, lock, lock.TryRLock); err != nil {
		return nil, err
	}
	defer r.unlock(lock)
	data, err := afero.ReadFile(r.fs, filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("run not found for session %s", sessionID)
		}
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}
	var wrapper runWrapper
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run wrapper: %w", err)
	}
	if wrapper.Metadata.SchemaVersion != RunSchemaVersion {
		return nil, fmt.Errorf("incompatible schema version: expected %s, got %s",
			RunSchemaVersion, wrapper.Metadata.SchemaVersion)
	}
	runData, err := json.Marshal(wrapper.Run)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run for checksum validation: %w", err)
	}
	if wrapper.Metadata.Checksum != checksum(runData) {
		return nil, fmt.Errorf("run checksum mismatch: data may be corrupted")
	}
	return wrapper.Run, nil
}

// LoadLatest retrieves the most recently saved run.
func (r *JSONRunStateRepository) LoadLatest(ctx context.Context) (*domain.BuildRun, error) {
	r.mu.RLock()
	data, err := afero.ReadFile(r.fs, r.latestLink())
	r.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no runs recorded yet")
		}
		return nil, fmt.Errorf("failed to read latest link: %w", err)
	}
	sessionID := r.extractSessionID(string(data))
	if sessionID == "" {
		return nil, fmt.Errorf("invalid latest link target: %s", string(data))
	}
	return r.Load(ctx, sessionID)
}

// Delete removes a recorded run.
func (r *JSONRunStateRepository) Delete(ctx context.Context, sessionID string) error {
	lock := flock.New(r.lockFilename(sessionID))
	if err := r.withLock(ctx, lock, lock.TryLock); err != nil {
		return err
	}
	defer r.unlock(lock)
	if err := r.fs.Remove(r.runFilename(sessionID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete run file: %w", err)
	}
	if err := r.fs.Remove(r.lockFilename(sessionID)); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: failed to remove lock file: %v\n", err)
	}
	return nil
}

// Exists checks whether a run has been recorded for the session.
func (r *JSONRunStateRepository) Exists(_ context.Context, sessionID string) (bool, error) {
	_, err := r.fs.Stat(r.runFilename(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check run file: %w", err)
	}
	return true, nil
}

// withLock polls the given acquire function until it succeeds or the lock
// timeout elapses.
func (r *JSONRunStateRepository) withLock(
	ctx context.Context,
	_ *flock.Flock,
	acquire func() (bool, error),
) error {
	lockCtx, cancel := context.WithTimeout(ctx, RunLockTimeout)
	defer cancel()
	ticker := time.NewTicker(RunLockRetryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-lockCtx.Done():
			return fmt.Errorf("could not acquire lock within timeout: %w", lockCtx.Err())
		case <-ticker.C:
			locked, err := acquire()
			if err != nil {
				return fmt.Errorf("failed to acquire lock: %w", err)
			}
			if locked {
				return nil
			}
		}
	}
}

func (r *JSONRunStateRepository) unlock(lock *flock.Flock) {
	if err := lock.Unlock(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to unlock file: %v\n", err)
	}
}

func checksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func (r *JSONRunStateRepository) runFilename(sessionID string) string {
	return filepath.Join(r.runDir, fmt.Sprintf("run-%s.json", sessionID))
}

func (r *JSONRunStateRepository) lockFilename(sessionID string) string {
	return filepath.Join(r.runDir, fmt.Sprintf(".run-%s.lock", sessionID))
}

func (r *JSONRunStateRepository) latestLink() string {
	return filepath.Join(r.runDir, "latest.txt")
}

// updateLatestLink points latest.txt at the most recently saved run file.
func (r *JSONRunStateRepository) updateLatestLink(target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	link := r.latestLink()
	tempLink := link + ".tmp"
	if err := afero.WriteFile(r.fs, tempLink, []byte(target), RunFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp latest link: %w", err)
	}
	if err := r.fs.Rename(tempLink, link); err != nil {
		if removeErr := r.fs.Remove(tempLink); removeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp link: %v\n", removeErr)
		}
		return fmt.Errorf("failed to update latest link: %w", err)
	}
	return nil
}

// extractSessionID extracts the session ID from a run filename.
func (r *JSONRunStateRepository) extractSessionID(filename string) string {
	base := filepath.Base(filename)
	if len(base) > 9 && base[:4] == "run-" && base[len(base)-5:] == ".json" {
		return base[4 : len(base)-5]
	}
	return ""
}
