package orchestrator

import "time"

// Retry tuning for release publication. Only the GitHub call is retried;
// git lifecycle commands run exactly once, so a failure never replays a
// mutation against the work tree.
const (
	// DefaultRetryCount is the number of retries for release publication
	DefaultRetryCount = uint64(3)
	// DefaultRetryDelay is the initial delay for exponential backoff
	DefaultRetryDelay = 1 * time.Second
)

// File permission constants
const (
	// FilePermissionsReadWrite is the standard permission for created files
	FilePermissionsReadWrite = 0644
)
