package repository

import "github.com/spf13/afero"

// FileSystemRepository defines the interface for filesystem operations:
// changelog output files and the run-state directory.

type FileSystemRepository interface {
	afero.Fs
}
