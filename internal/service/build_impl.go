package service

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// buildService implements the BuildService interface
type buildService struct{}

// NewBuildService creates a new BuildService
func NewBuildService() BuildService {
	return &buildService{}
}

// Run executes the build command with output streamed to the operator
func (s *buildService) Run(ctx context.Context, name string, args ...string) error {
	fmt.Printf(">> %s %s\n", name, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("build command %s failed: %w", name, err)
	}
	return nil
}
