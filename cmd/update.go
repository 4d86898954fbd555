package cmd

import (
	"github.com/buildforge/releasetag/internal/usecase"
	"github.com/spf13/cobra"
)

// newUpdateCmd creates the update command
func newUpdateCmd(c *container) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Check out the working branch and pull from the remote",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := &usecase.UpdateWorkspaceUseCase{Git: c.gitRepo}
			return uc.Execute(cmd.Context())
		},
	}
}
