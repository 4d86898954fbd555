package cmd

import (
	"fmt"

	"github.com/buildforge/releasetag/internal/usecase"
	"github.com/spf13/cobra"
)

// newNextTagCmd creates the next-tag command
func newNextTagCmd(c *container) *cobra.Command {
	var pattern string
	cmd := &cobra.Command{
		Use:   "next-tag",
		Short: "Print the next tag of a release train",
		Long: `Print the tag that the next tag-build cycle would create: the newest
tag matching the pattern with its patch version bumped.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pattern == "" {
				pattern = c.cfg.TagPattern
			}
			uc := &usecase.NextTagUseCase{Git: c.gitRepo}
			next, err := uc.Execute(cmd.Context(), pattern)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "", "Release-train pattern used to select tags")
	return cmd
}
