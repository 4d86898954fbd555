package cmd

import (
	"fmt"

	"github.com/buildforge/releasetag/internal/usecase"
	"github.com/spf13/cobra"
)

// newBuildBaseCmd creates the build-base command
func newBuildBaseCmd(c *container) *cobra.Command {
	var pattern string
	cmd := &cobra.Command{
		Use:   "build-base",
		Short: "Print the branch tip and the newest tag's parent commit",
		Long: `Print the two commits that frame the next build of a release train:
the current tip of the working branch and the commit just before the newest
tag matching the pattern.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pattern == "" {
				pattern = c.cfg.TagPattern
			}
			uc := &usecase.ResolveBuildBaseUseCase{Git: c.gitRepo}
			base, err := uc.Execute(cmd.Context(), pattern)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Branch tip:\t%s\n", base.BranchTip)
			fmt.Fprintf(out, "Tag parent:\t%s\n", base.LatestTagParent)
			return nil
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "", "Release-train pattern used to select tags")
	return cmd
}
