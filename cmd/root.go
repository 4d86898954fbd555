package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "releasetag",
	Short: "A CLI tool for build tagging and changelog automation",
	Long: `releasetag drives the tag-build cycle of a git repository: it updates
the working branch, stashes local changes, detaches the head for the build,
commits and tags the result, pushes the tags, and restores the workspace.`,
}

func Execute() error {
	return rootCmd.Execute()
}
