package cmd

import (
	"github.com/buildforge/releasetag/internal/orchestrator"
	"github.com/spf13/cobra"
)

// newTagBuildCmd creates the tag-build command
func newTagBuildCmd(c *container) *cobra.Command {
	var (
		tagName        string
		pattern        string
		skipUpdate     bool
		dryRun         bool
		changelogFile  string
		publishRelease bool
	)
	cmd := &cobra.Command{
		Use:   "tag-build [-- build-command ...]",
		Short: "Run the full tag-build cycle",
		Long: `Run the full tag-build cycle against the configured repository:

- Pull the working branch (unless --skip-update)
- Stash local changes and detach the head
- Run the build command, when one is given after --
- Commit, tag, and push the tags
- Generate the changelog and optionally publish a release
- Restore the branch and pop the stash

When no --tag is given the next tag of the --pattern release train is
derived by bumping the newest tag's patch version. Failures stop the cycle
where it happened; nothing is rolled back automatically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pattern == "" {
				pattern = c.cfg.TagPattern
			}
			cfg := orchestrator.TagBuildConfig{
				TagName:        tagName,
				Pattern:        pattern,
				SkipUpdate:     skipUpdate,
				DryRun:         dryRun,
				BuildCommand:   args,
				ChangelogFile:  changelogFile,
				PublishRelease: publishRelease,
			}
			return c.tagBuildOrchestrator().Execute(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&tagName, "tag", "", "Explicit tag name (derived from --pattern if not specified)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Release-train pattern used to select and derive tags")
	cmd.Flags().BoolVar(&skipUpdate, "skip-update", false, "Skip pulling the branch before the cycle")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Prepare and restore only, commit nothing")
	cmd.Flags().StringVar(&changelogFile, "changelog-file", "", "Write the generated changelog to this file")
	cmd.Flags().BoolVar(&publishRelease, "publish-release", false, "Publish a GitHub release carrying the changelog")
	return cmd
}
