package cmd

import (
	"fmt"

	"github.com/buildforge/releasetag/internal/usecase"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// newChangelogCmd creates the changelog command
func newChangelogCmd(c *container) *cobra.Command {
	var (
		pattern string
		output  string
	)
	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Print the changelog between the two newest tags of a release train",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pattern == "" {
				pattern = c.cfg.TagPattern
			}
			uc := &usecase.GenerateChangelogUseCase{Git: c.gitRepo}
			changelog, err := uc.Execute(cmd.Context(), pattern)
			if err != nil {
				return err
			}
			if output != "" {
				return afero.WriteFile(c.fsRepo, output, []byte(changelog), 0644)
			}
			fmt.Fprintln(cmd.OutOrStdout(), changelog)
			return nil
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "", "Release-train pattern used to select tags")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the changelog to this file instead of stdout")
	return cmd
}
