package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newLastRunCmd creates the last-run command
func newLastRunCmd(c *container) *cobra.Command {
	return &cobra.Command{
		Use:   "last-run",
		Short: "Print the record of the most recent tag-build cycle",
		Long: `Print the audit record of the most recent tag-build cycle as JSON.
After a failed cycle this shows which step stopped the run and whether
local changes are still sitting in the stash.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			run, err := c.stateRepo.LoadLatest(cmd.Context())
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(run, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to render run record: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
