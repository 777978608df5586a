package commands

import "github.com/spf13/cobra"

func (c *CLI) newSelfUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "self-update",
		Short: "Update the maintenance tool and restart it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.SelfUpdate(cmd.Context(), outputMode(cmd), c.restartArgs()); err != nil {
				return err
			}
			return c.app.Shutdown()
		},
	}
	addOutputFlags(cmd)
	return cmd
}
