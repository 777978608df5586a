package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lift/internal/app"
)

func (c *CLI) newUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the installation and its shortcuts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("path")
			err := c.app.Uninstall(cmd.Context(), app.UninstallOptions{
				Path:       path,
				OutputMode: outputMode(cmd),
			})
			if err != nil {
				return err
			}
			return c.app.Shutdown()
		},
	}
	cmd.Flags().String("path", "", "Installation directory")
	addOutputFlags(cmd)
	return cmd
}
