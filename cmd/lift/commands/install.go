package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lift/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install [packages...]",
		Short: "Install or update packages",
		Long: "Install the given packages. Without arguments an existing installation is " +
			"updated in place and a new one receives the default packages.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			fresh, _ := cmd.Flags().GetBool("fresh")
			repair, _ := cmd.Flags().GetBool("repair")
			shortcuts, _ := cmd.Flags().GetBool("desktop-shortcuts")
			launch, _ := cmd.Flags().GetBool("launch")

			err := c.app.Install(cmd.Context(), app.InstallOptions{
				Packages:         args,
				Path:             path,
				Fresh:            fresh,
				Repair:           repair,
				DesktopShortcuts: shortcuts,
				LaunchOnExit:     launch,
				OutputMode:       outputMode(cmd),
			})
			if err != nil {
				return err
			}
			return c.app.Shutdown()
		},
	}
	cmd.Flags().String("path", "", "Installation directory")
	cmd.Flags().Bool("fresh", false, "Reinstall every package even if it is up to date")
	cmd.Flags().Bool("repair", false, "Reinstall damaged packages")
	cmd.Flags().Bool("desktop-shortcuts", false, "Create desktop shortcuts in addition to menu entries")
	cmd.Flags().Bool("launch", false, "Start the application after installing")
	addOutputFlags(cmd)
	return cmd
}
