package commands

import (
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/lift/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the installer over HTTP and gRPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			socket, _ := cmd.Flags().GetString("socket")
			idle, _ := cmd.Flags().GetDuration("idle")
			return c.app.Serve(cmd.Context(), app.ServeOptions{
				Addr:   addr,
				Socket: socket,
				Idle:   idle,
				Args:   c.restartArgs(),
			})
		},
	}
	cmd.Flags().String("addr", "127.0.0.1:0", "TCP address of the HTTP API, empty to disable")
	cmd.Flags().String("socket", "", "Unix socket of the gRPC API")
	cmd.Flags().Duration("idle", 5*time.Minute, "Stop after this long without requests, 0 to run until interrupted")
	return cmd
}
