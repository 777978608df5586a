package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/lift/internal/app"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the installed packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			socket, _ := cmd.Flags().GetString("socket")
			path, _ := cmd.Flags().GetString("path")
			verify, _ := cmd.Flags().GetBool("verify")
			asJSON, _ := cmd.Flags().GetBool("json")

			report, err := c.app.Status(cmd.Context(), app.StatusOptions{
				Socket: socket,
				Path:   path,
				Verify: verify,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			writeStatus(out, report, verify)
			return nil
		},
	}
	cmd.Flags().String("socket", "", "Query a running server on this Unix socket")
	cmd.Flags().String("path", "", "Installation directory")
	cmd.Flags().Bool("verify", false, "Check installed files against their recorded checksums")
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	return cmd
}

func writeStatus(w io.Writer, report *app.StatusReport, verified bool) {
	if !report.PreexistingInstall {
		_, _ = fmt.Fprintln(w, "Not installed")
		if report.InstallPath != "" {
			_, _ = fmt.Fprintf(w, "Install path: %s\n", report.InstallPath)
		}
		return
	}

	_, _ = fmt.Fprintf(w, "Install path: %s\n", report.InstallPath)
	if report.IsLauncher {
		_, _ = fmt.Fprintf(w, "Launcher: %s\n", report.LauncherPath)
	}
	_, _ = fmt.Fprintln(w, "Packages:")
	for _, pkg := range report.Database.Packages {
		_, _ = fmt.Fprintf(w, "  %s %s\n", pkg.Name, pkg.Version)
	}

	if !verified {
		return
	}
	if len(report.Issues) == 0 {
		_, _ = fmt.Fprintln(w, "All files verified")
		return
	}
	_, _ = fmt.Fprintf(w, "Issues (%d):\n", len(report.Issues))
	for _, issue := range report.Issues {
		if issue.Package != "" {
			_, _ = fmt.Fprintf(w, "  %s %s (%s)\n", issue.Kind, issue.Path, issue.Package)
			continue
		}
		_, _ = fmt.Fprintf(w, "  %s %s\n", issue.Kind, issue.Path)
	}
}
