// Package commands implements the CLI commands for the lift installer.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/lift/internal/app"
	"go.trai.ch/lift/internal/build"
)

// skipInit marks commands that run without loading the installer state.
const skipInit = "lift/skip-init"

// CLI represents the command line interface for lift.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	launcher  string
	bootstrap string
	jsonLogs  bool
	swap      string
}

// Application represents the application logic interface.
type Application interface {
	Init(opts app.InitOptions) error
	Install(ctx context.Context, opts app.InstallOptions) error
	Uninstall(ctx context.Context, opts app.UninstallOptions) error
	SelfUpdate(ctx context.Context, outputMode string, args []string) error
	Launch(ctx context.Context, outputMode string) error
	Shutdown() error
	Swap(target string) error
	Status(ctx context.Context, opts app.StatusOptions) (*app.StatusReport, error)
	Serve(ctx context.Context, opts app.ServeOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "lift",
		Short:         "A self-updating installer and maintenance tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !c.needsInit(cmd) {
				return nil
			}
			return c.app.Init(app.InitOptions{
				Bootstrap: c.bootstrap,
				JSONLogs:  c.jsonLogs,
				Launcher:  c.launcher,
			})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch {
			case c.swap != "":
				return c.app.Swap(c.swap)
			case c.launcher != "":
				return c.app.Launch(cmd.Context(), outputMode(cmd))
			default:
				return cmd.Help()
			}
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringVar(&c.launcher, "launcher", "",
		"Update the installation, then start this executable")
	rootCmd.PersistentFlags().StringVar(&c.bootstrap, "bootstrap", "",
		"TOML file replacing the built-in application name and config URL")
	rootCmd.PersistentFlags().BoolVar(&c.jsonLogs, "json-logs", false, "Write log records as JSON")

	rootCmd.Flags().StringVar(&c.swap, "swap", "", "Replace the given executable with this one and start it")
	_ = rootCmd.Flags().MarkHidden("swap")
	addOutputFlags(rootCmd)

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newUninstallCmd())
	rootCmd.AddCommand(c.newSelfUpdateCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// restartArgs is the command line a restarted maintenance tool resumes
// with: the global flags, and a status report unless it is a launcher.
func (c *CLI) restartArgs() []string {
	var args []string
	if c.bootstrap != "" {
		args = append(args, "--bootstrap", c.bootstrap)
	}
	if c.jsonLogs {
		args = append(args, "--json-logs")
	}
	if c.launcher != "" {
		return append(args, "--launcher", c.launcher)
	}
	return append(args, "status")
}

// needsInit reports whether cmd operates on the installer state. The root
// command only does in launcher mode; the swap step must not touch it.
func (c *CLI) needsInit(cmd *cobra.Command) bool {
	if c.swap != "" || cmd.Name() == "help" {
		return false
	}
	if cmd == c.rootCmd {
		return c.launcher != ""
	}
	return cmd.Annotations[skipInit] != "true"
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, tui, or linear")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
}

func outputMode(cmd *cobra.Command) string {
	mode, _ := cmd.Flags().GetString("output-mode")
	// If --ci is set, override output-mode to "linear"
	if ci, _ := cmd.Flags().GetBool("ci"); ci {
		mode = "linear"
	}
	return mode
}
