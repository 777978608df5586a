// Package tasks holds the installer's units of work. Every task reads and
// mutates the shared domain.Installation and reaches the outside world only
// through the ports bundled in Services.
package tasks

import (
	"os"

	"go.trai.ch/lift/internal/core/ports"
)

// Services bundles the collaborators tasks depend on.
type Services struct {
	Sources   ports.SourceRegistry
	Fetcher   ports.Fetcher
	Auth      ports.Authenticator
	Archives  ports.ArchiveOpener
	Shortcuts ports.ShortcutCreator
	Processes ports.ProcessLister
	Store     ports.ManifestStore
	Logger    ports.Logger

	// Executable returns the path of the running binary.
	Executable func() (string, error)
	// PID is the id of the running process.
	PID int
}

// NewServices returns a Services bundle bound to the running process.
func NewServices(
	sources ports.SourceRegistry,
	fetcher ports.Fetcher,
	auth ports.Authenticator,
	archives ports.ArchiveOpener,
	shortcuts ports.ShortcutCreator,
	processes ports.ProcessLister,
	store ports.ManifestStore,
	logger ports.Logger,
) *Services {
	return &Services{
		Sources:    sources,
		Fetcher:    fetcher,
		Auth:       auth,
		Archives:   archives,
		Shortcuts:  shortcuts,
		Processes:  processes,
		Store:      store,
		Logger:     logger,
		Executable: os.Executable,
		PID:        os.Getpid(),
	}
}
