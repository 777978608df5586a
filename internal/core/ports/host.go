package ports

import (
	"context"

	"go.trai.ch/lift/internal/core/domain"
)

//go:generate mockgen -source=host.go -destination=mocks/mock_host.go -package=mocks

// ShortcutCreator creates launcher entries on the host.
type ShortcutCreator interface {
	// Create writes a menu shortcut and returns its absolute path.
	Create(shortcut domain.Shortcut) (string, error)

	// CreateDesktop writes a desktop shortcut and returns its absolute path.
	CreateDesktop(shortcut domain.Shortcut) (string, error)
}

// ProcessLister enumerates running processes.
type ProcessLister interface {
	List(ctx context.Context) ([]domain.Process, error)
}

// Launcher starts detached processes and schedules cleanup after exit.
type Launcher interface {
	// Spawn starts path with args without waiting for it.
	Spawn(path string, args ...string) error

	// BurnOnExit arranges for dir to be removed once this process exits.
	BurnOnExit(dir string) error
}
