package installer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	swapAttempts = 5
	swapDelay    = 3 * time.Second
)

// Swapper replaces the maintenance tool with a freshly downloaded one.
type Swapper struct {
	logger ports.Logger
	launch ports.Launcher
	// Sleep waits between attempts. The previous process may still hold the
	// target open.
	Sleep func(time.Duration)
	// Rename moves the new binary over the old one.
	Rename func(from, to string) error
}

// NewSwapper returns a Swapper using the real clock and file system.
func NewSwapper(logger ports.Logger, launch ports.Launcher) *Swapper {
	return &Swapper{
		logger: logger,
		launch: launch,
		Sleep:  time.Sleep,
		Rename: os.Rename,
	}
}

// Swap moves current over target and starts target.
func (s *Swapper) Swap(current, target string) error {
	s.Sleep(swapDelay)
	s.logger.Info(fmt.Sprintf("Swapping installer from %s to %s", current, target))

	var err error
	for i := 1; i <= swapAttempts; i++ {
		if err = s.Rename(current, target); err == nil {
			break
		}
		if i < swapAttempts {
			s.logger.Info(fmt.Sprintf("Copy attempt failed: %v, retrying in 3 seconds.", err))
			s.Sleep(swapDelay)
		}
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSwapFailed.Error()), "target", target)
	}

	if err := s.launch.Spawn(target); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLaunchFailed.Error()), "path", target)
	}
	return nil
}

// RestoreArgs returns the arguments saved in dir by an instance that
// restarted for a self-update, and deletes them. ok is false when none were
// saved.
func RestoreArgs(dir string) (args []string, ok bool, err error) {
	path := filepath.Join(dir, domain.ArgsFileName)
	data, err := os.ReadFile(path) //nolint:gosec // fixed file name inside the install directory
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, "unable to open args file"), "path", path)
	}
	if err := json.Unmarshal(data, &args); err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, "unable to read args file"), "path", path)
	}
	if err := os.Remove(path); err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, "unable to clean up args file"), "path", path)
	}
	return args, true, nil
}

// Cleanup deletes a leftover maintenancetool_new from dir. Failures are
// logged.
func (s *Swapper) Cleanup(dir string) {
	path := filepath.Join(dir, domain.NewToolFileName())
	if _, err := os.Stat(path); err != nil {
		return
	}

	for i := 1; i <= swapAttempts; i++ {
		err := os.Remove(path)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return
		}
		if i == swapAttempts {
			s.logger.Warn(fmt.Sprintf("Deleting temp binary failed after %d attempts: %v", swapAttempts, err))
			return
		}
		s.logger.Info(fmt.Sprintf("Cleanup attempt failed: %v, retrying in 3 seconds.", err))
		s.Sleep(swapDelay)
	}
}
