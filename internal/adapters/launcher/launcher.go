// Package launcher starts detached processes and removes install
// directories after the installer exits.
package launcher

import (
	"os"
	"os/exec"
	"runtime"

	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/zerr"
)

// Launcher implements ports.Launcher with os/exec.
type Launcher struct {
	goos string
}

var _ ports.Launcher = (*Launcher)(nil)

// New returns a Launcher for the running platform.
func New() *Launcher {
	return &Launcher{goos: runtime.GOOS}
}

// Spawn starts path with args in its own directory and does not wait for it.
func (l *Launcher) Spawn(path string, args ...string) error {
	cmd := exec.Command(path, args...) //nolint:gosec // paths come from the manifest or the running binary
	if err := cmd.Start(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to spawn process"), "path", path)
	}
	return cmd.Process.Release()
}

// BurnOnExit removes dir. Unix allows removing the directory of a running
// binary, so it happens immediately. On Windows a detached shell waits for
// this process to exit first.
func (l *Launcher) BurnOnExit(dir string) error {
	if l.goos != "windows" {
		if err := os.RemoveAll(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove install directory"), "path", dir)
		}
		return nil
	}

	script := "ping 127.0.0.1 -n 3 > nul & rmdir /s /q \"" + dir + "\""
	return l.Spawn("cmd", "/C", script)
}
