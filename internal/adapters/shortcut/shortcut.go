// Package shortcut writes freedesktop.org desktop entries for installed
// applications.
package shortcut

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/zerr"
)

const entryPerm = 0o755

// Creator implements ports.ShortcutCreator. Shortcuts go to AppsDir (the
// application menu) or DesktopDir.
type Creator struct {
	AppsDir    string
	DesktopDir string
}

var _ ports.ShortcutCreator = (*Creator)(nil)

// NewCreator resolves the XDG menu and desktop directories of the current
// user.
func NewCreator() (*Creator, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve home directory")
	}

	data := os.Getenv("XDG_DATA_HOME")
	if data == "" {
		data = filepath.Join(home, ".local", "share")
	}
	desktop := os.Getenv("XDG_DESKTOP_DIR")
	if desktop == "" {
		desktop = filepath.Join(home, "Desktop")
	}

	return &Creator{
		AppsDir:    filepath.Join(data, "applications"),
		DesktopDir: desktop,
	}, nil
}

// Create writes a menu entry.
func (c *Creator) Create(s domain.Shortcut) (string, error) {
	return write(c.AppsDir, s)
}

// CreateDesktop writes a desktop entry.
func (c *Creator) CreateDesktop(s domain.Shortcut) (string, error) {
	return write(c.DesktopDir, s)
}

func write(dir string, s domain.Shortcut) (string, error) {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrShortcutFailed.Error()), "path", dir)
	}

	path := filepath.Join(dir, FileName(s.Name))
	//nolint:gosec // desktop entries must be executable to be trusted by file managers
	if err := os.WriteFile(path, []byte(Entry(s)), entryPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrShortcutFailed.Error()), "path", path)
	}
	return path, nil
}

// FileName returns the desktop file name for a shortcut name.
func FileName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '-'
		}
		return r
	}, name)
	return clean + ".desktop"
}

// Entry renders the desktop entry of s.
func Entry(s domain.Shortcut) string {
	exec := quote(s.Target)
	if s.Args != "" {
		exec += " " + s.Args
	}

	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", s.Name)
	if s.Description != "" {
		fmt.Fprintf(&b, "Comment=%s\n", s.Description)
	}
	fmt.Fprintf(&b, "Exec=%s\n", exec)
	if s.WorkingDir != "" {
		fmt.Fprintf(&b, "Path=%s\n", s.WorkingDir)
	}
	fmt.Fprintf(&b, "TryExec=%s\n", s.Target)
	b.WriteString("Terminal=false\n")
	return b.String()
}

func quote(s string) string {
	if !strings.ContainsAny(s, " \t\"'\\$`") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return `"` + r.Replace(s) + `"`
}
