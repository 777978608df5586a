package shortcut_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lift/internal/adapters/shortcut"
	"go.trai.ch/lift/internal/core/domain"
)

func sample() domain.Shortcut {
	return domain.Shortcut{
		Name:        "yuzu Early Access",
		Description: "Launch yuzu",
		Target:      "/home/alice/yuzu dir/maintenancetool",
		Args:        `--launcher "/home/alice/yuzu dir/yuzu"`,
		WorkingDir:  "/home/alice/yuzu dir",
		ExePath:     "/home/alice/yuzu dir/yuzu",
	}
}

func TestEntry(t *testing.T) {
	g := goldie.New(t)
	g.Assert(t, "entry", []byte(shortcut.Entry(sample())))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "yuzu-Early-Access.desktop", shortcut.FileName("yuzu Early Access"))
	assert.Equal(t, "a-b.desktop", shortcut.FileName("a/b"))
}

func TestCreator_Create(t *testing.T) {
	root := t.TempDir()
	c := &shortcut.Creator{
		AppsDir:    filepath.Join(root, "applications"),
		DesktopDir: filepath.Join(root, "Desktop"),
	}

	menu, err := c.Create(sample())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "applications", "yuzu-Early-Access.desktop"), menu)

	desktop, err := c.CreateDesktop(sample())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Desktop", "yuzu-Early-Access.desktop"), desktop)

	data, err := os.ReadFile(menu)
	require.NoError(t, err)
	assert.Equal(t, shortcut.Entry(sample()), string(data))
}

func TestNewCreator_UsesXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_DESKTOP_DIR", "/desk")

	c, err := shortcut.NewCreator()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", "applications"), c.AppsDir)
	assert.Equal(t, "/desk", c.DesktopDir)
}
