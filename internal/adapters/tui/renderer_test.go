package tui_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lift/internal/adapters/tui"
)

func headless(t *testing.T) (*tui.Renderer, *tui.Model) {
	t.Helper()
	m := newModel(t)
	r := tui.NewRenderer(m,
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)
	return r, m
}

func TestRenderer_Lifecycle(t *testing.T) {
	r, _ := headless(t)

	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())
	assert.NotNil(t, r.Program())
	assert.False(t, r.Interrupted())
}

func TestRenderer_ForwardsEvents(t *testing.T) {
	r, m := headless(t)
	now := time.Now()

	require.NoError(t, r.Start(context.Background()))
	r.OnPlanEmit("InstallTask\n")
	r.OnTaskStart("1", "", "InstallTask", now)
	r.OnTaskStart("2", "1", "DownloadPackageTask", now)
	r.OnTaskComplete("2", now, errors.New("failed to download resource"))
	r.OnProgress("Downloading...", 0.4)
	r.OnPackageInstalled()
	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())

	assert.Equal(t, "InstallTask\n", m.Plan)
	require.Len(t, m.Tasks, 2)
	assert.Equal(t, tui.StatusError, m.Tasks[1].Status)
	assert.Equal(t, "Downloading...", m.Status)
	assert.InDelta(t, 0.4, m.Fraction, 1e-9)
	assert.Equal(t, 1, m.Installed)
}

func TestRenderer_CoalescesProgress(t *testing.T) {
	r, m := headless(t)

	require.NoError(t, r.Start(context.Background()))
	r.OnProgress("Downloading yuzu (1 MB of 100 MB)", 0.010)
	r.OnProgress("Downloading yuzu (1 MB of 100 MB)", 0.012)
	r.OnProgress("Downloading yuzu (1 MB of 100 MB)", 0.020)
	r.OnProgress("Extracting yuzu", 0.021)
	r.OnProgress("Extracting yuzu", 1)
	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())

	assert.Equal(t, 1, r.Coalesced())
	assert.Equal(t, "Extracting yuzu", m.Status)
	assert.InDelta(t, 1.0, m.Fraction, 1e-9)
}
