package linear_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lift/internal/adapters/linear"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newRenderer(t *testing.T) (*linear.Renderer, *bytes.Buffer, *bytes.Buffer, *clock) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	c := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := linear.NewRenderer(&stdout, &stderr)
	r.Now = c.Now
	return r, &stdout, &stderr, c
}

func TestRenderer_Progress(t *testing.T) {
	r, stdout, _, c := newRenderer(t)
	require.NoError(t, r.Start(t.Context()))

	r.OnProgress("Checking for updates...", 0)
	r.OnProgress("Checking for updates...", 0.05)
	r.OnProgress("Downloading package \"yuzu\" (1 B of 100 B)...", 0.1)
	r.OnProgress("Downloading package \"yuzu\" (2 B of 100 B)...", 0.2)
	c.now = c.now.Add(2 * time.Second)
	r.OnProgress("Downloading package \"yuzu\" (50 B of 100 B)...", 0.5)
	r.OnProgress("Installation complete", 1)

	assert.Equal(t,
		"[  0%] Checking for updates...\n"+
			"[ 10%] Downloading package \"yuzu\" (1 B of 100 B)...\n"+
			"[ 50%] Downloading package \"yuzu\" (50 B of 100 B)...\n"+
			"[100%] Installation complete\n",
		stdout.String())
}

func TestRenderer_TaskLifecycle(t *testing.T) {
	r, stdout, stderr, c := newRenderer(t)

	r.OnPlanEmit("InstallTask\n└── EnsureOnlyInstanceTask\n")
	assert.Contains(t, stderr.String(), "Dependency tree:\n  InstallTask\n  └── EnsureOnlyInstanceTask\n")

	r.OnTaskStart("a", "", "EnsureOnlyInstanceTask", c.now)
	r.OnTaskComplete("a", c.now.Add(time.Millisecond), nil)
	assert.NotContains(t, stderr.String(), "failed")

	r.OnTaskStart("b", "", "VerifyInstallDirTask", c.now)
	r.OnTaskComplete("b", c.now.Add(250*time.Millisecond), errors.New("install destination is not empty"))
	assert.Contains(t, stderr.String(), "✗ VerifyInstallDirTask failed after 250ms: install destination is not empty")

	r.OnTaskComplete("unknown", c.now, errors.New("ignored"))
	assert.NotContains(t, stderr.String(), "ignored")

	r.OnPackageInstalled()
	r.OnPackageInstalled()
	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())
	assert.Contains(t, stdout.String(), "Installed 2 package(s)")
}
