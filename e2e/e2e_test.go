//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var liftBinary string

// Build identity stamped into the binary under test.
const (
	e2eVersion = "0.0.0-e2e"
	e2eCommit  = "testscript"
)

// defaultBootstrap points the installer at an unreachable config, so no
// script can touch the network by accident.
const defaultBootstrap = `name = "demo"
target_url = "https://example.invalid/config.toml"
`

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "lift-e2e-*")
	if err != nil {
		panic(err)
	}

	liftBinary = filepath.Join(tmpDir, "lift")

	//nolint:gosec // Building binary with static arguments, not user input
	ldflags := "-X go.trai.ch/lift/internal/build.Version=" + e2eVersion +
		" -X go.trai.ch/lift/internal/build.Commit=" + e2eCommit
	cmd := exec.Command("go", "build", "-ldflags", ldflags, "-o", liftBinary, "./cmd/lift")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build lift binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	binDir := filepath.Dir(liftBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("LOCALAPPDATA", filepath.Join(env.WorkDir, ".local"))

	bootstrap := filepath.Join(env.WorkDir, ".config", "bootstrap.toml")
	if err := os.MkdirAll(filepath.Dir(bootstrap), 0o750); err != nil {
		return err
	}
	if err := os.WriteFile(bootstrap, []byte(defaultBootstrap), 0o600); err != nil {
		return err
	}
	env.Setenv("LIFT_BOOTSTRAP", bootstrap)
	env.Setenv("LIFT_INSTALL_DIR", filepath.Join(env.WorkDir, "opt", "demo"))
	env.Setenv("LIFT_VERSION", e2eVersion)
	env.Setenv("LIFT_COMMIT", e2eCommit)

	return nil
}
