package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lift/internal/adapters/archive"
	"go.trai.ch/lift/internal/adapters/config"
	"go.trai.ch/lift/internal/adapters/logger"
	"go.trai.ch/lift/internal/adapters/store"
	"go.trai.ch/lift/internal/adapters/telemetry"
	"go.trai.ch/lift/internal/app"
	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports/mocks"
	"go.trai.ch/lift/internal/installer/tasks"
	"go.uber.org/mock/gomock"
)

// newProvider builds a real App around mocks. The executable lives in dir.
func newProvider(t *testing.T, dir string, mockLogger *mocks.MockLogger) ComponentProvider {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := logger.New()
	log.SetOutput(new(bytes.Buffer))

	fetcher := mocks.NewMockFetcher(ctrl)
	svc := tasks.NewServices(
		mocks.NewMockSourceRegistry(ctrl),
		fetcher,
		mocks.NewMockAuthenticator(ctrl),
		archive.NewOpener(),
		mocks.NewMockShortcutCreator(ctrl),
		mocks.NewMockProcessLister(ctrl),
		store.NewStore(),
		log,
	)
	svc.Executable = func() (string, error) { return filepath.Join(dir, domain.ToolFileName()), nil }

	application := app.New(
		config.NewLoader(fetcher, log),
		log,
		svc,
		mocks.NewMockLauncher(ctrl),
		mocks.NewMockInstallVerifier(ctrl),
		telemetry.NewOTelTracer(telemetry.TaskScope),
	)

	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: mockLogger,
		}, func() { _ = application.Close() }, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := newProvider(t, t.TempDir(), mocks.NewMockLogger(ctrl))

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and logs when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	provider := newProvider(t, t.TempDir(), mockLogger)
	missing := filepath.Join(t.TempDir(), "missing.toml")

	exitCode := run(context.Background(), []string{"--bootstrap", missing, "status"}, new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_RestoresSavedArgs verifies that a restart without arguments resumes the saved command line.
func TestRun_RestoresSavedArgs(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	argsFile := filepath.Join(dir, domain.ArgsFileName)
	require.NoError(t, os.WriteFile(argsFile, []byte(`["version"]`), 0o600))

	provider := newProvider(t, dir, mocks.NewMockLogger(ctrl))

	exitCode := run(context.Background(), nil, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
	assert.NoFileExists(t, argsFile)
}

// TestRun_BrokenSavedArgs verifies that an unreadable args file is reported and ignored.
func TestRun_BrokenSavedArgs(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ArgsFileName), []byte(`{`), 0o600))

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	provider := newProvider(t, dir, mockLogger)

	exitCode := run(context.Background(), nil, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
}
