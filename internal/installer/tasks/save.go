package tasks

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/engine/tree"
	"go.trai.ch/zerr"
)

// SaveDatabase persists the manifest into the install directory.
type SaveDatabase struct {
	svc *Services
}

// NewSaveDatabase returns the manifest save task.
func NewSaveDatabase(svc *Services) *SaveDatabase {
	return &SaveDatabase{svc: svc}
}

// Execute writes metadata.json.
func (t *SaveDatabase) Execute(
	_ context.Context,
	inputs []domain.TaskParam,
	state *domain.Installation,
	m tree.Messenger,
) (domain.TaskParam, error) {
	mustInputs(t.Name(), inputs, 0)

	m(domain.DisplayMessage("Saving application database...", 0))

	dir, err := state.Path()
	if err != nil {
		return domain.TaskParam{}, err
	}
	if err := t.svc.Store.Save(dir, &state.Manifest); err != nil {
		return domain.TaskParam{}, err
	}
	return domain.NoneParam(), nil
}

// Dependencies returns nothing.
func (t *SaveDatabase) Dependencies() []tree.Dependency {
	return nil
}

// Name identifies the task.
func (t *SaveDatabase) Name() string {
	return "SaveDatabaseTask"
}

// SaveExecutable copies the running binary into the install directory as the
// maintenance tool.
type SaveExecutable struct {
	svc *Services
}

// NewSaveExecutable returns the executable copy task.
func NewSaveExecutable(svc *Services) *SaveExecutable {
	return &SaveExecutable{svc: svc}
}

// Execute copies the binary. An existing maintenance tool is not replaced.
func (t *SaveExecutable) Execute(
	_ context.Context,
	inputs []domain.TaskParam,
	state *domain.Installation,
	m tree.Messenger,
) (domain.TaskParam, error) {
	mustInputs(t.Name(), inputs, 0)

	m(domain.DisplayMessage("Copying installer binary...", 0))

	dir, err := state.Path()
	if err != nil {
		return domain.TaskParam{}, err
	}
	exe, err := t.svc.Executable()
	if err != nil {
		return domain.TaskParam{}, zerr.Wrap(err, domain.ErrExecutableCopyFailed.Error())
	}

	if err := copyExclusive(exe, filepath.Join(dir, domain.ToolFileName())); err != nil {
		return domain.TaskParam{}, zerr.With(zerr.Wrap(err, domain.ErrExecutableCopyFailed.Error()), "source", exe)
	}
	return domain.NoneParam(), nil
}

// copyExclusive copies src to a new executable file at dst.
func copyExclusive(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // path of the running binary
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, domain.ExecutablePerm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Dependencies returns nothing.
func (t *SaveExecutable) Dependencies() []tree.Dependency {
	return nil
}

// Name identifies the task.
func (t *SaveExecutable) Name() string {
	return "SaveExecutableTask"
}
