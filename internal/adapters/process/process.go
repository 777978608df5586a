// Package process lists running processes for the single instance check.
package process

import (
	"context"

	"github.com/shirou/gopsutil/v4/process"
	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/zerr"
)

// Lister implements ports.ProcessLister on top of gopsutil.
type Lister struct {
	// processes enumerates the process table.
	processes func(ctx context.Context) ([]*process.Process, error)
}

var _ ports.ProcessLister = (*Lister)(nil)

// NewLister returns a Lister reading the host process table.
func NewLister() *Lister {
	return &Lister{processes: process.ProcessesWithContext}
}

// List returns every visible process. Processes that exit or deny access
// while being inspected keep whatever fields could be read.
func (l *Lister) List(ctx context.Context) ([]domain.Process, error) {
	procs, err := l.processes(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list processes")
	}

	out := make([]domain.Process, 0, len(procs))
	for _, p := range procs {
		name, _ := p.NameWithContext(ctx)
		exe, _ := p.ExeWithContext(ctx)
		if name == "" && exe == "" {
			continue
		}
		out = append(out, domain.Process{PID: int(p.Pid), Name: name, Exe: exe})
	}
	return out, nil
}
