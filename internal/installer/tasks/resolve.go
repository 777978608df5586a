package tasks

import (
	"context"
	"fmt"
	"regexp"
	"runtime"
	"strings"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/engine/tree"
	"go.trai.ch/zerr"
)

// ResolvePackage finds the newest release of a package that carries a file
// for this platform.
type ResolvePackage struct {
	svc  *Services
	name string
}

// NewResolvePackage returns the resolve task for the named package.
func NewResolvePackage(svc *Services, name string) *ResolvePackage {
	return &ResolvePackage{svc: svc, name: name}
}

// Execute queries the package's release source.
func (t *ResolvePackage) Execute(
	ctx context.Context,
	inputs []domain.TaskParam,
	state *domain.Installation,
	m tree.Messenger,
) (domain.TaskParam, error) {
	mustInputs(t.Name(), inputs, 0)

	pkg, err := state.Package(t.name)
	if err != nil {
		return domain.TaskParam{}, err
	}

	m(domain.DisplayMessage(fmt.Sprintf("Polling %s for latest version of %q...", pkg.Source.Name, pkg.Name), 0))

	source, ok := t.svc.Sources.Lookup(pkg.Source.Name)
	if !ok {
		return domain.TaskParam{}, zerr.With(domain.ErrSourceNotFound, "source", pkg.Source.Name)
	}
	releases, err := source.CurrentReleases(ctx, pkg.Source.Config)
	if err != nil {
		return domain.TaskParam{}, zerr.With(err, "package", pkg.Name)
	}

	m(domain.DisplayMessage(fmt.Sprintf("Resolving dependency for %q...", pkg.Name), 0.5))

	pattern := strings.ReplaceAll(pkg.Source.Match, domain.PlatformMarker, runtime.GOOS)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return domain.TaskParam{}, zerr.With(zerr.Wrap(err, domain.ErrInvalidMatchPattern.Error()), "pattern", pattern)
	}

	var (
		best  *domain.Release
		match domain.File
	)
	for i := range releases {
		file, ok := firstMatch(re, releases[i].Files)
		if !ok {
			continue
		}
		if best == nil || releases[i].Version.Compare(best.Version) > 0 {
			best = &releases[i]
			match = file
		}
	}
	if best == nil {
		return domain.TaskParam{}, zerr.With(domain.ErrNoMatchingRelease, "package", pkg.Name)
	}

	t.svc.Logger.Info(fmt.Sprintf("Selected file: %s (%s)", match.Name, best.Version))
	return domain.PackageFileParam(best.Version, match), nil
}

func firstMatch(re *regexp.Regexp, files []domain.File) (domain.File, bool) {
	for _, f := range files {
		if re.MatchString(f.Name) {
			return f, true
		}
	}
	return domain.File{}, false
}

// Dependencies returns nothing; resolution is a leaf.
func (t *ResolvePackage) Dependencies() []tree.Dependency {
	return nil
}

// Name identifies the task.
func (t *ResolvePackage) Name() string {
	return fmt.Sprintf("ResolvePackageTask (for %q)", t.name)
}
