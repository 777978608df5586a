package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InstallVerifier = (*Verifier)(nil)

// Verifier compares installed files with the checksums in the manifest.
type Verifier struct {
	walker *Walker
	hasher *Hasher
}

// NewVerifier creates a new Verifier.
func NewVerifier(walker *Walker, hasher *Hasher) *Verifier {
	return &Verifier{walker: walker, hasher: hasher}
}

// Verify returns one issue per missing, modified or untracked file, sorted
// by path. Files recorded without a checksum are only checked for existence.
func (v *Verifier) Verify(dir string, manifest *domain.Manifest) ([]domain.FileIssue, error) {
	var issues []domain.FileIssue
	tracked := make(map[string]bool)

	for _, pkg := range manifest.Packages {
		for _, name := range pkg.Files {
			tracked[name] = true

			path := filepath.Join(dir, filepath.FromSlash(name))
			if _, err := os.Stat(path); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					issues = append(issues, domain.FileIssue{Package: pkg.Name, Path: name, Kind: domain.IssueMissing})
					continue
				}
				return nil, zerr.With(zerr.Wrap(err, "failed to stat installed file"), "path", path)
			}

			want, ok := pkg.Checksums[name]
			if !ok {
				continue
			}
			got, err := v.hasher.ComputeFileHash(path)
			if err != nil {
				return nil, err
			}
			if got != want {
				issues = append(issues, domain.FileIssue{Package: pkg.Name, Path: name, Kind: domain.IssueModified})
			}
		}
	}

	for name := range v.walker.WalkFiles(dir) {
		if !tracked[name] {
			issues = append(issues, domain.FileIssue{Path: name, Kind: domain.IssueUntracked})
		}
	}

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
	return issues, nil
}
