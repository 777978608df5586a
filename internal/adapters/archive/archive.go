// Package archive decodes downloaded package archives.
package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"strings"

	"github.com/ulikunitz/xz"
	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/zerr"
)

// Opener implements ports.ArchiveOpener for zip, tar, tar.gz and tar.xz.
type Opener struct{}

var _ ports.ArchiveOpener = (*Opener)(nil)

// NewOpener returns an Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open picks a decoder by the suffix of name.
func (o *Opener) Open(name string, data []byte) (ports.Archive, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrArchiveReadFailed.Error()), "file", name)
		}
		return &zipArchive{r: r}, nil
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return &tarArchive{name: name, open: func() (io.Reader, error) {
			return gzip.NewReader(bytes.NewReader(data))
		}}, nil
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return &tarArchive{name: name, open: func() (io.Reader, error) {
			return xz.NewReader(bytes.NewReader(data))
		}}, nil
	case strings.HasSuffix(lower, ".tar"):
		return &tarArchive{name: name, open: func() (io.Reader, error) {
			return bytes.NewReader(data), nil
		}}, nil
	default:
		return nil, zerr.With(domain.ErrUnsupportedArchive, "file", name)
	}
}

type zipArchive struct {
	r *zip.Reader
}

func (a *zipArchive) Walk(fn func(index, total int, name string, r io.Reader) error) error {
	files := make([]*zip.File, 0, len(a.r.File))
	for _, f := range a.r.File {
		if f.Mode().IsRegular() {
			files = append(files, f)
		}
	}

	for i, f := range files {
		if err := walkZipEntry(f, i, len(files), fn); err != nil {
			return err
		}
	}
	return nil
}

func walkZipEntry(f *zip.File, index, total int, fn func(int, int, string, io.Reader) error) error {
	rc, err := f.Open()
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArchiveReadFailed.Error()), "entry", f.Name)
	}
	defer rc.Close() //nolint:errcheck // read-only entry
	return fn(index, total, f.Name, rc)
}

// tarArchive is streamed, so the entry count is unknown.
type tarArchive struct {
	name string
	open func() (io.Reader, error)
}

func (a *tarArchive) Walk(fn func(index, total int, name string, r io.Reader) error) error {
	stream, err := a.open()
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArchiveReadFailed.Error()), "file", a.name)
	}
	if c, ok := stream.(io.Closer); ok {
		defer c.Close() //nolint:errcheck // read-only stream
	}

	tr := tar.NewReader(stream)
	for index := 0; ; {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrArchiveReadFailed.Error()), "file", a.name)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if err := fn(index, 0, hdr.Name, tr); err != nil {
			return err
		}
		index++
	}
}
