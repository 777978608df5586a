package ports

import "io"

//go:generate mockgen -source=archive.go -destination=mocks/mock_archive.go -package=mocks

// ArchiveOpener decodes an in-memory archive, choosing the format by file name.
type ArchiveOpener interface {
	Open(name string, data []byte) (Archive, error)
}

// Archive is a decoded archive.
type Archive interface {
	// Walk calls fn for every regular file in archive order. total is the
	// number of entries, or 0 when the format cannot know it upfront.
	Walk(fn func(index, total int, name string, r io.Reader) error) error
}
