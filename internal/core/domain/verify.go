package domain

import (
	"fmt"
	"strings"
)

// IssueKind classifies a file that does not match the manifest.
type IssueKind string

const (
	// IssueMissing marks a recorded file that no longer exists.
	IssueMissing IssueKind = "missing"
	// IssueModified marks a file whose content changed since install.
	IssueModified IssueKind = "modified"
	// IssueUntracked marks a file no package recorded.
	IssueUntracked IssueKind = "untracked"
)

// FileIssue is one finding of an installation check.
type FileIssue struct {
	Package string    `json:"package,omitempty"`
	Path    string    `json:"path"`
	Kind    IssueKind `json:"kind"`
}

// FormatChecksum renders an xxhash64 digest as stored in the manifest.
func FormatChecksum(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}

// IsToolFile reports whether a top-level entry of an install directory
// belongs to the installer rather than to a package.
func IsToolFile(name string) bool {
	switch name {
	case MetadataFileName, ArgsFileName:
		return true
	}
	return strings.HasPrefix(name, ToolName) || strings.HasSuffix(name, LogFileSuffix)
}
