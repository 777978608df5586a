package logger

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// messager is implemented by zerr errors: Message omits the wrapped chain.
type messager interface {
	Message() string
}

type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks err through its zerr wrappers. The first
// non-zerr error ends the chain with its full text.
func collectErrorEntries(err error) []ErrorEntry {
	var (
		entries []ErrorEntry
		pending map[string]any
	)
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: pending})
			break
		}

		metadata := pending
		if md, ok := current.(metadataer); ok {
			metadata = merge(pending, md.Metadata())
		}
		current = errors.Unwrap(current)

		// zerr.With on a plain error wraps it without a message; its
		// metadata belongs to the wrapped error.
		if m.Message() == "" && current != nil {
			pending = metadata
			continue
		}
		entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: metadata})
		pending = nil
	}
	return entries
}

func merge(a, b map[string]any) map[string]any {
	if len(a) == 0 {
		return b
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// formatErrorEntries renders entries as
//
//	Error: outer
//	       key: value
//
//	  Caused by:
//	    → inner
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string
	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		lead, indent := "    → ", "      "
		if i == 0 {
			lead, indent = "Error: ", "       "
		} else if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}

		lines = append(lines, lead+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}

		keys := make([]string, 0, len(entry.Metadata))
		for k := range entry.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, entry.Metadata[k]))
		}
	}
	return strings.Join(lines, "\n")
}
