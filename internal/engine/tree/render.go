package tree

import "strings"

// String renders the tree for diagnostics:
//
//	InstallTask
//	├── Pre EnsureOnlyInstanceTask
//	└── Pre InstallPackageTask (for "a")
//	    └── Post SaveDatabaseTask
func (t *DependencyTree) String() string {
	var b strings.Builder
	b.WriteString(t.task.Name())

	for i, c := range t.children {
		sub := c.ordering.String() + " " + strings.TrimSpace(c.tree.String())
		b.WriteString("\n")
		if i == len(t.children)-1 {
			b.WriteString("└── ")
			b.WriteString(strings.ReplaceAll(sub, "\n", "\n    "))
		} else {
			b.WriteString("├── ")
			b.WriteString(strings.ReplaceAll(sub, "\n", "\n│   "))
		}
	}

	return b.String()
}
