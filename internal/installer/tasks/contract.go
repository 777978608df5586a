package tasks

import (
	"fmt"
	"strings"

	"go.trai.ch/lift/internal/core/domain"
)

// mustInputs panics unless the task received exactly n inputs. A mismatch means
// the task's dependency list and its Execute disagree.
func mustInputs(task string, inputs []domain.TaskParam, n int) {
	if len(inputs) != n {
		panic(fmt.Sprintf("%s: expected %d inputs, got %d", task, n, len(inputs)))
	}
}

// mustKind returns inputs[i], panicking unless it has one of the given kinds.
func mustKind(task string, inputs []domain.TaskParam, i int, kinds ...domain.ParamKind) domain.TaskParam {
	if i >= len(inputs) {
		panic(fmt.Sprintf("%s: missing input %d", task, i))
	}
	for _, kind := range kinds {
		if inputs[i].Kind == kind {
			return inputs[i]
		}
	}

	expected := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		expected = append(expected, kind.String())
	}
	panic(fmt.Sprintf("%s: input %d is %s, expected %s", task, i, inputs[i].Kind, strings.Join(expected, " or ")))
}
