// Package detector chooses between the interactive and the linear renderer.
package detector

import (
	"os"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode is the rendering mode for an operation.
type OutputMode int

const (
	// ModeAuto picks a mode from the environment.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive renderer.
	ModeTUI
	// ModeLinear forces plain line output.
	ModeLinear
)

func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// Environment is what detection looks at. The zero value describes a
// non-interactive session.
type Environment struct {
	IsTTY  bool
	Getenv func(string) string
}

// CurrentEnvironment inspects stdout and the process environment.
func CurrentEnvironment() Environment {
	return Environment{
		IsTTY:  term.IsTerminal(int(os.Stdout.Fd())),
		Getenv: os.Getenv,
	}
}

// Detect returns ModeLinear when output is not a terminal, when CI is set,
// or when TERM is dumb. Otherwise it returns ModeTUI.
func (e Environment) Detect() OutputMode {
	getenv := e.Getenv
	if getenv == nil {
		getenv = func(string) string { return "" }
	}

	ci := getenv("CI")
	if !e.IsTTY || ci == "true" || ci == "1" || getenv("TERM") == "dumb" {
		return ModeLinear
	}
	return ModeTUI
}

// ParseMode parses the value of the --output flag.
func ParseMode(flag string) (OutputMode, error) {
	switch flag {
	case "auto", "":
		return ModeAuto, nil
	case "tui":
		return ModeTUI, nil
	case "linear", "ci", "plain":
		return ModeLinear, nil
	default:
		return ModeAuto, zerr.With(domain.ErrInvalidOutputMode, "mode", flag)
	}
}

// ResolveMode applies a user override to the detected mode.
func ResolveMode(detected, override OutputMode) OutputMode {
	if override == ModeAuto {
		return detected
	}
	return override
}
