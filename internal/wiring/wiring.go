// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/lift/internal/adapters/archive"
	_ "go.trai.ch/lift/internal/adapters/auth"
	_ "go.trai.ch/lift/internal/adapters/config"
	_ "go.trai.ch/lift/internal/adapters/fs"
	_ "go.trai.ch/lift/internal/adapters/httpfetch"
	_ "go.trai.ch/lift/internal/adapters/launcher"
	_ "go.trai.ch/lift/internal/adapters/logger"
	_ "go.trai.ch/lift/internal/adapters/process"
	_ "go.trai.ch/lift/internal/adapters/shortcut"
	_ "go.trai.ch/lift/internal/adapters/sources"
	_ "go.trai.ch/lift/internal/adapters/store"
	_ "go.trai.ch/lift/internal/adapters/telemetry"
	// Register app and installer nodes.
	_ "go.trai.ch/lift/internal/app"
	_ "go.trai.ch/lift/internal/installer/tasks"
)
