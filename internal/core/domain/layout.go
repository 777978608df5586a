package domain

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	// MetadataFileName is the name of the installation manifest inside the install directory.
	MetadataFileName = "metadata.json"

	// ToolName is the base name of the maintenance tool saved into the install directory.
	ToolName = "maintenancetool"

	// NewToolName is the base name of a downloaded maintenance tool awaiting a swap.
	NewToolName = "maintenancetool_new"

	// ArgsFileName holds the command line of an instance that restarted for a self-update.
	ArgsFileName = "args.json"

	// LogFileSuffix is appended to the application name to form the log file name.
	LogFileSuffix = "_installer.log"

	// PlatformMarker is replaced by the current OS in package file patterns.
	PlatformMarker = "#PLATFORM#"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecutablePerm is the permission for extracted files and saved executables (rwxrwx---).
	ExecutablePerm = 0o770

	// SocketPerm is the permission for the RPC socket (rw-------).
	SocketPerm = 0o600
)

// ToolFileName returns the platform file name of the maintenance tool.
func ToolFileName() string {
	return executableName(ToolName)
}

// NewToolFileName returns the platform file name of a pending maintenance tool.
func NewToolFileName() string {
	return executableName(NewToolName)
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

// MetadataPath returns the path of the manifest file inside dir.
func MetadataPath(dir string) string {
	return filepath.Join(dir, MetadataFileName)
}

// LogFileName returns the log file name for an application.
func LogFileName(appName string) string {
	return appName + LogFileSuffix
}

// DefaultInstallPath returns the default install location for an application.
// It prefers LOCALAPPDATA and falls back to the home directory, using a dot
// directory on unix.
func DefaultInstallPath(appName string) (string, error) {
	base := os.Getenv("LOCALAPPDATA")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = home
	}

	name := appName
	if runtime.GOOS != "windows" {
		name = "." + strings.ToLower(appName)
	}
	return filepath.Join(base, name), nil
}

// DefaultSocketPath returns the default path of the RPC socket for an application.
func DefaultSocketPath(appName string) string {
	return filepath.Join(os.TempDir(), strings.ToLower(appName)+".sock")
}
