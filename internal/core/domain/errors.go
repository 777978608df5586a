package domain

import "go.trai.ch/zerr"

var (
	// ErrCycleDetected is returned when a task transitively depends on itself.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrOperationFailed is returned when an installer operation fails after its
	// progress stream has already reported the cause.
	ErrOperationFailed = zerr.New("installer operation failed")

	// ErrNoInstallPath is returned when a task runs before an install path is set.
	ErrNoInstallPath = zerr.New("no install path specified")

	// ErrNoConfig is returned when a task runs before the installer configuration is loaded.
	ErrNoConfig = zerr.New("installer configuration not loaded")

	// ErrNoPackagesSelected is returned when an install is requested without packages.
	ErrNoPackagesSelected = zerr.New("no packages selected")

	// ErrPackageNotFound is returned when a package is not described by the configuration.
	ErrPackageNotFound = zerr.New("package could not be found")

	// ErrPackageNotInstalled is returned when a package to uninstall is not in the manifest.
	ErrPackageNotInstalled = zerr.New("package could not be found for uninstall")

	// ErrInvalidVersion is returned when a version string is neither semver nor an integer.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrSourceNotFound is returned when a package names an unknown release source.
	ErrSourceNotFound = zerr.New("release source not found")

	// ErrInvalidSourceConfig is returned when a release source config is missing fields.
	ErrInvalidSourceConfig = zerr.New("invalid release source config")

	// ErrInvalidMatchPattern is returned when a package file pattern does not compile.
	ErrInvalidMatchPattern = zerr.New("invalid file match pattern")

	// ErrNoMatchingRelease is returned when no release contains a file matching the pattern.
	ErrNoMatchingRelease = zerr.New("no release with correct file found")

	// ErrSourceRequestFailed is returned when a release source cannot be queried.
	ErrSourceRequestFailed = zerr.New("release source request failed")

	// ErrRateLimited is returned when GitHub refuses a request with 403.
	ErrRateLimited = zerr.New("GitHub is rate limiting you. Try moving to an internet connection " +
		"that isn't shared, and/or disabling VPNs")

	// ErrNotEligible is returned when a release source refuses to list releases for the account.
	ErrNotEligible = zerr.New("you are not eligible to download this release")

	// ErrUnexpectedStatus is returned when a remote server answers with an unexpected status code.
	ErrUnexpectedStatus = zerr.New("unexpected response status")

	// ErrInvalidReleasePayload is returned when a release listing cannot be decoded.
	ErrInvalidReleasePayload = zerr.New("invalid release payload")

	// ErrInsecureURL is returned when a remote resource is not served over https.
	ErrInsecureURL = zerr.New("specified URL was not https")

	// ErrDownloadFailed is returned when a remote resource cannot be fetched.
	ErrDownloadFailed = zerr.New("failed to download resource")

	// ErrUnauthorized is returned when a file requires authorization and no token was granted.
	ErrUnauthorized = zerr.New("package requires authorization")

	// ErrAuthenticationFailed is returned when the auth endpoint rejects the credentials.
	ErrAuthenticationFailed = zerr.New("authentication failed")

	// ErrInvalidToken is returned when a JWT does not validate.
	ErrInvalidToken = zerr.New("invalid authorization token")

	// ErrInvalidPublicKey is returned when the configured public key cannot be decoded.
	ErrInvalidPublicKey = zerr.New("configured public key did not decode")

	// ErrUnsupportedArchive is returned when no archive handler exists for a file name.
	ErrUnsupportedArchive = zerr.New("no decompression handler for archive")

	// ErrArchiveReadFailed is returned when an archive cannot be decoded.
	ErrArchiveReadFailed = zerr.New("failed to read archive")

	// ErrUnsafeArchivePath is returned when an archive entry escapes the install directory.
	ErrUnsafeArchivePath = zerr.New("archive entry escapes install directory")

	// ErrExtractFailed is returned when an archive entry cannot be written to disk.
	ErrExtractFailed = zerr.New("failed to extract file")

	// ErrInstallDirCreateFailed is returned when the install directory cannot be created.
	ErrInstallDirCreateFailed = zerr.New("failed to create install directory")

	// ErrInstallDirNotEmpty is returned when a fresh install targets a non-empty directory.
	ErrInstallDirNotEmpty = zerr.New("install destination is not empty")

	// ErrRemoveFailed is returned when a previous install cannot be removed.
	ErrRemoveFailed = zerr.New("failed to remove previous install")

	// ErrManifestReadFailed is returned when metadata.json cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read installation metadata")

	// ErrManifestUnmarshalFailed is returned when metadata.json cannot be decoded.
	ErrManifestUnmarshalFailed = zerr.New("failed to unmarshal installation metadata")

	// ErrManifestMarshalFailed is returned when the manifest cannot be encoded.
	ErrManifestMarshalFailed = zerr.New("failed to marshal installation metadata")

	// ErrManifestWriteFailed is returned when metadata.json cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write installation metadata")

	// ErrConfigReadFailed is returned when the installer configuration cannot be fetched.
	ErrConfigReadFailed = zerr.New("failed to read installer configuration")

	// ErrConfigParseFailed is returned when the installer configuration cannot be decoded.
	ErrConfigParseFailed = zerr.New("failed to parse installer configuration")

	// ErrAttributesParseFailed is returned when the bootstrap attributes cannot be decoded.
	ErrAttributesParseFailed = zerr.New("failed to parse bootstrap attributes")

	// ErrToolAlreadyRunning is returned when another maintenance tool process is running.
	ErrToolAlreadyRunning = zerr.New("maintenance tool is already running")

	// ErrApplicationRunning is returned when an installed application is running.
	ErrApplicationRunning = zerr.New("the installed application is currently running")

	// ErrShortcutFailed is returned when a shortcut cannot be created.
	ErrShortcutFailed = zerr.New("failed to create shortcut")

	// ErrShortcutRemoveFailed is returned when a global shortcut cannot be deleted.
	ErrShortcutRemoveFailed = zerr.New("unable to delete global shortcut")

	// ErrExecutableCopyFailed is returned when the installer binary cannot be copied.
	ErrExecutableCopyFailed = zerr.New("unable to copy installer binary")

	// ErrNoUpdaterAvailable is returned when a self-update is requested but the config names no new tool.
	ErrNoUpdaterAvailable = zerr.New("no updater update is available")

	// ErrSwapFailed is returned when the new executable cannot replace the old one.
	ErrSwapFailed = zerr.New("copying new binary failed")

	// ErrLaunchFailed is returned when a process cannot be started.
	ErrLaunchFailed = zerr.New("unable to start application")

	// ErrServerFailed is returned when an API server cannot be started.
	ErrServerFailed = zerr.New("failed to start server")

	// ErrInvalidOutputMode is returned for an unknown --output value.
	ErrInvalidOutputMode = zerr.New("invalid output mode")

	// ErrNoServeTarget is returned when serve is started without an address or socket.
	ErrNoServeTarget = zerr.New("nothing to serve: set an address or a socket")

	// ErrNotInstalled is returned when an operation needs an existing installation.
	ErrNotInstalled = zerr.New("no existing installation found")

	// ErrNotInitialized is returned when the application is used before Init.
	ErrNotInitialized = zerr.New("application not initialized")

	// ErrBootstrapReadFailed is returned when a --bootstrap file cannot be read.
	ErrBootstrapReadFailed = zerr.New("failed to read bootstrap file")
)
