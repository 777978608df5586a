package domain

// ParamKind discriminates the variants of TaskParam.
type ParamKind int

const (
	// ParamNone carries no payload.
	ParamNone ParamKind = iota
	// ParamPackageFile carries resolved file metadata.
	ParamPackageFile
	// ParamAuthenticatedFile carries file metadata and an optional token.
	ParamAuthenticatedFile
	// ParamFileContents carries a downloaded payload.
	ParamFileContents
	// ParamGeneratedShortcuts carries the paths of created shortcuts.
	ParamGeneratedShortcuts
	// ParamBreak stops evaluation of sibling dependencies.
	ParamBreak
)

func (k ParamKind) String() string {
	switch k {
	case ParamNone:
		return "None"
	case ParamPackageFile:
		return "PackageFile"
	case ParamAuthenticatedFile:
		return "AuthenticatedFile"
	case ParamFileContents:
		return "FileContents"
	case ParamGeneratedShortcuts:
		return "GeneratedShortcuts"
	case ParamBreak:
		return "Break"
	default:
		return "Unknown"
	}
}

// TaskParam is a value passed from a dependency to the task that declared it.
// Only the fields of the active Kind are meaningful.
type TaskParam struct {
	Kind      ParamKind
	Version   Version
	File      File
	Token     string
	HasToken  bool
	Contents  []byte
	Shortcuts []string
}

// NoneParam returns a param without payload.
func NoneParam() TaskParam {
	return TaskParam{Kind: ParamNone}
}

// BreakParam returns the Break sentinel.
func BreakParam() TaskParam {
	return TaskParam{Kind: ParamBreak}
}

// PackageFileParam returns resolved file metadata.
func PackageFileParam(version Version, file File) TaskParam {
	return TaskParam{Kind: ParamPackageFile, Version: version, File: file}
}

// AuthenticatedFileParam returns file metadata without a token.
func AuthenticatedFileParam(version Version, file File) TaskParam {
	return TaskParam{Kind: ParamAuthenticatedFile, Version: version, File: file}
}

// AuthorizedFileParam returns file metadata with a bearer token.
func AuthorizedFileParam(version Version, file File, token string) TaskParam {
	return TaskParam{
		Kind:     ParamAuthenticatedFile,
		Version:  version,
		File:     file,
		Token:    token,
		HasToken: true,
	}
}

// FileContentsParam returns a downloaded payload.
func FileContentsParam(version Version, file File, contents []byte) TaskParam {
	return TaskParam{Kind: ParamFileContents, Version: version, File: file, Contents: contents}
}

// GeneratedShortcutsParam returns the paths of created shortcuts.
func GeneratedShortcutsParam(paths []string) TaskParam {
	return TaskParam{Kind: ParamGeneratedShortcuts, Shortcuts: paths}
}

// IsBreak reports whether p is the Break sentinel.
func (p TaskParam) IsBreak() bool {
	return p.Kind == ParamBreak
}

func (p TaskParam) String() string {
	switch p.Kind {
	case ParamPackageFile, ParamAuthenticatedFile, ParamFileContents:
		return p.Kind.String() + "(" + p.File.Name + "@" + p.Version.String() + ")"
	default:
		return p.Kind.String()
	}
}
