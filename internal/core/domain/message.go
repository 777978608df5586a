package domain

import (
	"encoding/json"

	"go.trai.ch/zerr"
)

// TaskMessageKind discriminates the messages a task reports while executing.
type TaskMessageKind int

const (
	// TaskDisplayMessage is a status line with a local progress fraction.
	TaskDisplayMessage TaskMessageKind = iota
	// TaskPackageInstalled is emitted once per installed package.
	TaskPackageInstalled
)

// TaskMessage is a progress report emitted by a task.
type TaskMessage struct {
	Kind     TaskMessageKind
	Text     string
	Progress float64
}

// DisplayMessage returns a status message with a progress fraction in [0, 1].
func DisplayMessage(text string, progress float64) TaskMessage {
	return TaskMessage{Kind: TaskDisplayMessage, Text: text, Progress: progress}
}

// PackageInstalledMessage returns the package installed notification.
func PackageInstalledMessage() TaskMessage {
	return TaskMessage{Kind: TaskPackageInstalled}
}

// InstallMessageKind discriminates the messages of the progress stream.
type InstallMessageKind int

const (
	// InstallStatus is a status line with the overall progress.
	InstallStatus InstallMessageKind = iota
	// InstallPackageInstalled reports one installed package.
	InstallPackageInstalled
	// InstallError is the terminal failure of an operation.
	InstallError
	// InstallEOF closes the stream.
	InstallEOF
)

// InstallMessage is an entry of the progress stream consumed by frontends.
type InstallMessage struct {
	Kind     InstallMessageKind
	Text     string
	Progress float64
}

// StatusMessage returns a status entry.
func StatusMessage(text string, progress float64) InstallMessage {
	return InstallMessage{Kind: InstallStatus, Text: text, Progress: progress}
}

// PackageInstalledEntry returns a package installed entry.
func PackageInstalledEntry() InstallMessage {
	return InstallMessage{Kind: InstallPackageInstalled}
}

// ErrorMessage returns an error entry.
func ErrorMessage(text string) InstallMessage {
	return InstallMessage{Kind: InstallError, Text: text}
}

// EOFMessage returns the stream terminator.
func EOFMessage() InstallMessage {
	return InstallMessage{Kind: InstallEOF}
}

// MarshalJSON encodes the message in the externally tagged form
// ({"Status":["text",0.5]}, "PackageInstalled", {"Error":"text"}, "EOF").
func (m InstallMessage) MarshalJSON() ([]byte, error) {
	switch m.Kind {
	case InstallStatus:
		return json.Marshal(map[string][]any{"Status": {m.Text, m.Progress}})
	case InstallPackageInstalled:
		return json.Marshal("PackageInstalled")
	case InstallError:
		return json.Marshal(map[string]string{"Error": m.Text})
	case InstallEOF:
		return json.Marshal("EOF")
	default:
		return nil, zerr.With(zerr.New("unknown install message kind"), "kind", int(m.Kind))
	}
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (m *InstallMessage) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		switch tag {
		case "PackageInstalled":
			*m = PackageInstalledEntry()
			return nil
		case "EOF":
			*m = EOFMessage()
			return nil
		}
		return zerr.With(zerr.New("unknown install message"), "tag", tag)
	}

	var tagged struct {
		Status []json.RawMessage `json:"Status"`
		Error  *string           `json:"Error"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}

	switch {
	case tagged.Error != nil:
		*m = ErrorMessage(*tagged.Error)
	case len(tagged.Status) == 2:
		var text string
		var progress float64
		if err := json.Unmarshal(tagged.Status[0], &text); err != nil {
			return err
		}
		if err := json.Unmarshal(tagged.Status[1], &progress); err != nil {
			return err
		}
		*m = StatusMessage(text, progress)
	default:
		return zerr.With(zerr.New("unknown install message"), "json", string(data))
	}
	return nil
}
