package installer

import (
	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/engine/tree"
	"go.trai.ch/zerr"
)

// ChannelMessenger returns a messenger forwarding task messages to ch as
// progress stream entries. Sends block while ch is full.
func ChannelMessenger(ch chan<- domain.InstallMessage) tree.Messenger {
	return func(msg domain.TaskMessage) {
		switch msg.Kind {
		case domain.TaskPackageInstalled:
			ch <- domain.PackageInstalledEntry()
		default:
			ch <- domain.StatusMessage(msg.Text, msg.Progress)
		}
	}
}

// Stream runs op and returns its progress stream. The stream ends with an
// Error entry when op fails or panics and always ends with EOF.
func Stream(op func(tree.Messenger) error, buffer int) <-chan domain.InstallMessage {
	ch := make(chan domain.InstallMessage, buffer)
	go func() {
		defer close(ch)
		defer zerr.Defer(func(err error) {
			ch <- domain.ErrorMessage(err.Error())
			ch <- domain.EOFMessage()
		})
		if err := op(ChannelMessenger(ch)); err != nil {
			ch <- domain.ErrorMessage(err.Error())
		}
		ch <- domain.EOFMessage()
	}()
	return ch
}
