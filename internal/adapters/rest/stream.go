package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"go.trai.ch/lift/internal/engine/tree"
	"go.trai.ch/lift/internal/installer"
)

// stream runs op detached from the request and writes its progress as one
// JSON message per line. A client that goes away does not abort op; the
// remaining messages are drained.
func (s *Server) stream(w http.ResponseWriter, r *http.Request, op func(context.Context, tree.Messenger) error) {
	ctx := context.WithoutCancel(r.Context())
	ch := installer.Stream(func(m tree.Messenger) error {
		err := op(ctx, m)
		if err != nil {
			s.logger.Error(err)
		}
		return err
	}, streamBuffer)

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)

	enc := json.NewEncoder(w)
	broken := false
	for msg := range ch {
		if broken {
			continue
		}
		if err := enc.Encode(msg); err != nil {
			s.logger.Warn("client went away: " + err.Error())
			broken = true
			continue
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}
