package telemetry

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/lift/internal/core/ports"
)

// TaskScope is the instrumentation scope of dependency tree spans.
const TaskScope = "lift"

// Names the SDK uses for events written by span.RecordError.
const (
	exceptionEvent   = "exception"
	exceptionMessage = "exception.message"
)

// Bridge implements sdktrace.SpanProcessor. It forwards the task spans of one
// instrumentation scope to a Renderer and drops everything else, so a task
// whose parent was dropped shows up as a root.
type Bridge struct {
	renderer ports.Renderer
	scope    string

	mu   sync.Mutex
	live map[trace.SpanID]struct{}
}

// NewBridge returns a Bridge for spans of scope. An empty scope forwards all spans.
func NewBridge(renderer ports.Renderer, scope string) *Bridge {
	return &Bridge{
		renderer: renderer,
		scope:    scope,
		live:     make(map[trace.SpanID]struct{}),
	}
}

// OnStart reports a started task.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil {
		return
	}
	if b.scope != "" && s.InstrumentationScope().Name != b.scope {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	b.mu.Lock()
	b.live[sc.SpanID()] = struct{}{}
	_, parentLive := b.live[s.Parent().SpanID()]
	b.mu.Unlock()

	var parentID string
	if s.Parent().IsValid() && parentLive {
		parentID = s.Parent().SpanID().String()
	}

	b.renderer.OnTaskStart(sc.SpanID().String(), parentID, s.Name(), s.StartTime())
}

// OnEnd reports a finished task with the error it failed with.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil {
		return
	}

	id := s.SpanContext().SpanID()
	b.mu.Lock()
	_, ok := b.live[id]
	delete(b.live, id)
	b.mu.Unlock()
	if !ok {
		return
	}

	b.renderer.OnTaskComplete(id.String(), s.EndTime(), spanError(s))
}

// spanError rebuilds the task error from the span status, falling back to
// the last recorded exception.
func spanError(s sdktrace.ReadOnlySpan) error {
	if s.Status().Code != codes.Error {
		return nil
	}
	if desc := s.Status().Description; desc != "" {
		return errors.New(desc)
	}

	events := s.Events()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Name != exceptionEvent {
			continue
		}
		for _, attr := range events[i].Attributes {
			if string(attr.Key) == exceptionMessage {
				return errors.New(attr.Value.AsString())
			}
		}
	}
	return errors.New(s.Name() + " failed")
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown forgets spans that never ended.
func (b *Bridge) Shutdown(_ context.Context) error {
	b.mu.Lock()
	clear(b.live)
	b.mu.Unlock()
	return nil
}
