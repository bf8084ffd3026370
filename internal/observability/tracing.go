package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Span is a lightweight in-process trace span. There is no exporter; spans
// surface through the request logs via LogValue.
type Span struct {
	TraceID   string
	SpanID    string
	ParentID  string
	Operation string
	Started   time.Time
	Elapsed   time.Duration
	Err       error
}

type spanContextKey struct{}

// StartSpan opens a span under any span already on the context. A root span
// mints a fresh trace ID.
func StartSpan(ctx context.Context, operation string) (context.Context, *Span) {
	span := &Span{
		TraceID:   uuid.NewString(),
		SpanID:    uuid.NewString(),
		Operation: operation,
		Started:   time.Now(),
	}

	if parent := SpanFrom(ctx); parent != nil {
		span.TraceID = parent.TraceID
		span.ParentID = parent.SpanID
	}

	return context.WithValue(ctx, spanContextKey{}, span), span
}

func (s *Span) End() {
	s.Elapsed = time.Since(s.Started)
}

func (s *Span) Fail(err error) {
	s.Err = err
}

// LogValue renders the span as a structured group for slog.
func (s *Span) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("trace_id", s.TraceID),
		slog.String("span_id", s.SpanID),
		slog.String("operation", s.Operation),
		slog.Duration("elapsed", s.Elapsed),
	}
	if s.ParentID != "" {
		attrs = append(attrs, slog.String("parent_id", s.ParentID))
	}
	if s.Err != nil {
		attrs = append(attrs, slog.String("error", s.Err.Error()))
	}
	return slog.GroupValue(attrs...)
}

func SpanFrom(ctx context.Context) *Span {
	if span, ok := ctx.Value(spanContextKey{}).(*Span); ok {
		return span
	}
	return nil
}
