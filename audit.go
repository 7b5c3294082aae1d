package goAuthz

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Audit event types emitted by request adapters.
const (
	AuditEventDenied          = "authz.denied"
	AuditEventUnauthenticated = "authz.unauthenticated"
)

// AuditEvent records one rejected authorization decision. Role and
// permission fields use the stable lowercase names.
type AuditEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType string            `json:"event_type"`
	Subject   string            `json:"subject,omitempty"`
	Role      string            `json:"role,omitempty"`
	Required  string            `json:"required,omitempty"`
	Effective string            `json:"effective,omitempty"`
	Method    string            `json:"method,omitempty"`
	Path      string            `json:"path,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// AuditSink receives audit events. Emit must not block for long; wrap slow
// sinks in an AuditDispatcher.
type AuditSink interface {
	Emit(ctx context.Context, event AuditEvent)
}

// NoOpSink discards every event.
type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, AuditEvent) {}

// ChannelSink hands events to a consumer goroutine. Emit blocks until the
// event is buffered or ctx is done.
type ChannelSink struct {
	events chan AuditEvent
}

// NewChannelSink returns a sink backed by a channel of the given capacity.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan AuditEvent, buffer),
	}
}

// Emit sends event unless ctx ends first.
func (s *ChannelSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

// Events returns the receive side of the channel.
func (s *ChannelSink) Events() <-chan AuditEvent {
	return s.events
}

// JSONWriterSink writes one JSON object per line.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterSink writes one JSON object per line to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

// Emit writes event as one line. Encoding and write errors are ignored.
func (s *JSONWriterSink) Emit(ctx context.Context, event AuditEvent) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}

// ZapSink logs events at Info level under the "audit" logger name.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink logs events at Info level. A nil logger discards them.
func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{logger: logger.Named("audit")}
}

func (s *ZapSink) Emit(_ context.Context, event AuditEvent) {
	fields := []zap.Field{
		zap.Time("timestamp", event.Timestamp),
		zap.String("subject", event.Subject),
		zap.String("role", event.Role),
		zap.String("required", event.Required),
		zap.String("effective", event.Effective),
		zap.String("method", event.Method),
		zap.String("path", event.Path),
		zap.String("reason", event.Reason),
	}
	if len(event.Metadata) > 0 {
		fields = append(fields, zap.Any("metadata", event.Metadata))
	}
	s.logger.Info(event.EventType, fields...)
}
