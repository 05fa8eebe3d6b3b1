// Package audit records who changed what. Events go to Kafka when brokers
// are configured and to the structured log otherwise.
package audit

import (
	"context"
	"log/slog"

	"backoffice/pkg/requestcontext"
)

// Sink receives enriched events.
type Sink interface {
	Write(ctx context.Context, e Event) error
}

// Publisher enriches events from the request context and hands them to a sink.
type Publisher struct {
	sink Sink
}

func NewPublisher(sink Sink) *Publisher {
	return &Publisher{sink: sink}
}

// Emit fills timestamp, request id and actor when the caller left them empty.
func (p *Publisher) Emit(ctx context.Context, e Event) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = requestcontext.Now(ctx)
	}
	if e.RequestID == "" {
		e.RequestID = requestcontext.RequestID(ctx)
	}
	if e.ActorID == "" && e.ActorEmail == "" {
		if actor := requestcontext.Actor(ctx); !actor.IsZero() {
			e.ActorID = actor.UserID.String()
			e.ActorEmail = actor.Email
		}
	}
	return p.sink.Write(ctx, e)
}

// LogSink writes each event as one structured log line.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Write(ctx context.Context, e Event) error {
	attrs := []any{
		"action", string(e.Action),
		"subject", e.Subject,
		"actor_id", e.ActorID,
		"actor_email", e.ActorEmail,
		"request_id", e.RequestID,
		"timestamp", e.Timestamp,
	}
	for k, v := range e.Details {
		attrs = append(attrs, "detail_"+k, v)
	}
	s.logger.InfoContext(ctx, "audit event", attrs...)
	return nil
}
