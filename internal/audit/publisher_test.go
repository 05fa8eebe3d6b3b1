package audit

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/pkg/requestcontext"
)

func TestEmitEnrichesFromContext(t *testing.T) {
	sink := NewMemorySink()
	p := NewPublisher(sink)

	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	actor := requestcontext.Principal{UserID: uuid.New(), Email: "ops@kivu.test", Role: "ADMIN"}
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithRequestID(ctx, "req-1")
	ctx = requestcontext.WithActor(ctx, actor)

	require.NoError(t, p.Emit(ctx, Event{Action: ActionClientCreated, Subject: "client-1"}))

	events := sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, now, events[0].Timestamp)
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.Equal(t, actor.UserID.String(), events[0].ActorID)
	assert.Equal(t, "ops@kivu.test", events[0].ActorEmail)
}

func TestEmitKeepsExplicitActor(t *testing.T) {
	sink := NewMemorySink()
	ctx := requestcontext.WithActor(context.Background(), requestcontext.Principal{UserID: uuid.New(), Email: "other@kivu.test"})

	require.NoError(t, NewPublisher(sink).Emit(ctx, Event{Action: ActionLoginFailed, ActorEmail: "who@kivu.test"}))
	assert.Equal(t, "who@kivu.test", sink.Events()[0].ActorEmail)
	assert.Empty(t, sink.Events()[0].ActorID)
}

func TestLogSinkWritesOneLine(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, sink.Write(context.Background(), Event{
		Action:  ActionClientDeleted,
		Subject: "client-9",
		Details: map[string]string{"cedula": "900111222"},
	}))
	out := buf.String()
	assert.Contains(t, out, `"action":"client_deleted"`)
	assert.Contains(t, out, `"detail_cedula":"900111222"`)
}
