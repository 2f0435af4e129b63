package server

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/livehooks/pkg/protocol"
)

const tracerName = "livehooks"

// traceMessage starts a span for one client message. The returned func ends
// it with the hook name, err and the number of patches the message produced.
func (s *Session) traceMessage(msg *protocol.ClientMessage) func(hook string, err error, patches int) {
	_, span := s.tracer.Start(context.Background(), "livehooks."+string(msg.Type),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("livehooks.session_id", s.ID),
			attribute.String("livehooks.hook_id", msg.ID),
		),
	)
	if msg.Event != "" {
		span.SetAttributes(attribute.String("livehooks.event", msg.Event))
	}

	return func(hook string, err error, patches int) {
		span.SetAttributes(attribute.String("livehooks.hook", hook))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.SetAttributes(attribute.Int("livehooks.patch_count", patches))
		span.End()
	}
}

func defaultTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
