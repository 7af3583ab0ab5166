package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "promptkeep/message-api"
)

// GetTracer returns the tracer for the message-api service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// MessageAttributes returns common attributes for message spans.
func MessageAttributes(messageID string, version int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("message.id", messageID),
		attribute.Int("message.version", version),
	}
}

// PersonaAttributes returns common attributes for persona spans.
func PersonaAttributes(personaID string, lockVersion int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("persona.id", personaID),
		attribute.Int("persona.lock_version", lockVersion),
	}
}

// StartMessageSpan starts a new span for a message operation.
func StartMessageSpan(ctx context.Context, operation, messageID string, version int) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, "message."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(MessageAttributes(messageID, version)...),
	)
	return ctx, span
}

// StartPersonaSpan starts a new span for a persona operation.
func StartPersonaSpan(ctx context.Context, operation, personaID string, lockVersion int) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, "persona."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(PersonaAttributes(personaID, lockVersion)...),
	)
	return ctx, span
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
