package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartEndRecordsSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, ok := Start(context.Background(), "course.create", attribute.String("entity", "course"))
	End(ok, nil)

	_, failed := Start(context.Background(), "user.delete")
	End(failed, errors.New("blocked"))

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans: want=2 got=%d", len(spans))
	}
	if spans[0].Name() != "course.create" {
		t.Fatalf("span name: want=%q got=%q", "course.create", spans[0].Name())
	}
	if spans[0].Status().Code == codes.Error {
		t.Fatalf("successful span marked as error")
	}
	if spans[1].Status().Code != codes.Error {
		t.Fatalf("failed span status: want=Error got=%v", spans[1].Status().Code)
	}
	if len(spans[1].Events()) == 0 {
		t.Fatalf("failed span has no recorded error event")
	}
}
