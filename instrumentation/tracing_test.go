package instrumentation

import (
	"context"
	"errors"
	"testing"
)

func TestRecordError_NilSafe(t *testing.T) {
	// Nil span, nil error, and both must not panic.
	RecordError(nil, nil)
	RecordError(nil, errors.New("boom"))

	inst, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, span := inst.Tracer("test").Start(context.Background(), "op")
	RecordError(span, nil)
	RecordError(span, errors.New("boom"))
	EndSpan(span)
}

func TestEndSpan_NilSafe(t *testing.T) {
	EndSpan(nil)
}
