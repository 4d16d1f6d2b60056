package handler

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestWrapErrorNil(t *testing.T) {
	if err := WrapError("Presentation", "Generate", nil); err != nil {
		t.Errorf("WrapError(nil) = %v, want nil", err)
	}
}

func TestWrapErrorFormat(t *testing.T) {
	original := errors.New("boom")
	err := WrapError("Presentation", "Render", original)

	if got, want := err.Error(), "[Presentation.Render] boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, original) {
		t.Error("errors.Is should find the original error")
	}
}

// For any service and operation name, the wrapped error keeps the
// [Service.Operation] prefix format and unwraps to the original.
func TestServiceErrorFormatProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		service := rapid.String().Draw(t, "service")
		operation := rapid.String().Draw(t, "operation")
		msg := rapid.String().Draw(t, "msg")

		original := fmt.Errorf("%s", msg)
		wrapped := WrapError(service, operation, original)
		if wrapped == nil {
			t.Fatal("WrapError with non-nil error returned nil")
		}

		errStr := wrapped.Error()
		if !strings.HasPrefix(errStr, fmt.Sprintf("[%s.%s] ", service, operation)) {
			t.Fatalf("Error() = %q lacks service context prefix", errStr)
		}

		var se *ServiceError
		if !errors.As(wrapped, &se) {
			t.Fatal("wrapped error should be *ServiceError")
		}
		if se.Unwrap() != original {
			t.Fatal("Unwrap() should return the original error")
		}
	})
}
