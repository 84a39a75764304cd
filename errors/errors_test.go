package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorClass_String(t *testing.T) {
	tests := []struct {
		class    ErrorClass
		expected string
	}{
		{ErrorTransient, "transient"},
		{ErrorInvalid, "invalid"},
		{ErrorFatal, "fatal"},
		{ErrorClass(999), "unknown"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			if result := test.class.String(); result != test.expected {
				t.Errorf("expected %s, got %s", test.expected, result)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection timeout", ErrConnectionTimeout, true},
		{"connection lost", ErrConnectionLost, true},
		{"rate limited", ErrRateLimited, true},
		{"context deadline exceeded", context.DeadlineExceeded, true},
		{"context canceled", context.Canceled, true},
		{"invalid data", ErrInvalidData, false},
		{"timeout in message", fmt.Errorf("operation timeout occurred"), true},
		{"classified transient", &ClassifiedError{Class: ErrorTransient, Err: fmt.Errorf("test")}, true},
		{"classified fatal", &ClassifiedError{Class: ErrorFatal, Err: fmt.Errorf("test")}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if result := IsTransient(test.err); result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsInvalidAndFatal(t *testing.T) {
	if !IsInvalid(ErrUnknownEventType) {
		t.Error("unknown event type should be invalid")
	}
	if !IsInvalid(fmt.Errorf("decode: %w", ErrParsingFailed)) {
		t.Error("wrapped parsing failure should be invalid")
	}
	if !IsFatal(ErrMissingConfig) {
		t.Error("missing config should be fatal")
	}
	if IsFatal(nil) || IsInvalid(nil) {
		t.Error("nil error must not be classified")
	}
}

func TestWrapHelpers(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name  string
		err   error
		class ErrorClass
	}{
		{"transient", WrapTransient(base, "session", "write", "send state"), ErrorTransient},
		{"invalid", WrapInvalid(base, "session", "decode", "parse envelope"), ErrorInvalid},
		{"fatal", WrapFatal(base, "metric", "Start", "listen"), ErrorFatal},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Classify(test.err); got != test.class {
				t.Errorf("expected class %v, got %v", test.class, got)
			}
			if !errors.Is(test.err, base) {
				t.Error("wrapped error should unwrap to base")
			}
			var ce *ClassifiedError
			if !errors.As(test.err, &ce) {
				t.Fatal("expected ClassifiedError")
			}
			if ce.Component == "" || ce.Operation == "" {
				t.Error("component and operation should be recorded")
			}
		})
	}
}

func TestWrap_Format(t *testing.T) {
	err := Wrap(errors.New("eof"), "config", "Load", "read layer")
	if err.Error() != "config.Load: read layer failed: eof" {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if Wrap(nil, "a", "b", "c") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestWrapNilCause(t *testing.T) {
	err := WrapInvalid(nil, "session", "New", "editor cannot be nil")
	if err == nil {
		t.Fatal("guard clause wrap must produce an error")
	}
	if !IsInvalid(err) {
		t.Error("expected invalid class")
	}
	if err.Error() != "session.New: editor cannot be nil" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
