package common

import (
	"errors"
	"strings"
	"testing"
)

func TestAppErrorUnwrap(t *testing.T) {
	err := NewAppError("NOT_INVOICE", "document rejected", ErrNotInvoice)
	if !errors.Is(err, ErrNotInvoice) {
		t.Error("cause not reachable through errors.Is")
	}
	if msg := err.Error(); !strings.Contains(msg, "NOT_INVOICE") || !strings.Contains(msg, "document rejected") {
		t.Errorf("message = %q", msg)
	}
}

func TestAppErrorWithoutCause(t *testing.T) {
	err := NewAppError("INTERNAL", "something broke", nil)
	if err.Unwrap() != nil {
		t.Error("unexpected cause")
	}
	if msg := err.Error(); msg != "INTERNAL: something broke" {
		t.Errorf("message = %q", msg)
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("wrapping nil should stay nil")
	}
	wrapped := WrapError(ErrUpstream, "registry lookup")
	if !errors.Is(wrapped, ErrUpstream) {
		t.Error("cause lost")
	}
}
