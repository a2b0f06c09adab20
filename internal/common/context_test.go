package common

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("request id = %q", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("request id on empty context = %q", got)
	}
}

func TestSessionIDRoundTrip(t *testing.T) {
	ctx := WithSessionID(context.Background(), "sess-42")
	if got := SessionIDFromContext(ctx); got != "sess-42" {
		t.Errorf("session id = %q", got)
	}
	if got := SessionIDFromContext(context.Background()); got != "" {
		t.Errorf("session id on empty context = %q", got)
	}
}
