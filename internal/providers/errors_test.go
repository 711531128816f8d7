package providers

import (
	"fmt"
	"strings"
	"testing"
)

func TestStatusErrorString(t *testing.T) {
	err := &StatusError{Provider: "themeparks", Endpoint: "live", StatusCode: 503, Body: "maintenance"}
	if got := err.Error(); got != "themeparks live: unexpected status 503: maintenance" {
		t.Fatalf("unexpected error string %q", got)
	}

	bare := &StatusError{StatusCode: 404}
	if got := bare.Error(); !strings.HasPrefix(got, "provider: unexpected status 404") {
		t.Fatalf("expected fallback provider name, got %q", got)
	}
}

func TestAsStatusErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("fetch live: %w", &StatusError{StatusCode: 500})
	statusErr, ok := AsStatusError(wrapped)
	if !ok || statusErr.StatusCode != 500 {
		t.Fatalf("expected to unwrap status error, got %v", statusErr)
	}
	if _, ok := AsStatusError(fmt.Errorf("plain")); ok {
		t.Fatal("expected plain error not to unwrap")
	}
}
