package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOfWalksChain(t *testing.T) {
	base := New(CodeNotFound, "label not found", nil)
	wrapped := fmt.Errorf("get label: %w", base)

	if got := CodeOf(wrapped); got != CodeNotFound {
		t.Fatalf("expected %s, got %s", CodeNotFound, got)
	}
	if !IsCode(wrapped, CodeNotFound) {
		t.Fatal("expected IsCode to match through wrapping")
	}
	if CodeOf(errors.New("plain")) != CodeUnknown {
		t.Fatal("expected plain errors to report CodeUnknown")
	}
}

func TestErrorFallsBackToWrappedText(t *testing.T) {
	err := New(CodeRemoteFailed, "", errors.New("boom"))
	if err.Error() != "boom" {
		t.Fatalf("expected wrapped text, got %q", err.Error())
	}
	if New(CodeRateLimited, "", nil).Error() != string(CodeRateLimited) {
		t.Fatal("expected code as last resort")
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"single line", "single line"},
		{"line one\nline two", "line one line two"},
		{"crlf\r\nbreak", "crlf break"},
		{"tab\tseparated", "tab separated"},
		{"esc\x1b[31mred", "esc [31mred"},
		{"bell\a and nul\x00", "bell  and nul "},
		{"del\x7f", "del "},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMessage(t *testing.T) {
	if Message(nil) != "" {
		t.Fatal("expected empty message for nil error")
	}
	if got := Message(errors.New("a\nb")); got != "a b" {
		t.Fatalf("expected sanitized message, got %q", got)
	}
	if got := Message(ErrClientNotInitialized); got != "GitHub client not initialized." {
		t.Fatalf("unexpected message %q", got)
	}
}
