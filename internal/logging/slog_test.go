package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestWithOperation(t *testing.T) {
	logger := slog.Default()
	result := WithOperation(logger, "test_operation")
	if result == nil {
		t.Error("WithOperation returned nil")
	}
}

func TestWithTool(t *testing.T) {
	logger := slog.Default()
	result := WithTool(logger, "find-tasks")
	if result == nil {
		t.Error("WithTool returned nil")
	}
}

func TestOperationAttr(t *testing.T) {
	attr := Operation("test_op")
	if attr.Key != KeyOperation {
		t.Errorf("Operation key = %q, want %q", attr.Key, KeyOperation)
	}
	if attr.Value.String() != "test_op" {
		t.Errorf("Operation value = %q, want %q", attr.Value.String(), "test_op")
	}
}

func TestToolAttr(t *testing.T) {
	attr := Tool("find-tasks")
	if attr.Key != KeyTool {
		t.Errorf("Tool key = %q, want %q", attr.Key, KeyTool)
	}
	if attr.Value.String() != "find-tasks" {
		t.Errorf("Tool value = %q, want %q", attr.Value.String(), "find-tasks")
	}
}

func TestTransportAttr(t *testing.T) {
	attr := Transport("stdio")
	if attr.Key != KeyTransport {
		t.Errorf("Transport key = %q, want %q", attr.Key, KeyTransport)
	}
	if attr.Value.String() != "stdio" {
		t.Errorf("Transport value = %q, want %q", attr.Value.String(), "stdio")
	}
}

func TestStatusAttr(t *testing.T) {
	attr := Status(StatusSuccess)
	if attr.Key != KeyStatus {
		t.Errorf("Status key = %q, want %q", attr.Key, KeyStatus)
	}
	if attr.Value.String() != StatusSuccess {
		t.Errorf("Status value = %q, want %q", attr.Value.String(), StatusSuccess)
	}
}

func TestErr(t *testing.T) {
	// Test with error
	err := errors.New("test error")
	attr := Err(err)
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "test error" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "test error")
	}

	// Test with nil - should return an empty group that slog will omit
	attr = Err(nil)
	// Empty Group has empty key
	if attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty string (empty group)", attr.Key)
	}
}

func TestHashToken(t *testing.T) {
	if HashToken("") != "" {
		t.Error("HashToken of empty token should be empty")
	}

	hash := HashToken("secret-token")
	if len(hash) != 22 { // "token:" + 16 hex chars
		t.Errorf("HashToken length = %d, want 22", len(hash))
	}
	if hash[:6] != "token:" {
		t.Errorf("HashToken should start with 'token:', got %q", hash)
	}

	// Test deterministic hashing
	if HashToken("secret-token") != hash {
		t.Error("HashToken should return deterministic results")
	}

	// Test different tokens produce different hashes
	if HashToken("other-token") == hash {
		t.Error("Different tokens should produce different hashes")
	}
}

func TestTokenHashAttr(t *testing.T) {
	attr := TokenHash("secret-token")
	if attr.Key != KeyTokenHash {
		t.Errorf("TokenHash key = %q, want %q", attr.Key, KeyTokenHash)
	}
	if len(attr.Value.String()) != 22 {
		t.Errorf("TokenHash value length = %d, want 22", len(attr.Value.String()))
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"", "<empty>"},
		{"abc123", "[token:6 chars]"},
		{"a_very_long_token_string", "[token:24 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := SanitizeToken(tt.token)
			if result != tt.expected {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, result, tt.expected)
			}
		})
	}
}

func TestStatusConstants(t *testing.T) {
	if StatusSuccess != "success" {
		t.Errorf("StatusSuccess = %q, want %q", StatusSuccess, "success")
	}
	if StatusError != "error" {
		t.Errorf("StatusError = %q, want %q", StatusError, "error")
	}
}
