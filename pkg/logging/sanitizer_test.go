package logging

import (
	"strings"
	"testing"
)

func TestSanitizeConnectionString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		leaked   string
		expected string
	}{
		{
			"dsn password",
			"host=db user=svc password=hunter2 dbname=mesh",
			"hunter2",
			RedactedText,
		},
		{
			"url credentials",
			"postgres://svc:hunter2@db:5432/mesh",
			"hunter2",
			RedactedText,
		},
		{
			"api key",
			"endpoint?api_key=abcdefgh12345678",
			"abcdefgh12345678",
			RedactedText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeConnectionString(tt.input)
			if strings.Contains(got, tt.leaked) {
				t.Errorf("sanitized string still contains secret: %q", got)
			}
			if !strings.Contains(got, tt.expected) {
				t.Errorf("sanitized string missing redaction marker: %q", got)
			}
		})
	}
}

func TestSanitizeConnectionString_Empty(t *testing.T) {
	if got := SanitizeConnectionString(""); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestTruncateSQL(t *testing.T) {
	short := "SELECT 1"
	if got := TruncateSQL(short); got != short {
		t.Errorf("short SQL must pass through, got %q", got)
	}

	long := strings.Repeat("x", MaxQueryLogLength+50)
	got := TruncateSQL(long)
	if len(got) != MaxQueryLogLength+3 {
		t.Errorf("truncated length = %d, want %d", len(got), MaxQueryLogLength+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated SQL must end with ellipsis, got %q", got[len(got)-10:])
	}
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"local", "production", ""} {
		logger, err := NewLogger(env)
		if err != nil {
			t.Fatalf("NewLogger(%q) returned error: %v", env, err)
		}
		if logger == nil {
			t.Fatalf("NewLogger(%q) returned nil logger", env)
		}
	}
}
