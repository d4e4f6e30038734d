package validation

import (
	"testing"
)

func TestCredentials(t *testing.T) {
	v := NewInputValidator()

	tests := []struct {
		name    string
		input   Credentials
		wantMsg string
	}{
		{name: "valid", input: Credentials{Email: "alex@example.com", Password: "secret1"}},
		{name: "missing email", input: Credentials{Password: "secret1"}, wantMsg: "Email is required"},
		{name: "bad email", input: Credentials{Email: "alex", Password: "secret1"}, wantMsg: "Please enter a valid email address"},
		{name: "short password", input: Credentials{Email: "alex@example.com", Password: "12345"}, wantMsg: "Password must be at least 6 characters"},
		{name: "six characters is enough", input: Credentials{Email: "alex@example.com", Password: "123456"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FirstMessage(v.Struct(tt.input))
			if got != tt.wantMsg {
				t.Errorf("FirstMessage() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestPactInput(t *testing.T) {
	v := NewInputValidator()

	tests := []struct {
		name    string
		input   PactInput
		wantMsg string
	}{
		{
			name:  "valid",
			input: PactInput{Title: "Run", IdentityStatement: "I run", StartDate: "2026-01-01", EndDate: "2026-03-01", Status: "active"},
		},
		{
			name:  "open ended",
			input: PactInput{Title: "Run", IdentityStatement: "I run", StartDate: "2026-01-01", Status: "paused"},
		},
		{
			name:    "bad start date",
			input:   PactInput{Title: "Run", IdentityStatement: "I run", StartDate: "01/02/2026", Status: "active"},
			wantMsg: "Start date must be a date in YYYY-MM-DD format",
		},
		{
			name:    "unknown status",
			input:   PactInput{Title: "Run", IdentityStatement: "I run", StartDate: "2026-01-01", Status: "archived"},
			wantMsg: "Status must be one of active, completed, paused, abandoned",
		},
		{
			name:    "missing title",
			input:   PactInput{IdentityStatement: "I run", StartDate: "2026-01-01", Status: "active"},
			wantMsg: "Title is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FirstMessage(v.Struct(tt.input))
			if got != tt.wantMsg {
				t.Errorf("FirstMessage() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}
