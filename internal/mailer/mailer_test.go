package mailer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fdg312/mealweek/internal/config"
	"github.com/rs/zerolog"
)

func TestNewSenderFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{name: "default local", cfg: config.Config{}},
		{name: "explicit local", cfg: config.Config{EmailSenderMode: "LOCAL"}},
		{
			name:    "smtp without host",
			cfg:     config.Config{EmailSenderMode: "smtp", SMTPPort: 587, SMTPFrom: "no-reply@example.com"},
			wantErr: "SMTP_HOST",
		},
		{
			name:    "smtp without port",
			cfg:     config.Config{EmailSenderMode: "smtp", SMTPHost: "smtp.example.com", SMTPFrom: "no-reply@example.com"},
			wantErr: "SMTP_PORT",
		},
		{
			name:    "smtp username without password",
			cfg:     config.Config{EmailSenderMode: "smtp", SMTPHost: "smtp.example.com", SMTPPort: 587, SMTPFrom: "no-reply@example.com", SMTPUsername: "bot"},
			wantErr: "SMTP_PASSWORD",
		},
		{
			name: "smtp ok",
			cfg:  config.Config{EmailSenderMode: "smtp", SMTPHost: "smtp.example.com", SMTPPort: 587, SMTPFrom: "no-reply@example.com"},
		},
		{name: "unknown mode", cfg: config.Config{EmailSenderMode: "resend"}, wantErr: "unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, err := NewSenderFromConfig(&tt.cfg, nil)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sender == nil {
				t.Fatal("expected sender")
			}
		})
	}
}

func TestLocalSenderLogsMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	if err := NewLocalSender(&logger).Send("ana@example.com", "Seu código", "Código: 123456"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "ana@example.com") || !strings.Contains(out, "123456") {
		t.Fatalf("expected recipient and body in log, got %s", out)
	}
}

func TestBuildMessageEncodesSubject(t *testing.T) {
	msg := buildMessage("MealWeek <no-reply@example.com>", "ana@example.com\r\n", "Seu código\nde acesso", "corpo")

	if !strings.Contains(msg, "Subject: =?utf-8?q?") {
		t.Fatalf("expected encoded subject, got %q", msg)
	}
	if !strings.Contains(msg, "To: ana@example.com\r\n") {
		t.Fatalf("expected sanitized recipient, got %q", msg)
	}
	if !strings.HasSuffix(msg, "\r\n\r\ncorpo") {
		t.Fatalf("expected body after blank line, got %q", msg)
	}
}

func TestEnvelopeAddress(t *testing.T) {
	addr, err := envelopeAddress(" MealWeek <no-reply@example.com> ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr != "no-reply@example.com" {
		t.Fatalf("expected bare address, got %q", addr)
	}

	if _, err := envelopeAddress("not an address"); err == nil {
		t.Fatal("expected error for invalid address")
	}
}
