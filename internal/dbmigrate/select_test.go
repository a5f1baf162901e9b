package dbmigrate

import (
	"testing"

	"github.com/fdg312/mealweek/internal/config"
)

func TestSelectDatabaseURL(t *testing.T) {
	tests := []struct {
		name          string
		cfg           config.Config
		requireDirect bool
		wantURL       string
		wantSource    string
		wantWarning   bool
		wantErr       bool
	}{
		{
			name:       "direct wins",
			cfg:        config.Config{DatabaseURLDirect: "postgres://direct", DatabaseURLRaw: "postgres://url", DatabaseURLPooled: "postgres://pooled"},
			wantURL:    "postgres://direct",
			wantSource: "DATABASE_URL_DIRECT",
		},
		{
			name:       "database url before pooled",
			cfg:        config.Config{DatabaseURLRaw: "postgres://url", DatabaseURLPooled: "postgres://pooled"},
			wantURL:    "postgres://url",
			wantSource: "DATABASE_URL",
		},
		{
			name:        "pooled warns",
			cfg:         config.Config{DatabaseURLPooled: "postgres://pooled"},
			wantURL:     "postgres://pooled",
			wantSource:  "DATABASE_URL_POOLED",
			wantWarning: true,
		},
		{
			name:          "direct required",
			cfg:           config.Config{DatabaseURLRaw: "postgres://url"},
			requireDirect: true,
			wantErr:       true,
		},
		{
			name:    "nothing configured",
			cfg:     config.Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := SelectDatabaseURL(&tt.cfg, tt.requireDirect)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if target.URL != tt.wantURL || target.Source != tt.wantSource {
				t.Errorf("expected %s from %s, got %s from %s", tt.wantURL, tt.wantSource, target.URL, target.Source)
			}
			if (target.Warning != "") != tt.wantWarning {
				t.Errorf("unexpected warning state: %q", target.Warning)
			}
		})
	}
}

func TestIsSupported(t *testing.T) {
	for _, c := range []string{"up", "down", "status", "redo", "version"} {
		if !IsSupported(c) {
			t.Errorf("expected %s to be supported", c)
		}
	}
	if IsSupported("reset") {
		t.Error("reset must not be supported")
	}
}
