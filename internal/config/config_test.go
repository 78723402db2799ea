package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid sqlite backend config",
			config: Config{
				DataBackend:  "sqlite",
				SQLiteDBPath: "./test.db",
			},
			wantErr: false,
		},
		{
			name: "valid memory backend config",
			config: Config{
				DataBackend: "memory",
			},
			wantErr: false,
		},
		{
			name: "invalid backend",
			config: Config{
				DataBackend: "postgres",
			},
			wantErr:     true,
			errorString: "invalid data backend 'postgres'",
		},
		{
			name: "sqlite backend without path",
			config: Config{
				DataBackend: "sqlite",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "sheets backend without spreadsheet id",
			config: Config{
				DataBackend:              "sheets",
				GoogleServiceAccountJSON: "{}",
			},
			wantErr:     true,
			errorString: "Google Spreadsheet ID is required",
		},
		{
			name: "sheets backend without credentials",
			config: Config{
				DataBackend:         "sheets",
				GoogleSpreadsheetID: "abc123",
			},
			wantErr:     true,
			errorString: "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
			} else if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATA_BACKEND", "")
	t.Setenv("SQLITE_DB_PATH", "")
	cfg := Load()
	if cfg.DataBackend != "sqlite" {
		t.Fatalf("expected sqlite default backend, got %s", cfg.DataBackend)
	}
	if cfg.SQLiteDBPath == "" {
		t.Fatal("expected a default db path")
	}
}

func TestValidateCreatesDBDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := Config{DataBackend: "sqlite", SQLiteDBPath: filepath.Join(dir, "spendbook.db")}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected directory creation, got %v", err)
	}
}
