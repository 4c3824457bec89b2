package config_test

import (
	"strings"
	"testing"

	"ledgerpro/internal/config"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
		check   func(t *testing.T, c *config.Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			check: func(t *testing.T, c *config.Config) {
				if c.StorageDriver != config.DriverFile || c.DataFile != "ledgerpro.json" || c.ServerPort != "8080" {
					t.Errorf("unexpected defaults: %+v", c)
				}
			},
		},
		{
			name: "postgres driver",
			env:  map[string]string{"STORAGE_DRIVER": "Postgres", "DATABASE_URL": "postgres://localhost/ledger"},
			check: func(t *testing.T, c *config.Config) {
				if c.StorageDriver != config.DriverPostgres {
					t.Errorf("expected postgres driver, got %s", c.StorageDriver)
				}
			},
		},
		{
			name:    "postgres without url",
			env:     map[string]string{"STORAGE_DRIVER": "postgres"},
			wantErr: "DATABASE_URL",
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"STORAGE_DRIVER": "sqlite"},
			wantErr: "STORAGE_DRIVER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"STORAGE_DRIVER", "DATA_FILE", "DATABASE_URL", "SERVER_PORT"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			c, err := config.Load()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error mentioning %s, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestRequireJWTSecret(t *testing.T) {
	c := &config.Config{}
	if err := c.RequireJWTSecret(); err == nil {
		t.Error("expected an error without JWT_SECRET")
	}
	c.JWTSecret = "s3cret"
	if err := c.RequireJWTSecret(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
