package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_PASSWORD", "test_password")
	os.Setenv("JWT_SECRET_KEY", "this_is_a_test_secret_key_with_32_chars_minimum")
	defer os.Clearenv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DBPassword != "test_password" {
		t.Errorf("DBPassword = %q, want %q", cfg.DBPassword, "test_password")
	}
	if cfg.StoreDriver != StoreDriverPostgres {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, StoreDriverPostgres)
	}
	if cfg.PresenceScope != PresenceScopeGlobal {
		t.Errorf("PresenceScope = %q, want %q", cfg.PresenceScope, PresenceScopeGlobal)
	}
	if cfg.JWTTTLHours != 168 {
		t.Errorf("JWTTTLHours = %d, want 168", cfg.JWTTTLHours)
	}
	if cfg.WSEventsPerSecond != 10 {
		t.Errorf("WSEventsPerSecond = %v, want 10", cfg.WSEventsPerSecond)
	}
}

func TestLoadConfig_MemoryDriverWithoutPassword(t *testing.T) {
	os.Clearenv()
	os.Setenv("STORE_DRIVER", "memory")
	os.Setenv("SEED_FILE", "testdata/seed.xlsx")
	os.Setenv("JWT_SECRET_KEY", "this_is_a_test_secret_key_with_32_chars_minimum")
	defer os.Clearenv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.StoreDriver != StoreDriverMemory {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, StoreDriverMemory)
	}
	if cfg.SeedFile != "testdata/seed.xlsx" {
		t.Errorf("SeedFile = %q, want %q", cfg.SeedFile, "testdata/seed.xlsx")
	}
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Missing DB_PASSWORD",
			envVars: map[string]string{
				"JWT_SECRET_KEY": "this_is_a_test_secret_key_with_32_chars_minimum",
			},
		},
		{
			name: "Missing JWT_SECRET_KEY",
			envVars: map[string]string{
				"DB_PASSWORD": "password",
			},
		},
		{
			name: "Unknown store driver",
			envVars: map[string]string{
				"STORE_DRIVER":   "sqlite",
				"JWT_SECRET_KEY": "this_is_a_test_secret_key_with_32_chars_minimum",
			},
		},
		{
			name: "Unknown presence scope",
			envVars: map[string]string{
				"DB_PASSWORD":    "password",
				"JWT_SECRET_KEY": "this_is_a_test_secret_key_with_32_chars_minimum",
				"PRESENCE_SCOPE": "everyone",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			defer os.Clearenv()

			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			_, err := LoadConfig()
			if err == nil {
				t.Error("LoadConfig() expected error for invalid config, got nil")
			}
		})
	}
}

func TestValidate_JWTSecretTooShort(t *testing.T) {
	cfg := &Config{
		StoreDriver:      StoreDriverMemory,
		JWTSecret:        "short",
		PresenceScope:    PresenceScopeGlobal,
		WSSendBuffer:     16,
		MaxMessageLength: 100,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for short JWT secret, got nil")
	}
}

func TestValidateProductionSecurity(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		shouldErr bool
	}{
		{
			name: "Valid production config",
			cfg: &Config{
				AppEnv:      "production",
				StoreDriver: StoreDriverPostgres,
				DBSSLMode:   "require",
				JWTSecret:   "production_secret_key_different_from_default",
			},
			shouldErr: false,
		},
		{
			name: "Development mode - no validation",
			cfg: &Config{
				AppEnv:      "development",
				StoreDriver: StoreDriverMemory,
				DBSSLMode:   "disable",
			},
			shouldErr: false,
		},
		{
			name: "Production without SSL",
			cfg: &Config{
				AppEnv:      "production",
				StoreDriver: StoreDriverPostgres,
				DBSSLMode:   "disable",
				JWTSecret:   "production_secret_key_different_from_default",
			},
			shouldErr: true,
		},
		{
			name: "Production on memory store",
			cfg: &Config{
				AppEnv:      "production",
				StoreDriver: StoreDriverMemory,
				DBSSLMode:   "require",
				JWTSecret:   "production_secret_key_different_from_default",
			},
			shouldErr: true,
		},
		{
			name: "Production with default JWT secret",
			cfg: &Config{
				AppEnv:      "production",
				StoreDriver: StoreDriverPostgres,
				DBSSLMode:   "require",
				JWTSecret:   "your_jwt_secret_minimum_32_chars_here_change_this",
			},
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateProductionSecurity()
			if tt.shouldErr && err == nil {
				t.Error("ValidateProductionSecurity() expected error, got nil")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("ValidateProductionSecurity() unexpected error = %v", err)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "testuser",
		DBPassword: "testpass",
		DBName:     "testdb",
		DBSSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	if dsn := cfg.GetDSN(); dsn != expected {
		t.Errorf("GetDSN() = %q, want %q", dsn, expected)
	}
}

func TestDurations(t *testing.T) {
	cfg := &Config{JWTTTLHours: 2, RateLimitWindowSeconds: 30}

	if got := cfg.GetJWTTTL(); got != 2*time.Hour {
		t.Errorf("GetJWTTTL() = %v, want %v", got, 2*time.Hour)
	}
	if got := cfg.GetRateLimitWindow(); got != 30*time.Second {
		t.Errorf("GetRateLimitWindow() = %v, want %v", got, 30*time.Second)
	}
}
