package app

import "testing"

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.APIAddr != ":8080" {
		t.Errorf("expected APIAddr :8080, got %s", cfg.APIAddr)
	}
	if cfg.OpsAddr != ":9090" {
		t.Errorf("expected OpsAddr :9090, got %s", cfg.OpsAddr)
	}
	if cfg.StorageDriver != StorageDriverMemory {
		t.Errorf("expected StorageDriver %s, got %s", StorageDriverMemory, cfg.StorageDriver)
	}
	if cfg.SecretSource != SecretSourceEnv {
		t.Errorf("expected SecretSource %s, got %s", SecretSourceEnv, cfg.SecretSource)
	}
	if cfg.SecretEnvPrefix != "STOREFRONT_DB" {
		t.Errorf("expected SecretEnvPrefix STOREFRONT_DB, got %s", cfg.SecretEnvPrefix)
	}
	if !cfg.AutoMigrate {
		t.Error("expected AutoMigrate to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		mut     func(c *Config)
		wantErr bool
	}{
		{
			name: "defaults are valid",
			mut:  func(*Config) {},
		},
		{
			name:    "unknown driver",
			mut:     func(c *Config) { c.StorageDriver = "oracle" },
			wantErr: true,
		},
		{
			name: "memory ignores secret source",
			mut: func(c *Config) {
				c.SecretSource = ""
			},
		},
		{
			name: "postgres with env source",
			mut: func(c *Config) {
				c.StorageDriver = StorageDriverPostgres
			},
		},
		{
			name: "sql driver requires secret source",
			mut: func(c *Config) {
				c.StorageDriver = StorageDriverPostgres
				c.SecretSource = ""
			},
			wantErr: true,
		},
		{
			name: "json source requires document",
			mut: func(c *Config) {
				c.StorageDriver = StorageDriverMySQL
				c.SecretSource = SecretSourceJSON
			},
			wantErr: true,
		},
		{
			name: "manager source requires secret id",
			mut: func(c *Config) {
				c.StorageDriver = StorageDriverMySQL
				c.SecretSource = SecretSourceManager
			},
			wantErr: true,
		},
		{
			name: "manager source with secret id",
			mut: func(c *Config) {
				c.StorageDriver = StorageDriverMySQL
				c.SecretSource = SecretSourceManager
				c.SecretID = "storefront/db"
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mut(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestConfigDefaultPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverMySQL
	if cfg.defaultPort() != 3306 {
		t.Errorf("expected 3306 for mysql, got %d", cfg.defaultPort())
	}
	cfg.StorageDriver = StorageDriverPostgres
	if cfg.defaultPort() != 5432 {
		t.Errorf("expected 5432 for postgres, got %d", cfg.defaultPort())
	}
}
