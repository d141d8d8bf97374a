package config

import "testing"

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "GIN_MODE", "STORE_DRIVER", "DATABASE_URL", "DATA_PATH", "SEED_PATH", "STORE_LATENCY_SCALE", "AMQP_URL", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Expected port 8000, got %s", cfg.Port)
	}
	if cfg.StoreDriver != DriverMemory {
		t.Errorf("Expected memory driver, got %s", cfg.StoreDriver)
	}
	if cfg.LatencyScale != 1.0 {
		t.Errorf("Expected latency scale 1.0, got %f", cfg.LatencyScale)
	}
	if cfg.DataPath != "crewplan.db" {
		t.Errorf("Expected default data path, got %s", cfg.DataPath)
	}
}

func TestLoad_DatabaseURLImpliesPostgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/crewplan")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StoreDriver != DriverPostgres {
		t.Errorf("Expected postgres driver, got %s", cfg.StoreDriver)
	}
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "mongo")
	if _, err := Load(); err == nil {
		t.Error("Expected error for unknown driver")
	}

	clearEnv(t)
	t.Setenv("STORE_LATENCY_SCALE", "-1")
	if _, err := Load(); err == nil {
		t.Error("Expected error for negative latency scale")
	}
}
