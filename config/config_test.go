package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "5000")
	cfg := Load()

	if cfg.StoreBackend != StoreBackendFile {
		t.Fatalf("StoreBackend = %q, want %q", cfg.StoreBackend, StoreBackendFile)
	}
	if cfg.PanicBackend != PanicBackendMemory {
		t.Fatalf("PanicBackend = %q, want %q", cfg.PanicBackend, PanicBackendMemory)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if cfg.Addr() != ":5000" {
		t.Fatalf("Addr() = %q, want :5000", cfg.Addr())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "MySQL")
	t.Setenv("PANIC_BACKEND", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DATA_WATCH", "false")
	t.Setenv("MAX_UPLOAD_MB", "8")

	cfg := Load()
	if cfg.StoreBackend != StoreBackendMySQL {
		t.Fatalf("StoreBackend = %q, want mysql", cfg.StoreBackend)
	}
	if cfg.RedisDB != 3 {
		t.Fatalf("RedisDB = %d, want 3", cfg.RedisDB)
	}
	if cfg.DataWatch {
		t.Fatalf("DataWatch = true, want false")
	}
	if cfg.MaxUploadBytes() != 8<<20 {
		t.Fatalf("MaxUploadBytes() = %d, want %d", cfg.MaxUploadBytes(), 8<<20)
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := Load()
	cfg.BlobBackend = "s3"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate() = nil, want error for unknown blob backend")
	}
}
