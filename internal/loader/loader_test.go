package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shaledb/shale/config"
	apperrors "github.com/shaledb/shale/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shale.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Read.BatchSize != config.DefaultBatchSize {
		t.Errorf("BatchSize: got %d, want %d", cfg.Read.BatchSize, config.DefaultBatchSize)
	}
	if cfg.Write.RowGroupSize != config.DefaultRowGroupSize {
		t.Errorf("RowGroupSize: got %d, want %d", cfg.Write.RowGroupSize, config.DefaultRowGroupSize)
	}
	if cfg.Query.MemoryLimit != config.DefaultQueryMemoryLimit {
		t.Errorf("MemoryLimit: got %q, want %q", cfg.Query.MemoryLimit, config.DefaultQueryMemoryLimit)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  json: true
read:
  batch_size: 128
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.JSON {
		t.Errorf("log config not applied: %+v", cfg.Log)
	}
	if cfg.Read.BatchSize != 128 {
		t.Errorf("BatchSize: got %d, want 128", cfg.Read.BatchSize)
	}
	// Unnamed values keep their defaults.
	if cfg.Write.RowGroupSize != config.DefaultRowGroupSize {
		t.Errorf("RowGroupSize: got %d, want default %d", cfg.Write.RowGroupSize, config.DefaultRowGroupSize)
	}
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("SHALE_TEST_LEVEL", "warn")
	path := writeConfig(t, "log:\n  level: ${SHALE_TEST_LEVEL}\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Level: got %q, want warn", cfg.Log.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero batch size", "read:\n  batch_size: 0\n"},
		{"oversized row group", "write:\n  row_group_size: 999999999\n"},
		{"bad log level", "log:\n  level: verbose\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); !apperrors.Is(err, apperrors.ErrInvalidArgument) {
				t.Fatalf("got %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v, want a not-exist error", err)
	}
}
