package tyson

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tyson.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, "prompt: \"lisp> \"\nsocket: /tmp/other.sock\ntranscript: /tmp/t.db\nmax_traces: 5\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != "lisp> " || cfg.Socket != "/tmp/other.sock" || cfg.Transcript != "/tmp/t.db" || cfg.MaxTraces != 5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.HistoryLimit != DefaultConfig().HistoryLimit {
		t.Fatalf("unset fields should keep defaults, got history_limit %d", cfg.HistoryLimit)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigUnknownField(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "colour: red\n")); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("TYSON_SOCK", "/tmp/env.sock")
	t.Setenv("TYSON_PROMPT", "> ")
	t.Setenv("TYSON_MAX_TRACES", "7")
	t.Setenv("TYSON_HISTORY_LIMIT", "25")
	cfg, err := LoadConfig(writeConfig(t, "socket: /tmp/file.sock\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Socket != "/tmp/env.sock" || cfg.Prompt != "> " || cfg.MaxTraces != 7 || cfg.HistoryLimit != 25 {
		t.Fatalf("environment should win over the file, got %+v", cfg)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("TYSON_MAX_TRACES", "many")
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for non-numeric TYSON_MAX_TRACES")
	}
}

func TestLoadConfigInvalidHistoryLimit(t *testing.T) {
	t.Setenv("TYSON_HISTORY_LIMIT", "lots")
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for non-numeric TYSON_HISTORY_LIMIT")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTraces = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative max_traces")
	}
	cfg = DefaultConfig()
	cfg.Socket = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty socket")
	}
}
