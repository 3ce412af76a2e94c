package project

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) (*Store, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	return NewStore(NewContext(t.TempDir()), logger), &logs
}

func TestNewContext(t *testing.T) {
	cwd := t.TempDir()
	ctx := NewContext(cwd)

	if ctx.Cwd != cwd {
		t.Errorf("Cwd = %q, want %q", ctx.Cwd, cwd)
	}
	if ctx.ClaudeDir != filepath.Join(cwd, ".claude") {
		t.Errorf("ClaudeDir = %q", ctx.ClaudeDir)
	}
	if ctx.ConfigPath != filepath.Join(cwd, ".claude", "shipkit.json") {
		t.Errorf("ConfigPath = %q", ctx.ConfigPath)
	}
	if ctx.HasExistingConfig {
		t.Error("fresh directory should have no config")
	}

	os.MkdirAll(filepath.Join(cwd, ".claude"), 0755)
	os.WriteFile(filepath.Join(cwd, ".claude", "shipkit.json"), []byte("{}"), 0644)
	if !NewContext(cwd).HasExistingConfig {
		t.Error("expected HasExistingConfig after writing shipkit.json")
	}
}

func TestEnsureStateDir_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)

	for i := 0; i < 2; i++ {
		if err := s.EnsureStateDir(); err != nil {
			t.Fatalf("EnsureStateDir (pass %d) failed: %v", i+1, err)
		}
	}

	for _, sub := range []string{"", "skills", "commands"} {
		path := filepath.Join(s.Context().ClaudeDir, sub)
		if info, err := os.Stat(path); err != nil || !info.IsDir() {
			t.Errorf("expected directory %s", path)
		}
	}
	if !s.StateDirExists() {
		t.Error("StateDirExists should be true")
	}
}

func TestWriteFile_CreatesParentsAndOverwrites(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.WriteFile("skills/debugging/references/a.md", "first"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := s.WriteFile("skills/debugging/references/a.md", "second"); err != nil {
		t.Fatalf("WriteFile (overwrite) failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(s.Context().ClaudeDir, "skills", "debugging", "references", "a.md"))
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}
}

func TestWriteFile_RejectsEscapes(t *testing.T) {
	s, _ := newTestStore(t)

	for _, rel := range []string{"../outside.md", "skills/../../outside.md", "/etc/passwd"} {
		if err := s.WriteFile(rel, "x"); err == nil {
			t.Errorf("expected error writing %q", rel)
		}
	}
}

func TestWriteProjectFile(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.WriteProjectFile("CLAUDE.md", "# Project"); err != nil {
		t.Fatalf("WriteProjectFile failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(s.Context().Cwd, "CLAUDE.md"))
	if err != nil || string(data) != "# Project" {
		t.Errorf("CLAUDE.md = %q, %v", data, err)
	}
}

func TestReadConfig_Missing(t *testing.T) {
	s, logs := newTestStore(t)

	cfg, ok := s.ReadConfig()
	if ok || cfg != nil {
		t.Errorf("expected absent config, got %+v", cfg)
	}
	if logs.Len() != 0 {
		t.Errorf("missing config should not warn, got %q", logs.String())
	}
}

func TestReadConfig_CorruptedIsAbsentWithWarning(t *testing.T) {
	s, logs := newTestStore(t)
	os.MkdirAll(s.Context().ClaudeDir, 0755)
	os.WriteFile(s.Context().ConfigPath, []byte("not json{{"), 0644)

	cfg, ok := s.ReadConfig()
	if ok || cfg != nil {
		t.Errorf("expected absent config, got %+v", cfg)
	}
	if !strings.Contains(logs.String(), "failed to parse config") {
		t.Errorf("expected parse warning, got %q", logs.String())
	}
}

func TestConfigRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	original := &Config{
		Version:     "0.1.0",
		Modules:     []string{"debugging", "fix", "code-review"},
		InstalledAt: Timestamp(time.Date(2026, 10, 19, 8, 30, 15, 123456789, time.UTC)),
	}
	if err := s.WriteConfig(original); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, ok := s.ReadConfig()
	if !ok {
		t.Fatal("expected config after write")
	}
	if !reflect.DeepEqual(loaded, original) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", loaded, original)
	}
	if !s.Context().HasExistingConfig {
		t.Error("HasExistingConfig should flip after WriteConfig")
	}
}

func TestWriteConfig_JSONShape(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.WriteConfig(&Config{Version: "0.1.0", InstalledAt: "2026-10-19T08:30:15.123Z"}); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	data, _ := os.ReadFile(s.Context().ConfigPath)
	for _, want := range []string{`"version": "0.1.0"`, `"modules": []`, `"installedAt": "2026-10-19T08:30:15.123Z"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected %s in %s", want, data)
		}
	}
}

func TestIsInstalled(t *testing.T) {
	s, _ := newTestStore(t)

	if s.IsInstalled("fix") {
		t.Error("nothing is installed without a config")
	}

	s.WriteConfig(&Config{Version: "0.1.0", Modules: []string{"fix"}})
	if !s.IsInstalled("fix") {
		t.Error("fix should be installed")
	}
	if s.IsInstalled("review") {
		t.Error("review should not be installed")
	}
}

func TestTimestamp(t *testing.T) {
	ts := Timestamp(time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.FixedZone("X", 3600)))
	if ts != "2026-01-02T02:04:05.006Z" {
		t.Errorf("Timestamp = %q", ts)
	}

	parsed, err := (&Config{InstalledAt: ts}).InstalledTime()
	if err != nil {
		t.Fatalf("InstalledTime failed: %v", err)
	}
	if parsed.Year() != 2026 || parsed.Hour() != 2 {
		t.Errorf("parsed = %v", parsed)
	}
}
