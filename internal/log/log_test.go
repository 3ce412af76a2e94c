package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestInit_DefaultSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Stderr: &buf})

	Debug("hidden")
	Info("hidden too")
	Warn("shown", "module", "fix")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug/info should be suppressed, got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "module=fix") {
		t.Errorf("expected warning with attrs, got %q", out)
	}
}

func TestInit_DebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Debug: true, Stderr: &buf})

	Debug("wrote file", "path", "skills/debugging/SKILL.md")

	if !strings.Contains(buf.String(), "wrote file") {
		t.Errorf("expected debug output, got %q", buf.String())
	}
}

func TestInit_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{JSONFormat: true, Stderr: &buf})

	Error("boom", "code", 1)

	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Stderr: &buf})

	With("component", "registry").Warn("dropped")

	if !strings.Contains(buf.String(), "component=registry") {
		t.Errorf("expected component attr, got %q", buf.String())
	}
}
