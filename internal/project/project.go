package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/tienedev/shipkit-cli/internal/branding"
)

const (
	SkillsDir   = "skills"
	CommandsDir = "commands"

	// TimestampLayout is the ISO-8601 form used for Config.InstalledAt.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Config is the .claude/shipkit.json record of what is installed.
type Config struct {
	Version     string   `json:"version"`
	Modules     []string `json:"modules"`
	InstalledAt string   `json:"installedAt"`
}

// Has reports whether name is recorded as installed.
func (c *Config) Has(name string) bool {
	return slices.Contains(c.Modules, name)
}

// InstalledTime parses InstalledAt.
func (c *Config) InstalledTime() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, c.InstalledAt)
}

// Timestamp formats t for Config.InstalledAt (UTC, millisecond precision).
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Context describes the project an invocation operates on. It is derived
// from the working directory once and passed explicitly to every component.
type Context struct {
	Cwd               string
	ClaudeDir         string
	ConfigPath        string
	HasExistingConfig bool
}

// NewContext builds the Context for the project rooted at cwd.
func NewContext(cwd string) Context {
	claudeDir := filepath.Join(cwd, branding.StateDir())
	configPath := filepath.Join(claudeDir, branding.ConfigFile())
	_, err := os.Stat(configPath)

	return Context{
		Cwd:               cwd,
		ClaudeDir:         claudeDir,
		ConfigPath:        configPath,
		HasExistingConfig: err == nil,
	}
}

// Store reads and writes a project's state directory.
type Store struct {
	ctx    Context
	logger *slog.Logger
}

// NewStore returns a Store for ctx. A nil logger uses slog.Default().
func NewStore(ctx Context, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{ctx: ctx, logger: logger}
}

// Context returns the project context the store operates on.
func (s *Store) Context() Context {
	return s.ctx
}

// EnsureStateDir creates .claude/ and its skills/ and commands/ subdirectories.
// It is a no-op for directories that already exist.
func (s *Store) EnsureStateDir() error {
	for _, dir := range []string{s.ctx.ClaudeDir, filepath.Join(s.ctx.ClaudeDir, SkillsDir), filepath.Join(s.ctx.ClaudeDir, CommandsDir)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// StateDirExists reports whether the .claude directory is present.
func (s *Store) StateDirExists() bool {
	info, err := os.Stat(s.ctx.ClaudeDir)
	return err == nil && info.IsDir()
}

// WriteFile writes content to relPath inside the state directory, creating
// parent directories and overwriting any existing file.
func (s *Store) WriteFile(relPath, content string) error {
	return s.write(s.ctx.ClaudeDir, relPath, content)
}

// WriteProjectFile writes content to relPath relative to the project root.
func (s *Store) WriteProjectFile(relPath, content string) error {
	return s.write(s.ctx.Cwd, relPath, content)
}

func (s *Store) write(root, relPath, content string) error {
	full, err := within(root, relPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", relPath, err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", relPath, err)
	}

	s.logger.Debug("wrote file", "path", full)
	return nil
}

// within joins relPath onto root and rejects results outside root.
func within(root, relPath string) (string, error) {
	if filepath.IsAbs(relPath) {
		return "", fmt.Errorf("refusing to write absolute path %s", relPath)
	}
	full := filepath.Join(root, filepath.FromSlash(relPath))
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("refusing to write %s outside %s", relPath, root)
	}
	return full, nil
}

// ReadConfig loads shipkit.json. It returns false when the file is missing
// or cannot be parsed; a parse failure is logged as a warning.
func (s *Store) ReadConfig() (*Config, bool) {
	data, err := os.ReadFile(s.ctx.ConfigPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to read config", "path", s.ctx.ConfigPath, "error", err)
		}
		return nil, false
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		s.logger.Warn("failed to parse config", "path", s.ctx.ConfigPath, "error", err)
		return nil, false
	}
	return &cfg, true
}

// WriteConfig serializes cfg to shipkit.json, replacing any previous file.
func (s *Store) WriteConfig(cfg *Config) error {
	if cfg.Modules == nil {
		cfg.Modules = []string{}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.ctx.ConfigPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(s.ctx.ConfigPath, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	s.ctx.HasExistingConfig = true
	return nil
}

// IsInstalled reports whether name is recorded in the config.
func (s *Store) IsInstalled(name string) bool {
	cfg, ok := s.ReadConfig()
	return ok && cfg.Has(name)
}
