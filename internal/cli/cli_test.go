package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tienedev/shipkit-cli/internal/install"
	"github.com/tienedev/shipkit-cli/internal/project"
	"github.com/tienedev/shipkit-cli/internal/ui"
)

const fixtureRegistry = `{
  "version": "1.0.0",
  "modules": [
    {"name": "debugging", "description": "Systematic debugging", "category": "skills", "path": "skills/debugging", "recommended": true},
    {"name": "nextjs", "description": "Next.js patterns", "category": "skills", "path": "skills/nextjs"},
    {"name": "fix", "description": "Quick fixes", "category": "commands", "path": "commands/fix.md", "recommended": true},
    {"name": "plan", "description": "Create plans", "category": "commands", "path": "commands/plan.md"}
  ]
}`

// writeFixtureRegistry lays out a local registry and returns its root.
func writeFixtureRegistry(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"registry.json":             fixtureRegistry,
		"skills/debugging/SKILL.md": "# Debugging",
		"skills/nextjs/SKILL.md":    "# Next.js",
		"commands/fix.md":           "# /fix",
		"commands/plan.md":          "# /plan",
	}
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return root
}

// setupCLI isolates HOME, the working directory and all package state.
// It returns the project directory.
func setupCLI(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DEBUG", "")
	t.Setenv("NO_COLOR", "1")

	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func resetFlags() {
	flagDebug, flagRegistry = false, ""
	initYes, initMinimal = false, false
	addForce = false
	listInstalled, listCategory = false, ""
	versionShort, versionJSON = false, false
}

// runCLI executes the root command with stdin and returns everything
// written to the terminal.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var buf bytes.Buffer
	ui.SetColorEnabled(false)
	ui.SetWriter(&buf)
	t.Cleanup(func() { ui.SetWriter(nil) })

	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func readConfig(t *testing.T, dir string) *project.Config {
	t.Helper()
	cfg, ok := project.NewStore(project.NewContext(dir), nil).ReadConfig()
	require.True(t, ok, "expected a readable shipkit.json")
	return cfg
}

func assertFile(t *testing.T, path, content string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestInit_Minimal(t *testing.T) {
	dir := setupCLI(t)
	reg := writeFixtureRegistry(t)

	out, err := runCLI(t, "", "init", "--minimal", "--yes", "--registry", reg)
	require.NoError(t, err)

	assertFile(t, filepath.Join(dir, ".claude", "skills", "debugging", "SKILL.md"), "# Debugging")
	assertFile(t, filepath.Join(dir, ".claude", "commands", "fix.md"), "# /fix")
	assert.NoFileExists(t, filepath.Join(dir, ".claude", "skills", "nextjs", "SKILL.md"))
	assert.FileExists(t, filepath.Join(dir, "CLAUDE.md"))

	cfg := readConfig(t, dir)
	assert.Equal(t, []string{"debugging", "fix"}, cfg.Modules)
	assert.Equal(t, "1.0.0", cfg.Version)

	assert.Contains(t, out, "Found 4 available modules")
	assert.Contains(t, out, "Using minimal configuration")
	assert.Contains(t, out, "Skills: debugging")
	assert.Contains(t, out, "2 modules installed")
}

func TestInit_Interactive(t *testing.T) {
	dir := setupCLI(t)
	reg := writeFixtureRegistry(t)

	// skills: nextjs; commands: none; proceed.
	out, err := runCLI(t, "2\nnone\ny\n", "init", "--registry", reg)
	require.NoError(t, err)

	assert.Contains(t, out, "Select skills to install")
	assert.Contains(t, out, "Select commands to install")
	assert.Contains(t, out, "Proceed with installation?")

	cfg := readConfig(t, dir)
	assert.Equal(t, []string{"nextjs"}, cfg.Modules)
	assertFile(t, filepath.Join(dir, ".claude", "skills", "nextjs", "SKILL.md"), "# Next.js")
}

func TestInit_DeclineProceedWritesNothing(t *testing.T) {
	dir := setupCLI(t)
	reg := writeFixtureRegistry(t)

	out, err := runCLI(t, "\n\nn\n", "init", "--registry", reg)
	require.NoError(t, err)
	assert.Contains(t, out, "Operation cancelled")
	assert.NoDirExists(t, filepath.Join(dir, ".claude"))
}

func TestInit_ExistingConfigDeclined(t *testing.T) {
	dir := setupCLI(t)
	reg := writeFixtureRegistry(t)

	_, err := runCLI(t, "", "init", "-m", "-y", "--registry", reg)
	require.NoError(t, err)
	before, err := os.ReadFile(filepath.Join(dir, ".claude", "shipkit.json"))
	require.NoError(t, err)

	out, err := runCLI(t, "n\n", "init", "--registry", reg)
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
	assert.Contains(t, out, "Existing configuration preserved")

	after, err := os.ReadFile(filepath.Join(dir, ".claude", "shipkit.json"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestInit_EmptySelection(t *testing.T) {
	dir := setupCLI(t)
	reg := writeFixtureRegistry(t)

	out, err := runCLI(t, "none\nnone\n\n", "init", "--registry", reg)
	require.NoError(t, err)
	assert.Contains(t, out, "No modules selected")
	assert.Contains(t, out, "0 modules installed")

	assert.DirExists(t, filepath.Join(dir, ".claude", "skills"))
	assert.DirExists(t, filepath.Join(dir, ".claude", "commands"))
	assert.Empty(t, readConfig(t, dir).Modules)
}

func TestInit_UnreachableRegistryUsesFallback(t *testing.T) {
	dir := setupCLI(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	t.Setenv("SHIPKIT_REGISTRY_URL", url)
	t.Setenv("SHIPKIT_TIMEOUT", "2s")

	out, err := runCLI(t, "", "init", "--minimal", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Using local fallback registry")

	cfg := readConfig(t, dir)
	assert.Equal(t, "0.1.0", cfg.Version)
	assert.Equal(t, []string{
		"context-management", "quality-enforcement", "rescue-debug", "debugging", "code-review", "fix", "review",
	}, cfg.Modules)
	assert.Contains(t, out, "0 modules installed")
}

func TestInit_BadLocalRegistryFails(t *testing.T) {
	dir := setupCLI(t)

	out, err := runCLI(t, "", "init", "-m", "-y", "--registry", filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.Contains(t, out, "Failed to read local registry")
	assert.NoFileExists(t, filepath.Join(dir, ".claude", "shipkit.json"))
}

func TestAdd_NotInitialized(t *testing.T) {
	dir := setupCLI(t)
	reg := writeFixtureRegistry(t)

	out, err := runCLI(t, "", "add", "fix", "--registry", reg)
	require.ErrorIs(t, err, install.ErrNotInitialized)
	assert.Contains(t, out, "not initialized")
	assert.NoDirExists(t, filepath.Join(dir, ".claude"))
}

func TestAdd_InstallsAndAppends(t *testing.T) {
	dir := setupCLI(t)
	reg := writeFixtureRegistry(t)

	_, err := runCLI(t, "", "init", "-m", "-y", "--registry", reg)
	require.NoError(t, err)

	out, err := runCLI(t, "", "add", "nextjs", "--registry", reg)
	require.NoError(t, err)
	assert.Contains(t, out, `Module "nextjs" added successfully!`)
	assert.Contains(t, out, "Path: .claude/skills/nextjs/")

	assertFile(t, filepath.Join(dir, ".claude", "skills", "nextjs", "SKILL.md"), "# Next.js")
	assert.Equal(t, []string{"debugging", "fix", "nextjs"}, readConfig(t, dir).Modules)
}

func TestAdd_CommandUsesCategoryLayout(t *testing.T) {
	dir := setupCLI(t)
	reg := writeFixtureRegistry(t)

	_, err := runCLI(t, "", "init", "-m", "-y", "--registry", reg)
	require.NoError(t, err)
	_, err = runCLI(t, "", "add", "plan", "--registry", reg)
	require.NoError(t, err)

	assertFile(t, filepath.Join(dir, ".claude", "commands", "plan", "plan.md"), "# /plan")
}

func TestAdd_AlreadyInstalled(t *testing.T) {
	dir := setupCLI(t)
	reg := writeFixtureRegistry(t)

	_, err := runCLI(t, "", "init", "-m", "-y", "--registry", reg)
	require.NoError(t, err)

	out, err := runCLI(t, "", "add", "fix", "--registry", reg)
	require.NoError(t, err)
	assert.Contains(t, out, `Module "fix" is already installed.`)
	assert.Contains(t, out, "--force")

	out, err = runCLI(t, "", "add", "fix", "-f", "--registry", reg)
	require.NoError(t, err)
	assert.Contains(t, out, "added successfully")
	assert.Equal(t, []string{"debugging", "fix"}, readConfig(t, dir).Modules)
}

func TestAdd_NotFound(t *testing.T) {
	dir := setupCLI(t)
	reg := writeFixtureRegistry(t)

	_, err := runCLI(t, "", "init", "-m", "-y", "--registry", reg)
	require.NoError(t, err)

	out, err := runCLI(t, "", "add", "ghost", "--registry", reg)
	require.ErrorIs(t, err, install.ErrModuleNotFound)
	assert.Contains(t, out, `Module "ghost" not found in registry.`)
	assert.Contains(t, out, "  - debugging: Systematic debugging")
	assert.Contains(t, out, "  - plan: Create plans")
	assert.Equal(t, []string{"debugging", "fix"}, readConfig(t, dir).Modules)
}

func TestList_Available(t *testing.T) {
	setupCLI(t)
	reg := writeFixtureRegistry(t)

	_, err := runCLI(t, "", "init", "-m", "-y", "--registry", reg)
	require.NoError(t, err)

	out, err := runCLI(t, "", "list", "--registry", reg)
	require.NoError(t, err)
	assert.Contains(t, out, "▸ Skills")
	assert.Contains(t, out, "▸ Commands")
	assert.Contains(t, out, "● debugging ★")
	assert.Contains(t, out, "○ nextjs\n")
	assert.Contains(t, out, "Total: 4 modules available")
}

func TestList_CategoryFilterAndAlias(t *testing.T) {
	setupCLI(t)
	reg := writeFixtureRegistry(t)

	out, err := runCLI(t, "", "ls", "-c", "commands", "--registry", reg)
	require.NoError(t, err)
	assert.Contains(t, out, "▸ Commands")
	assert.NotContains(t, out, "▸ Skills")
	assert.NotContains(t, out, "debugging")
}

func TestList_UnknownCategory(t *testing.T) {
	setupCLI(t)
	reg := writeFixtureRegistry(t)

	out, err := runCLI(t, "", "list", "-c", "agents", "--registry", reg)
	require.NoError(t, err)
	assert.Contains(t, out, `unknown module category "agents"`)
}

func TestList_InstalledWithoutConfig(t *testing.T) {
	dir := setupCLI(t)

	out, err := runCLI(t, "", "list", "--installed")
	require.NoError(t, err)
	assert.Contains(t, out, "not initialized")
	assert.NoDirExists(t, filepath.Join(dir, ".claude"))
}

func TestList_Installed(t *testing.T) {
	setupCLI(t)
	reg := writeFixtureRegistry(t)

	_, err := runCLI(t, "", "init", "-m", "-y", "--registry", reg)
	require.NoError(t, err)

	out, err := runCLI(t, "", "list", "-i")
	require.NoError(t, err)
	assert.Contains(t, out, "Installed Modules")
	assert.Contains(t, out, "● debugging")
	assert.Contains(t, out, "● fix")
	assert.Contains(t, out, "Total: 2 modules")
	assert.Contains(t, out, "Installed: ")
}

func TestConfigSetGet(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "", "config", "set", "timeout", "10s")
	require.NoError(t, err)
	assert.Equal(t, "Set timeout = 10s\n", out)

	out, err = runCLI(t, "", "config", "get", "timeout")
	require.NoError(t, err)
	assert.Equal(t, "10s\n", out)

	_, err = runCLI(t, "", "config", "set", "colour", "red")
	assert.Error(t, err)
	_, err = runCLI(t, "", "config", "get", "colour")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	setupCLI(t)
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2026-10-19"

	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "shipkit version 1.2.3 (commit: abc123, built: 2026-10-19)\n", out)

	out, err = runCLI(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)

	out, err = runCLI(t, "", "version", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.2.3","commit":"abc123","date":"2026-10-19"}`, out)
}
