// Package branding provides compile-time identity values for the CLI.
//
// Values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Hard defaults cover a missing or empty file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	Tagline     string `yaml:"tagline"`
	EnvPrefix   string `yaml:"env_prefix"`
	HomeDir     string `yaml:"home_dir"`
	StateDir    string `yaml:"state_dir"`
	ConfigFile  string `yaml:"config_file"`
	ContextFile string `yaml:"context_file"`
	RegistryURL string `yaml:"registry_url"`
	PackageSpec string `yaml:"package_spec"`
	Website     string `yaml:"website"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "shipkit",
			DisplayName: "ShipKit",
			Description: "Configure Claude Code for any project",
			Tagline:     "Claude Code Accelerator",
			EnvPrefix:   "SHIPKIT",
			HomeDir:     ".shipkit",
			StateDir:    ".claude",
			ConfigFile:  "shipkit.json",
			ContextFile: "CLAUDE.md",
			RegistryURL: "https://raw.githubusercontent.com/tienedev/shipkit-cli/main/registry",
			PackageSpec: "npx @tienedev/shipkit",
			Website:     "https://shipkit.xyz",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "shipkit").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "ShipKit").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// Tagline returns the one-line subtitle printed in the banner.
func Tagline() string { load(); return defaults.Tagline }

// EnvPrefix returns the environment variable prefix (e.g., "SHIPKIT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// HomeDir returns the dot-directory name under $HOME holding user settings.
func HomeDir() string { load(); return defaults.HomeDir }

// StateDir returns the project-local state directory name (e.g., ".claude").
func StateDir() string { load(); return defaults.StateDir }

// ConfigFile returns the installed-state file name inside the state directory.
func ConfigFile() string { load(); return defaults.ConfigFile }

// ContextFile returns the generated project context document name.
func ContextFile() string { load(); return defaults.ContextFile }

// RegistryURL returns the default remote registry base URL.
func RegistryURL() string { load(); return defaults.RegistryURL }

// PackageSpec returns the command users type to run the CLI from a package
// manager, used in guidance messages.
func PackageSpec() string { load(); return defaults.PackageSpec }

// Website returns the product website.
func Website() string { load(); return defaults.Website }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("debug") → "SHIPKIT_DEBUG".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
