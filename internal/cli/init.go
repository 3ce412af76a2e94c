package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tienedev/shipkit-cli/internal/branding"
	"github.com/tienedev/shipkit-cli/internal/install"
	"github.com/tienedev/shipkit-cli/internal/prompt"
	"github.com/tienedev/shipkit-cli/internal/registry"
	"github.com/tienedev/shipkit-cli/internal/ui"
)

var (
	initYes     bool
	initMinimal bool
)

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Skip confirmation prompts")
	initCmd.Flags().BoolVarP(&initMinimal, "minimal", "m", false, "Install only recommended modules")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize " + branding.DisplayName() + " in the current directory",
	Long: `Select skills and commands from the registry and install them into .claude/.

An existing configuration is replaced after confirmation. With --minimal, or
with --yes when stdin is not a terminal, only recommended modules are installed.
When the remote registry cannot be reached a built-in snapshot is used.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var categorySubtitles = map[registry.Category]string{
	registry.CategorySkills:   "Capabilities and patterns for Claude Code",
	registry.CategoryCommands: "Slash commands for common workflows",
}

func runInit(cmd *cobra.Command, args []string) error {
	ui.Banner()

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	if s.project.HasExistingConfig && !initYes {
		overwrite, err := s.prompter.Confirm(fmt.Sprintf("A %s configuration already exists. Do you want to overwrite it?", branding.DisplayName()), true)
		if err != nil {
			return promptError(err)
		}
		if !overwrite {
			ui.Info("Init cancelled. Existing configuration preserved.")
			return nil
		}
	}

	reg, fallback, err := s.installer.LoadRegistry(cmd.Context())
	if err != nil {
		ui.Error("Failed to read local registry")
		return reported(fmt.Errorf("loading registry from %s: %w", s.client.Location(), err))
	}
	if fallback {
		ui.Warn("Failed to fetch registry")
		ui.Info("Using local fallback registry...")
	} else {
		ui.OKf("Found %d available modules", len(reg.Modules))
	}
	ui.Newline()

	var selection []string
	if initMinimal || (initYes && !ui.IsInteractive()) {
		selection = install.RecommendedSelection(reg)
		ui.Info("Using minimal configuration (recommended modules only)")
	} else {
		for _, cat := range registry.Categories {
			mods := registry.FilterByCategory(reg, cat)
			if len(mods) == 0 {
				continue
			}
			ui.Section(ui.CategoryTitle(string(cat)), categorySubtitles[cat])
			names, err := s.prompter.SelectModules(mods, fmt.Sprintf("Select %s to install", cat))
			if err != nil {
				return promptError(err)
			}
			selection = append(selection, names...)
		}
	}

	ui.Newline()
	printSelection(reg, selection)
	ui.Newline()

	if !initYes {
		proceed, err := s.prompter.Confirm("Proceed with installation?", true)
		if err != nil {
			return promptError(err)
		}
		if !proceed {
			ui.Warn("Operation cancelled")
			return nil
		}
	}

	res, err := s.installer.Init(cmd.Context(), reg, selection)
	if err != nil {
		return fmt.Errorf("installing modules: %w", err)
	}

	ui.OKf("Installed %d modules", len(res.Installed))
	ui.OKf("Generated %s", branding.ContextFile())
	ui.Success(len(res.Installed))
	ui.NextSteps()
	return nil
}

func printSelection(reg *registry.Registry, selection []string) {
	if len(selection) == 0 {
		ui.Warnf("No modules selected. Creating empty %s structure.", branding.StateDir())
		return
	}

	ui.Infof("Selected %s modules:", ui.Bold(fmt.Sprint(len(selection))))
	byCat := install.SplitByCategory(reg, selection)
	for _, cat := range registry.Categories {
		if names := byCat[cat]; len(names) > 0 {
			ui.Dim(fmt.Sprintf("    %s: %s", ui.CategoryTitle(string(cat)), strings.Join(names, ", ")))
		}
	}
}

// promptError turns an aborted prompt into a clean cancellation.
func promptError(err error) error {
	if errors.Is(err, prompt.ErrAborted) {
		ui.Newline()
		ui.Warn("Operation cancelled")
		return nil
	}
	return err
}
