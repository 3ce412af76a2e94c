package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tienedev/shipkit-cli/internal/branding"
	"github.com/tienedev/shipkit-cli/internal/project"
	"github.com/tienedev/shipkit-cli/internal/registry"
	"github.com/tienedev/shipkit-cli/internal/ui"
)

var (
	listInstalled bool
	listCategory  string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List available or installed modules",
	Long: `List the modules offered by the registry, marking the ones installed in this
project. With --installed, only the modules recorded in .claude/shipkit.json are
shown and the registry is not contacted.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listInstalled, "installed", "i", false, "Show only installed modules")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category (skills, commands)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	if listInstalled {
		cfg, ok := s.store.ReadConfig()
		if !ok {
			ui.Warnf("%s is not initialized in this directory.", branding.DisplayName())
			ui.Info("Run " + ui.Highlight(branding.PackageSpec()+" init") + " first.")
			return nil
		}
		printInstalled(cfg)
		return nil
	}

	categories := registry.Categories
	if listCategory != "" {
		cat, err := registry.ParseCategory(listCategory)
		if err != nil {
			ui.Warn(err.Error())
			return nil
		}
		categories = []registry.Category{cat}
	}

	reg, fallback, err := s.installer.LoadRegistry(cmd.Context())
	if err != nil {
		ui.Errorf("Failed to read local registry at %s", s.client.Location())
		ui.Dim(err.Error())
		return nil
	}
	if fallback {
		ui.Warn("Using local fallback registry (registry not available)")
	} else {
		ui.OKf("Found %d modules", len(reg.Modules))
	}

	ui.Banner()

	installed := map[string]bool{}
	if cfg, ok := s.store.ReadConfig(); ok {
		for _, name := range cfg.Modules {
			installed[name] = true
		}
	}

	for _, cat := range categories {
		mods := registry.FilterByCategory(reg, cat)
		if len(mods) == 0 {
			continue
		}
		ui.Section(ui.CategoryTitle(string(cat)), categorySubtitles[cat])
		for _, m := range mods {
			ui.Module(m.Name, m.Description, installed[m.Name], m.Recommended)
		}
	}

	ui.Legend()
	ui.Newline()
	ui.Infof("Total: %s modules available", ui.Bold(fmt.Sprint(len(reg.Modules))))
	ui.Newline()
	return nil
}

func printInstalled(cfg *project.Config) {
	ui.Banner()
	ui.Section("Installed Modules", "")

	if len(cfg.Modules) == 0 {
		ui.Dim("    No modules installed.")
		ui.Newline()
		return
	}

	for _, name := range cfg.Modules {
		ui.Module(name, "", true, false)
	}
	ui.Newline()
	ui.Dim(fmt.Sprintf("    Total: %d modules", len(cfg.Modules)))
	if t, err := cfg.InstalledTime(); err == nil {
		ui.Dim(fmt.Sprintf("    Installed: %s", t.Local().Format("2006-01-02")))
	}
	ui.Newline()
}
