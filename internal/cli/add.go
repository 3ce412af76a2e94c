package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tienedev/shipkit-cli/internal/branding"
	"github.com/tienedev/shipkit-cli/internal/install"
	"github.com/tienedev/shipkit-cli/internal/registry"
	"github.com/tienedev/shipkit-cli/internal/ui"
)

var addForce bool

func init() {
	addCmd.Flags().BoolVarP(&addForce, "force", "f", false, "Force reinstall if already installed")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <module>",
	Short: "Add a module to your configuration",
	Long: `Install a single module into an initialized project and record it in
.claude/shipkit.json. Files are written to .claude/<category>/<module>/.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	res, err := s.installer.Add(cmd.Context(), name, install.AddOptions{Force: addForce})

	var notFound *install.ModuleNotFoundError
	switch {
	case err == nil:
	case errors.Is(err, install.ErrNotInitialized):
		ui.Errorf("%s is not initialized in this directory.", branding.DisplayName())
		ui.Info("Run " + ui.Highlight(branding.CLIName()+" init") + " first.")
		return reported(err)
	case errors.Is(err, install.ErrAlreadyInstalled):
		ui.Warnf("Module %q is already installed.", name)
		ui.Info("Use --force to reinstall.")
		return nil
	case errors.As(err, &notFound):
		ui.Errorf("Module %q not found in registry.", name)
		ui.Newline()
		ui.Info("Available modules:")
		for _, m := range notFound.Available {
			ui.Dim(fmt.Sprintf("  - %s: %s", m.Name, m.Description))
		}
		return reported(err)
	case errors.Is(err, registry.ErrRegistryUnavailable):
		ui.Error("Failed to fetch registry")
		ui.Dim(err.Error())
		return reported(err)
	default:
		return fmt.Errorf("adding %s: %w", name, err)
	}

	ui.OKf("Installed %s", name)
	ui.Newline()
	ui.OKf("Module %q added successfully!", name)
	ui.Dim(fmt.Sprintf("Category: %s", res.Module.Category))
	ui.Dim(fmt.Sprintf("Path: %s/%s/%s/", branding.StateDir(), res.Module.Category, res.Module.Name))
	if res.RegistryNewer {
		ui.Infof("The registry has a newer version than this project. Run %s to refresh.", ui.Highlight(branding.CLIName()+" init"))
	}
	return nil
}
