package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tienedev/shipkit-cli/internal/config"
	"github.com/tienedev/shipkit-cli/internal/install"
	"github.com/tienedev/shipkit-cli/internal/log"
	"github.com/tienedev/shipkit-cli/internal/project"
	"github.com/tienedev/shipkit-cli/internal/prompt"
	"github.com/tienedev/shipkit-cli/internal/registry"
)

// session holds the collaborators of one command invocation, all bound to
// the current working directory.
type session struct {
	project   project.Context
	store     *project.Store
	client    *registry.Client
	installer *install.Installer
	prompter  *prompt.Prompter
}

func newSession(cmd *cobra.Command) (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	settings := config.Current()
	if flagRegistry != "" {
		settings.LocalRegistry = flagRegistry
	}

	logger := log.Logger()
	opts := []registry.Option{
		registry.WithBaseURL(settings.RegistryURL),
		registry.WithTimeout(settings.Timeout),
		registry.WithLogger(logger),
	}
	if settings.LocalRegistry != "" {
		dir, err := filepath.Abs(settings.LocalRegistry)
		if err != nil {
			return nil, fmt.Errorf("resolving local registry %s: %w", settings.LocalRegistry, err)
		}
		opts = append(opts, registry.WithLocalPath(dir))
	}
	client := registry.New(opts...)
	logger.Debug("registry source", "location", client.Location(), "local", client.IsLocal())

	pctx := project.NewContext(cwd)
	store := project.NewStore(pctx, logger)

	return &session{
		project:   pctx,
		store:     store,
		client:    client,
		installer: install.New(client, store, install.WithLogger(logger)),
		prompter:  prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()),
	}, nil
}
