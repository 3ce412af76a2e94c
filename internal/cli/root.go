package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tienedev/shipkit-cli/internal/branding"
	"github.com/tienedev/shipkit-cli/internal/config"
	"github.com/tienedev/shipkit-cli/internal/log"
	"github.com/tienedev/shipkit-cli/internal/ui"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagDebug    bool
	flagRegistry string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` installs curated skills and slash commands into a project's
.claude/ directory and records what is installed in .claude/shipkit.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		log.Init(log.Options{
			Debug:  flagDebug || config.Current().Debug,
			Stderr: cmd.ErrOrStderr(),
		})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagRegistry, "registry", "", "Use a local registry directory instead of the remote registry")
}

// reportedError wraps an error whose message was already shown to the user.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return reportedError{err: err}
}

// Execute runs the root command with build info injected via ldflags.
// Errors not already shown are printed before returning.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		var r reportedError
		if !errors.As(err, &r) {
			ui.Error(err.Error())
		}
	}
	return err
}
