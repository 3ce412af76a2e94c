package install

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"path"
	"slices"
	"time"

	"github.com/tienedev/shipkit-cli/internal/branding"
	"github.com/tienedev/shipkit-cli/internal/project"
	"github.com/tienedev/shipkit-cli/internal/registry"
)

// Fetcher is the registry access the workflows need. *registry.Client
// implements it.
type Fetcher interface {
	FetchRegistry(ctx context.Context) (*registry.Registry, error)
	FetchModuleFiles(ctx context.Context, modulePath string) registry.FileSet
}

// Installer runs the init and add workflows against one project.
type Installer struct {
	fetcher Fetcher
	store   *project.Store
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures an Installer.
type Option func(*Installer)

// WithLogger sets the logger for skip and drop diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(i *Installer) {
		if l != nil {
			i.logger = l
		}
	}
}

// WithClock overrides the time source used for installedAt.
func WithClock(now func() time.Time) Option {
	return func(i *Installer) {
		if now != nil {
			i.now = now
		}
	}
}

// New creates an Installer writing through store.
func New(fetcher Fetcher, store *project.Store, opts ...Option) *Installer {
	i := &Installer{
		fetcher: fetcher,
		store:   store,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// LoadRegistry fetches the registry for init and list. When the remote
// registry is unavailable it returns the offline snapshot and reports
// fallback=true. Local override failures are returned unchanged.
func (i *Installer) LoadRegistry(ctx context.Context) (reg *registry.Registry, fallback bool, err error) {
	reg, err = i.fetcher.FetchRegistry(ctx)
	if err == nil {
		return reg, false, nil
	}
	if !errors.Is(err, registry.ErrRegistryUnavailable) {
		return nil, false, err
	}

	i.logger.Debug("using fallback registry", "error", err)
	return registry.Fallback(), true, nil
}

// InitResult summarizes a full install.
type InitResult struct {
	// Installed lists modules that produced at least one file.
	Installed []string
	// Selected is the selection recorded in shipkit.json.
	Selected []string
	// Skipped lists selected names absent from the registry.
	Skipped []string
	Version string
}

// Init installs selection from reg, replaces shipkit.json and regenerates
// the project context document.
func (i *Installer) Init(ctx context.Context, reg *registry.Registry, selection []string) (*InitResult, error) {
	if err := i.store.EnsureStateDir(); err != nil {
		return nil, err
	}

	res := &InitResult{Selected: slices.Clone(selection), Version: reg.Version}
	for _, name := range selection {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m, ok := registry.Find(reg, name)
		if !ok {
			i.logger.Debug("selected module not in registry, skipping", "module", name)
			res.Skipped = append(res.Skipped, name)
			continue
		}

		files := i.fetcher.FetchModuleFiles(ctx, m.Path)
		if len(files) == 0 {
			i.logger.Warn("module produced no files", "module", name, "module_path", m.Path)
			continue
		}

		for _, file := range sortedFiles(files) {
			if err := i.store.WriteFile(initTarget(m, file), files[file]); err != nil {
				return nil, fmt.Errorf("installing %s: %w", name, err)
			}
		}
		res.Installed = append(res.Installed, name)
	}

	cfg := &project.Config{
		Version:     reg.Version,
		Modules:     res.Selected,
		InstalledAt: project.Timestamp(i.now()),
	}
	if err := i.store.WriteConfig(cfg); err != nil {
		return nil, err
	}

	doc, err := RenderContextDoc(reg, res.Selected)
	if err != nil {
		return nil, err
	}
	if err := i.store.WriteProjectFile(branding.ContextFile(), doc); err != nil {
		return nil, err
	}

	return res, nil
}

// AddOptions controls Add.
type AddOptions struct {
	// Force reinstalls a module that is already recorded.
	Force bool
}

// AddResult summarizes an incremental install.
type AddResult struct {
	Module registry.Module
	// Files are the state-directory paths written, sorted.
	Files []string
	// Appended is false when the name was already recorded.
	Appended bool
	// RegistryNewer reports a registry version newer than the one recorded
	// at init.
	RegistryNewer bool
}

// Add installs a single module into an initialized project.
func (i *Installer) Add(ctx context.Context, name string, opts AddOptions) (*AddResult, error) {
	cfg, ok := i.store.ReadConfig()
	if !ok {
		return nil, ErrNotInitialized
	}
	if !opts.Force && cfg.Has(name) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyInstalled, name)
	}

	reg, err := i.fetcher.FetchRegistry(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching registry: %w", err)
	}

	m, ok := registry.Find(reg, name)
	if !ok {
		return nil, &ModuleNotFoundError{Name: name, Available: reg.Modules}
	}

	files := i.fetcher.FetchModuleFiles(ctx, m.Path)
	if len(files) == 0 {
		i.logger.Warn("module produced no files", "module", name, "module_path", m.Path)
	}

	res := &AddResult{
		Module:        m,
		RegistryNewer: registry.IsNewer(reg.Version, cfg.Version),
	}
	for _, file := range sortedFiles(files) {
		target := path.Join(string(m.Category), m.Name, file)
		if err := i.store.WriteFile(target, files[file]); err != nil {
			return nil, fmt.Errorf("installing %s: %w", name, err)
		}
		res.Files = append(res.Files, target)
	}

	if !cfg.Has(name) {
		cfg.Modules = append(cfg.Modules, name)
		if err := i.store.WriteConfig(cfg); err != nil {
			return nil, err
		}
		res.Appended = true
	}

	return res, nil
}

// initTarget maps a fetched file to its init-time location. Every file of
// a command module lands on commands/<name>.md, so the last one written
// wins.
func initTarget(m registry.Module, file string) string {
	if m.Category == registry.CategoryCommands {
		return path.Join(project.CommandsDir, m.Name+".md")
	}
	return path.Join(project.SkillsDir, m.Name, file)
}

func sortedFiles(files registry.FileSet) []string {
	return slices.Sorted(maps.Keys(files))
}
