package install

import (
	"errors"
	"fmt"

	"github.com/tienedev/shipkit-cli/internal/registry"
)

var (
	// ErrNotInitialized is returned by Add when the project has no readable
	// shipkit.json.
	ErrNotInitialized = errors.New("shipkit is not initialized in this directory")

	// ErrAlreadyInstalled is returned by Add when the module is already
	// recorded and Force is not set.
	ErrAlreadyInstalled = errors.New("module is already installed")

	// ErrModuleNotFound matches any *ModuleNotFoundError.
	ErrModuleNotFound = errors.New("module not found in registry")
)

// ModuleNotFoundError reports a module name missing from the registry,
// together with every module that is available.
type ModuleNotFoundError struct {
	Name      string
	Available []registry.Module
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("module %q not found in registry", e.Name)
}

// Is lets errors.Is(err, ErrModuleNotFound) match.
func (e *ModuleNotFoundError) Is(target error) bool {
	return target == ErrModuleNotFound
}
