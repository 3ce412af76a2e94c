package registry

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
)

func (c *Client) fetchLocalRegistry() (*Registry, error) {
	p := filepath.Join(c.localPath, IndexFile)

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading local registry: %w", err)
	}

	reg, err := DecodeRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("parsing local registry %s: %w", p, err)
	}

	c.logger.Debug("using local registry", "path", p, "version", reg.Version, "modules", len(reg.Modules))
	return reg, nil
}

// fetchLocalModuleFiles reads a module from the local registry. A directory
// contributes every regular file directly inside it (no recursion); a file
// contributes itself under its base name.
func (c *Client) fetchLocalModuleFiles(modulePath string) FileSet {
	files := FileSet{}
	log := c.logger.With("module_path", modulePath)
	full := filepath.Join(c.localPath, filepath.FromSlash(modulePath))

	info, err := os.Stat(full)
	if err != nil {
		log.Warn("dropping module file", "file", path.Base(modulePath), "error", err)
		return files
	}

	if !info.IsDir() {
		data, err := os.ReadFile(full)
		if err != nil {
			log.Warn("dropping module file", "file", path.Base(modulePath), "error", err)
			return files
		}
		files[path.Base(modulePath)] = string(data)
		return files
	}

	entries, err := os.ReadDir(full)
	if err != nil {
		log.Warn("dropping module directory", "error", err)
		return files
	}

	for _, entry := range entries {
		entryPath := filepath.Join(full, entry.Name())

		// Stat follows symlinks so linked files count as regular files.
		fi, err := os.Stat(entryPath)
		if err != nil {
			log.Warn("dropping module file", "file", entry.Name(), "error", err)
			continue
		}
		if !fi.Mode().IsRegular() {
			continue
		}

		data, err := os.ReadFile(entryPath)
		if err != nil {
			log.Warn("dropping module file", "file", entry.Name(), "error", err)
			continue
		}
		files[entry.Name()] = string(data)
	}

	return files
}
