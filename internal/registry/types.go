package registry

import (
	"encoding/json"
	"fmt"
)

// Category is the kind of content a module installs.
type Category string

const (
	CategorySkills   Category = "skills"
	CategoryCommands Category = "commands"
)

// Categories lists every category in display order.
var Categories = []Category{CategorySkills, CategoryCommands}

// ParseCategory converts s to a Category, rejecting unknown values.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategorySkills, CategoryCommands:
		return c, nil
	default:
		return "", fmt.Errorf("unknown module category %q (want skills or commands)", s)
	}
}

// UnmarshalJSON rejects categories other than skills and commands.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("category must be a string: %w", err)
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Module is one installable entry of the registry index.
type Module struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Path         string   `json:"path"` // location relative to the registry root
	Recommended  bool     `json:"recommended,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// Registry is the index of available modules.
type Registry struct {
	Version string   `json:"version"`
	Modules []Module `json:"modules"`
}

// Manifest lists the files of a multi-file module.
type Manifest struct {
	Files []string `json:"files"`
}

// FileSet maps a module-relative filename to its content.
type FileSet map[string]string

// Well-known registry file names.
const (
	IndexFile    = "registry.json"
	ManifestFile = "manifest.json"
)
