package registry

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

const (
	registrySchema = "registry.schema.json"
	manifestSchema = "manifest.schema.json"
)

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
	printer     = message.NewPrinter(language.English)
)

// ValidationIssue is a single schema violation.
type ValidationIssue struct {
	Path    string // instance location, e.g. "/modules/3/category"
	Message string
	Keyword string
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// SchemaError reports that a document does not match its schema.
type SchemaError struct {
	Document string
	Issues   []ValidationIssue
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("invalid %s: %s", e.Document, strings.Join(parts, "; "))
}

// loadSchemas compiles the embedded schemas once.
func loadSchemas() (map[string]*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for _, name := range []string{registrySchema, manifestSchema} {
			raw, err := schemaFS.ReadFile("schema/" + name)
			if err != nil {
				schemasErr = fmt.Errorf("reading schema %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				schemasErr = fmt.Errorf("unmarshaling schema %s: %w", name, err)
				return
			}
			if err := c.AddResource(name, doc); err != nil {
				schemasErr = fmt.Errorf("adding schema resource %s: %w", name, err)
				return
			}
		}

		compiled := make(map[string]*jsonschema.Schema, 2)
		for _, name := range []string{registrySchema, manifestSchema} {
			s, err := c.Compile(name)
			if err != nil {
				schemasErr = fmt.Errorf("compiling schema %s: %w", name, err)
				return
			}
			compiled[name] = s
		}
		schemas = compiled
	})
	return schemas, schemasErr
}

// validate checks raw JSON against the named schema.
func validate(data []byte, schemaName, document string) error {
	all, err := loadSchemas()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing %s JSON: %w", document, err)
	}

	err = all[schemaName].Validate(inst)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validating %s: %w", document, err)
	}
	return &SchemaError{Document: document, Issues: extractIssues(ve)}
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return deduplicateIssues(issues)
}

func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		loc := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			loc = ""
		}

		keyword := ""
		msg := ""
		if ve.ErrorKind != nil {
			if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Container keywords only say "a child failed".
		if keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{Path: loc, Message: msg, Keyword: keyword})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}

// DecodeRegistry validates and decodes a registry index document.
// Beyond the schema it enforces unique module names, a semver version and
// module paths that stay inside the registry root.
func DecodeRegistry(data []byte) (*Registry, error) {
	if err := validate(data, registrySchema, IndexFile); err != nil {
		return nil, err
	}

	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", IndexFile, err)
	}

	if _, err := parseSemver(reg.Version); err != nil {
		return nil, fmt.Errorf("invalid registry version %q: %w", reg.Version, err)
	}

	seen := make(map[string]bool, len(reg.Modules))
	for i, m := range reg.Modules {
		if seen[m.Name] {
			return nil, fmt.Errorf("duplicate module name %q at /modules/%d", m.Name, i)
		}
		seen[m.Name] = true

		if !IsSafeRelPath(m.Path) {
			return nil, fmt.Errorf("module %q has unsafe path %q", m.Name, m.Path)
		}
	}

	return &reg, nil
}

// DecodeManifest validates and decodes a module manifest document.
func DecodeManifest(data []byte) (*Manifest, error) {
	if err := validate(data, manifestSchema, ManifestFile); err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", ManifestFile, err)
	}
	return &m, nil
}

// IsSafeRelPath reports whether p is a relative slash-separated path that
// does not climb out of its root.
func IsSafeRelPath(p string) bool {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return false
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return false
		}
	}
	return path.Clean(p) != "."
}
