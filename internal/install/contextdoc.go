package install

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/tienedev/shipkit-cli/internal/branding"
	"github.com/tienedev/shipkit-cli/internal/registry"
)

var contextDocTemplate = template.Must(template.New("context").Parse(`# Project Configuration

> Generated by [{{.DisplayName}}]({{.Website}}) v{{.Version}}

## Installed Modules

{{if .Modules}}{{range .Modules}}- **{{.Name}}**: {{.Description}}
{{end}}{{else}}No modules installed
{{end}}
## Usage

Claude Code will automatically load skills from ` + "`{{.StateDir}}/skills/`" + ` and commands from ` + "`{{.StateDir}}/commands/`" + `.

### Available Commands

Check ` + "`{{.StateDir}}/commands/`" + ` for available slash commands like:
- ` + "`/fix`" + ` - Quick fixes for lint, types, tests, build
- ` + "`/review`" + ` - Code review with quality checklist
- ` + "`/plan`" + ` - Create implementation plans

### Available Skills

Check ` + "`{{.StateDir}}/skills/`" + ` for capabilities like:
- Debugging methodology
- Code review patterns
- Framework-specific knowledge

---

*Regenerate this file with ` + "`{{.CLIName}} init`" + `*
`))

type contextDocData struct {
	DisplayName string
	Website     string
	Version     string
	StateDir    string
	CLIName     string
	Modules     []registry.Module
}

// RenderContextDoc renders the project context document for the installed
// names. Names missing from reg are left out.
func RenderContextDoc(reg *registry.Registry, installed []string) (string, error) {
	data := contextDocData{
		DisplayName: branding.DisplayName(),
		Website:     branding.Website(),
		Version:     reg.Version,
		StateDir:    branding.StateDir(),
		CLIName:     branding.CLIName(),
	}
	for _, name := range installed {
		if m, ok := registry.Find(reg, name); ok {
			data.Modules = append(data.Modules, m)
		}
	}

	var buf bytes.Buffer
	if err := contextDocTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", branding.ContextFile(), err)
	}
	return buf.String(), nil
}
