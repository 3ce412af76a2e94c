package install

import "github.com/tienedev/shipkit-cli/internal/registry"

// RecommendedSelection is the selection used by non-interactive init:
// recommended skills followed by recommended commands.
func RecommendedSelection(reg *registry.Registry) []string {
	var names []string
	for _, cat := range registry.Categories {
		names = append(names, registry.Names(registry.Recommended(registry.FilterByCategory(reg, cat)))...)
	}
	return names
}

// SplitByCategory groups selected names by the category reg assigns them.
// Names absent from reg are dropped.
func SplitByCategory(reg *registry.Registry, selection []string) map[registry.Category][]string {
	out := make(map[registry.Category][]string)
	for _, name := range selection {
		if m, ok := registry.Find(reg, name); ok {
			out[m.Category] = append(out[m.Category], name)
		}
	}
	return out
}
