package registry

// FilterByCategory returns the modules of reg in category, in registry order.
func FilterByCategory(reg *Registry, category Category) []Module {
	if reg == nil {
		return nil
	}
	var out []Module
	for _, m := range reg.Modules {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out
}

// FilterRecommended returns the recommended modules of reg, in registry order.
func FilterRecommended(reg *Registry) []Module {
	if reg == nil {
		return nil
	}
	return Recommended(reg.Modules)
}

// Recommended filters mods down to the recommended ones, preserving order.
func Recommended(mods []Module) []Module {
	var out []Module
	for _, m := range mods {
		if m.Recommended {
			out = append(out, m)
		}
	}
	return out
}

// Find looks up a module by name.
func Find(reg *Registry, name string) (Module, bool) {
	if reg == nil {
		return Module{}, false
	}
	for _, m := range reg.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return Module{}, false
}

// Names returns the names of mods in order.
func Names(mods []Module) []string {
	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = m.Name
	}
	return names
}
