// Package install implements the two installation workflows.
//
// Init performs a full install from a resolved selection and replaces any
// previous shipkit.json. Add installs one module into an initialized
// project and appends it to the existing record. Both write module files
// through a project.Store and never touch the filesystem directly.
//
// Module files are laid out by category:
//
//	init, skills     .claude/skills/<name>/<file>
//	init, commands   .claude/commands/<name>.md
//	add, any         .claude/<category>/<name>/<file>
package install
