// Package project manages the project-local state directory (.claude/):
// its skills/ and commands/ subdirectories, the files written into it, and
// the shipkit.json record of installed modules.
package project
