// Package cli defines the Cobra command tree for the shipkit CLI. Each file
// in this package registers one top-level command (init, add, list, etc.)
// with the root command. Command implementations delegate to internal packages
// for business logic and only handle flag parsing, output, and user interaction.
package cli
