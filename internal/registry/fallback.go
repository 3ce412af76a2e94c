package registry

import (
	_ "embed"
	"fmt"
)

//go:embed fallback.json
var fallbackJSON []byte

// Fallback returns the offline registry snapshot used when the remote
// registry cannot be reached. Each call returns a fresh copy.
func Fallback() *Registry {
	reg, err := DecodeRegistry(fallbackJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded fallback registry is invalid: %v", err))
	}
	return reg
}
