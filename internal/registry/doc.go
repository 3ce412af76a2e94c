// Package registry fetches the ShipKit module index and module contents,
// either from the remote registry over HTTP or from a local override
// directory. Index and manifest documents are validated against embedded
// JSON Schemas before they are decoded into typed values. The package also
// carries the baked-in offline registry and the pure module selectors.
package registry
