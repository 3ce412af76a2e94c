// Package config manages user-level settings stored at ~/.shipkit/config.yaml
// and the SHIPKIT_* environment, such as the local registry override, the
// remote registry URL and the request timeout.
package config
