// Package file provides file-based configuration adapters.
//
// Adapters:
//   - ConfigStore: settings in ~/.drawwatch/config.toml, addressed by dot keys
//   - LoadSources: the source registry and selector table, as TOML or YAML
package file
