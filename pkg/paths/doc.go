// Package paths provides centralized path handling for latte.
//
// Every file location the tool reads or writes is derived here, once, from
// the environment and the loaded configuration. Components receive a Paths
// value and never consult the environment themselves.
//
// # Environment Variables
//
//   - LATTE_CONFIG_DIR: Override the config directory (default: $XDG_CONFIG_HOME/latte)
//   - LATTE_DATA_DIR: Override the data directory (default: $XDG_DATA_HOME/latte)
//   - LATTE_CACHE_DIR: Override the cache directory (default: $XDG_CACHE_HOME/latte)
//   - LATTE_STATE_DIR: Override the state directory (default: $XDG_STATE_HOME/latte)
//
// # Layout
//
//   - Config: config.toml and the repository registry (repos.swconf)
//   - Data: meta/<package>.latte and bin/<package>.py
//   - Cache: staging/<package>/ while a package is being fetched
//   - State: latte.log
//
// Each of the four package locations can also be set directly through the
// [dirs] section of config.toml.
package paths
