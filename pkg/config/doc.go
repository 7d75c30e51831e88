// Package config handles configuration management for latte.
//
// Configuration is layered: the embedded defaults.toml, then the user's
// config.toml if it exists, then LATTE_* environment variables. Environment
// names map to keys by dropping the prefix, lowercasing and turning '_'
// into '.', so LATTE_HTTP_TIMEOUT sets http.timeout.
package config
