package config

import (
	"strings"
	"time"

	"github.com/arthur-debert/latte/pkg/errors"
	"github.com/arthur-debert/latte/pkg/paths"
	"github.com/arthur-debert/latte/pkg/swconf"
)

// Config is the complete latte configuration
type Config struct {
	Repository Repository `koanf:"repository"`
	Install    Install    `koanf:"install"`
	HTTP       HTTP       `koanf:"http"`
	Dirs       Dirs       `koanf:"dirs"`
}

// Repository holds the fallback repository written into a fresh registry
type Repository struct {
	Nickname string `koanf:"nickname"`
	URL      string `koanf:"url"`
}

// Install holds the installed file suffixes
type Install struct {
	MetaExt string `koanf:"metaext"`
	BinExt  string `koanf:"binext"`
}

// HTTP configures the package fetcher
type HTTP struct {
	Timeout   time.Duration `koanf:"timeout"`
	Retries   int           `koanf:"retries"`
	UserAgent string        `koanf:"useragent"`
}

// Dirs overrides individual package locations
type Dirs struct {
	Metadata string `koanf:"metadata"`
	Bin      string `koanf:"bin"`
	Staging  string `koanf:"staging"`
	Registry string `koanf:"registry"`
}

// PathOptions returns the paths.Options described by this configuration
func (c *Config) PathOptions() paths.Options {
	return paths.Options{
		MetadataDir:  c.Dirs.Metadata,
		BinDir:       c.Dirs.Bin,
		StagingRoot:  c.Dirs.Staging,
		RegistryFile: c.Dirs.Registry,
		MetadataExt:  c.Install.MetaExt,
		BinExt:       c.Install.BinExt,
	}
}

// ToMap returns the configuration as nested maps, keyed like the TOML file
func (c *Config) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"repository": map[string]interface{}{
			"nickname": c.Repository.Nickname,
			"url":      c.Repository.URL,
		},
		"install": map[string]interface{}{
			"metaext": c.Install.MetaExt,
			"binext":  c.Install.BinExt,
		},
		"http": map[string]interface{}{
			"timeout":   c.HTTP.Timeout.String(),
			"retries":   c.HTTP.Retries,
			"useragent": c.HTTP.UserAgent,
		},
		"dirs": map[string]interface{}{
			"metadata": c.Dirs.Metadata,
			"bin":      c.Dirs.Bin,
			"staging":  c.Dirs.Staging,
			"registry": c.Dirs.Registry,
		},
	}
}

// Validate checks the values that the rest of latte relies on
func (c *Config) Validate() error {
	nick := c.Repository.Nickname
	if !swconf.ValidKey(nick) || strings.Contains(nick, "/") {
		return errors.Newf(errors.ErrConfigLoad, "invalid default repository nickname %q", nick)
	}
	if c.Repository.URL == "" || !swconf.ValidValue(c.Repository.URL) {
		return errors.Newf(errors.ErrConfigLoad, "invalid default repository url %q", c.Repository.URL)
	}
	if c.HTTP.Timeout < 0 {
		return errors.Newf(errors.ErrConfigLoad, "http.timeout must not be negative, got %s", c.HTTP.Timeout)
	}
	if c.HTTP.Retries < 0 {
		return errors.Newf(errors.ErrConfigLoad, "http.retries must not be negative, got %d", c.HTTP.Retries)
	}
	for _, ext := range []string{c.Install.MetaExt, c.Install.BinExt} {
		if strings.ContainsAny(ext, `/\`) {
			return errors.Newf(errors.ErrConfigLoad, "invalid file suffix %q", ext)
		}
	}
	return nil
}
