package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/latte/pkg/errors"
)

// Environment variable names
const (
	EnvConfigDir = "LATTE_CONFIG_DIR"
	EnvDataDir   = "LATTE_DATA_DIR"
	EnvCacheDir  = "LATTE_CACHE_DIR"
	EnvStateDir  = "LATTE_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name used under each XDG root
	AppDirName = "latte"

	ConfigFileName   = "config.toml"
	RegistryFileName = "repos.swconf"
	LogFileName      = "latte.log"

	MetadataDirName = "meta"
	BinDirName      = "bin"
	StagingDirName  = "staging"

	// DefaultMetadataExt and DefaultBinExt name installed package files
	DefaultMetadataExt = ".latte"
	DefaultBinExt      = ".py"

	// Remote and staged file names inside a package directory
	RemoteMetadataFile = "meta.latte"
	RemoteBinFile      = "bin.py"
	RemoteInitFile     = "init.latte"
)

// Options overrides the computed locations. Empty fields use the defaults.
type Options struct {
	ConfigDir string
	DataDir   string
	CacheDir  string
	StateDir  string

	MetadataDir  string
	BinDir       string
	StagingRoot  string
	RegistryFile string

	MetadataExt string
	BinExt      string
}

// Paths provides centralized path management for latte
type Paths interface {
	ConfigDir() string
	DataDir() string
	CacheDir() string
	StateDir() string

	ConfigFile() string
	RegistryFile() string
	LogFilePath() string

	MetadataDir() string
	BinDir() string
	StagingRoot() string

	MetadataExt() string
	BinExt() string

	// MetadataPath is the installed metadata file of a package
	MetadataPath(name string) string
	// BinPath is the installed entry point of a package
	BinPath(name string) string
	// StagingDir is the staging directory of a package
	StagingDir(name string) string
}

type paths struct {
	configDir string
	dataDir   string
	cacheDir  string
	stateDir  string

	metadataDir  string
	binDir       string
	stagingRoot  string
	registryFile string

	metadataExt string
	binExt      string
}

// New creates a Paths instance from opts, the environment and XDG defaults
func New(opts Options) (Paths, error) {
	p := &paths{
		configDir: pick(opts.ConfigDir, os.Getenv(EnvConfigDir), filepath.Join(xdg.ConfigHome, AppDirName)),
		dataDir:   pick(opts.DataDir, os.Getenv(EnvDataDir), filepath.Join(xdg.DataHome, AppDirName)),
		cacheDir:  pick(opts.CacheDir, os.Getenv(EnvCacheDir), filepath.Join(xdg.CacheHome, AppDirName)),
		stateDir:  pick(opts.StateDir, os.Getenv(EnvStateDir), filepath.Join(xdg.StateHome, AppDirName)),

		metadataExt: normalizeExt(opts.MetadataExt, DefaultMetadataExt),
		binExt:      normalizeExt(opts.BinExt, DefaultBinExt),
	}

	p.metadataDir = pick(opts.MetadataDir, filepath.Join(p.dataDir, MetadataDirName))
	p.binDir = pick(opts.BinDir, filepath.Join(p.dataDir, BinDirName))
	p.stagingRoot = pick(opts.StagingRoot, filepath.Join(p.cacheDir, StagingDirName))
	p.registryFile = pick(opts.RegistryFile, filepath.Join(p.configDir, RegistryFileName))

	for _, dir := range []*string{
		&p.configDir, &p.dataDir, &p.cacheDir, &p.stateDir,
		&p.metadataDir, &p.binDir, &p.stagingRoot, &p.registryFile,
	} {
		abs, err := filepath.Abs(expandHome(*dir))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to get absolute path for %s", *dir)
		}
		*dir = abs
	}

	return p, nil
}

// DefaultConfigDir returns the config directory before any configuration is
// loaded, so the loader knows where to look for config.toml
func DefaultConfigDir() string {
	return expandHome(pick(os.Getenv(EnvConfigDir), filepath.Join(xdg.ConfigHome, AppDirName)))
}

func (p *paths) ConfigDir() string    { return p.configDir }
func (p *paths) DataDir() string      { return p.dataDir }
func (p *paths) CacheDir() string     { return p.cacheDir }
func (p *paths) StateDir() string     { return p.stateDir }
func (p *paths) ConfigFile() string   { return filepath.Join(p.configDir, ConfigFileName) }
func (p *paths) RegistryFile() string { return p.registryFile }
func (p *paths) LogFilePath() string  { return filepath.Join(p.stateDir, LogFileName) }
func (p *paths) MetadataDir() string  { return p.metadataDir }
func (p *paths) BinDir() string       { return p.binDir }
func (p *paths) StagingRoot() string  { return p.stagingRoot }
func (p *paths) MetadataExt() string  { return p.metadataExt }
func (p *paths) BinExt() string       { return p.binExt }

func (p *paths) MetadataPath(name string) string {
	return filepath.Join(p.metadataDir, name+p.metadataExt)
}

func (p *paths) BinPath(name string) string {
	return filepath.Join(p.binDir, name+p.binExt)
}

func (p *paths) StagingDir(name string) string {
	return filepath.Join(p.stagingRoot, name)
}

// pick returns the first non-empty value
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func normalizeExt(ext, fallback string) string {
	if ext == "" {
		return fallback
	}
	if !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
