package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EnvironmentOverrides(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvConfigDir, filepath.Join(root, "config"))
	t.Setenv(EnvDataDir, filepath.Join(root, "data"))
	t.Setenv(EnvCacheDir, filepath.Join(root, "cache"))
	t.Setenv(EnvStateDir, filepath.Join(root, "state"))

	p, err := New(Options{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "config"), p.ConfigDir())
	assert.Equal(t, filepath.Join(root, "config", "config.toml"), p.ConfigFile())
	assert.Equal(t, filepath.Join(root, "config", "repos.swconf"), p.RegistryFile())
	assert.Equal(t, filepath.Join(root, "data", "meta"), p.MetadataDir())
	assert.Equal(t, filepath.Join(root, "data", "bin"), p.BinDir())
	assert.Equal(t, filepath.Join(root, "cache", "staging"), p.StagingRoot())
	assert.Equal(t, filepath.Join(root, "state", "latte.log"), p.LogFilePath())

	assert.Equal(t, filepath.Join(root, "data", "meta", "hello.latte"), p.MetadataPath("hello"))
	assert.Equal(t, filepath.Join(root, "data", "bin", "hello.py"), p.BinPath("hello"))
	assert.Equal(t, filepath.Join(root, "cache", "staging", "hello"), p.StagingDir("hello"))
}

func TestNew_OptionsWinOverEnvironment(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvDataDir, filepath.Join(root, "env-data"))

	p, err := New(Options{
		DataDir:     filepath.Join(root, "data"),
		BinDir:      filepath.Join(root, "custom-bin"),
		MetadataExt: "meta",
		BinExt:      ".bin",
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "data"), p.DataDir())
	assert.Equal(t, filepath.Join(root, "data", "meta"), p.MetadataDir())
	assert.Equal(t, filepath.Join(root, "custom-bin"), p.BinDir())
	assert.Equal(t, filepath.Join(root, "data", "meta", "hello.meta"), p.MetadataPath("hello"))
	assert.Equal(t, filepath.Join(root, "custom-bin", "hello.bin"), p.BinPath("hello"))
}

func TestNew_RelativePathsBecomeAbsolute(t *testing.T) {
	p, err := New(Options{ConfigDir: "relative/config", DataDir: "d", CacheDir: "c", StateDir: "s"})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p.ConfigDir()))
	assert.True(t, filepath.IsAbs(p.RegistryFile()))
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/latte", filepath.Join(home, "latte")},
		{"/abs/path", "/abs/path"},
		{"~other/path", "~other/path"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, expandHome(tt.in))
		})
	}
}

func TestDefaultConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	assert.Equal(t, dir, DefaultConfigDir())
}
