package install_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/latte/pkg/errors"
	"github.com/arthur-debert/latte/pkg/filesystem"
	"github.com/arthur-debert/latte/pkg/install"
	"github.com/arthur-debert/latte/pkg/paths"
	"github.com/arthur-debert/latte/pkg/types"
)

// faultyFS fails the first Rename whose destination is failTo
type faultyFS struct {
	types.FS
	failTo string
	failed bool
}

func (f *faultyFS) Rename(oldpath, newpath string) error {
	if newpath == f.failTo && !f.failed {
		f.failed = true
		return fmt.Errorf("rename %s: injected failure", newpath)
	}
	return f.FS.Rename(oldpath, newpath)
}

func testPaths(t *testing.T) paths.Paths {
	t.Helper()
	p, err := paths.New(paths.Options{
		ConfigDir: "/config/latte",
		DataDir:   "/data/latte",
		CacheDir:  "/cache/latte",
		StateDir:  "/state/latte",
	})
	require.NoError(t, err)
	return p
}

func stage(t *testing.T, fs types.FS, p paths.Paths, name, meta, bin string) *types.StagedPackage {
	t.Helper()
	dir := p.StagingDir(name)
	require.NoError(t, fs.MkdirAll(dir, 0755))
	staged := &types.StagedPackage{
		Name:         name,
		Dir:          dir,
		MetadataPath: dir + "/" + paths.RemoteMetadataFile,
		BinPath:      dir + "/" + paths.RemoteBinFile,
	}
	require.NoError(t, fs.WriteFile(staged.MetadataPath, []byte(meta), 0644))
	require.NoError(t, fs.WriteFile(staged.BinPath, []byte(bin), 0755))
	return staged
}

func readFile(t *testing.T, fs types.FS, path string) string {
	t.Helper()
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func assertMissing(t *testing.T, fs types.FS, path string) {
	t.Helper()
	_, err := fs.Stat(path)
	assert.Error(t, err, "%s should not exist", path)
}

func TestInstall(t *testing.T) {
	fs := filesystem.NewMemory()
	p := testPaths(t)
	staged := stage(t, fs, p, "hello", "version=1.0\n", "print('hi')\n")

	pkg, err := install.New(fs, p).Install(staged)
	require.NoError(t, err)

	assert.Equal(t, types.StateInstalled, pkg.State)
	assert.Equal(t, "1.0", pkg.Version())
	assert.Equal(t, "/data/latte/meta/hello.latte", pkg.MetadataPath)
	assert.Equal(t, "/data/latte/bin/hello.py", pkg.BinPath)
	assert.Equal(t, "version=1.0\n", readFile(t, fs, pkg.MetadataPath))
	assert.Equal(t, "print('hi')\n", readFile(t, fs, pkg.BinPath))
	assertMissing(t, fs, staged.Dir)
}

func TestInstall_ThenRemoveLeavesNothing(t *testing.T) {
	fs := filesystem.NewMemory()
	p := testPaths(t)
	inst := install.New(fs, p)

	_, err := inst.Install(stage(t, fs, p, "hello", "version=1.0\n", "pass\n"))
	require.NoError(t, err)

	result, err := inst.Remove("hello")
	require.NoError(t, err)
	assert.Equal(t, []string{p.BinPath("hello"), p.MetadataPath("hello")}, result.Removed)

	for _, dir := range []string{p.MetadataDir(), p.BinDir(), p.StagingRoot()} {
		entries, err := fs.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, dir)
	}
	assert.Equal(t, types.StateAbsent, inst.State("hello").State)
}

func TestInstall_SecondMoveFailureRollsBack(t *testing.T) {
	mem := filesystem.NewMemory()
	p := testPaths(t)
	fs := &faultyFS{FS: mem, failTo: p.BinPath("hello")}

	_, err := install.New(fs, p).Install(stage(t, fs, p, "hello", "version=1.0\n", "pass\n"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFilesystem), "got %v", err)

	assertMissing(t, mem, p.MetadataPath("hello"))
	assertMissing(t, mem, p.BinPath("hello"))
	assertMissing(t, mem, p.StagingDir("hello"))
}

func TestInstall_FailureRestoresPreviousVersion(t *testing.T) {
	mem := filesystem.NewMemory()
	p := testPaths(t)
	inst := install.New(mem, p)
	_, err := inst.Install(stage(t, mem, p, "hello", "version=1.0\n", "old\n"))
	require.NoError(t, err)

	fs := &faultyFS{FS: mem, failTo: p.BinPath("hello")}
	_, err = install.New(fs, p).Install(stage(t, fs, p, "hello", "version=2.0\n", "new\n"))
	require.Error(t, err)

	assert.Equal(t, "version=1.0\n", readFile(t, mem, p.MetadataPath("hello")))
	assert.Equal(t, "old\n", readFile(t, mem, p.BinPath("hello")))
	assertMissing(t, mem, p.StagingDir("hello"))
}

func TestInstall_FirstMoveFailureAborts(t *testing.T) {
	mem := filesystem.NewMemory()
	p := testPaths(t)
	fs := &faultyFS{FS: mem, failTo: p.MetadataPath("hello")}

	_, err := install.New(fs, p).Install(stage(t, fs, p, "hello", "version=1.0\n", "pass\n"))
	require.Error(t, err)

	assertMissing(t, mem, p.MetadataPath("hello"))
	assertMissing(t, mem, p.BinPath("hello"))
}

func TestInstall_OverwritesPreviousVersion(t *testing.T) {
	fs := filesystem.NewMemory()
	p := testPaths(t)
	inst := install.New(fs, p)

	_, err := inst.Install(stage(t, fs, p, "hello", "version=1.0\n", "old\n"))
	require.NoError(t, err)
	_, err = inst.Install(stage(t, fs, p, "hello", "version=2.0\n", "new\n"))
	require.NoError(t, err)

	assert.Equal(t, "version=2.0\n", readFile(t, fs, p.MetadataPath("hello")))
	assert.Equal(t, "new\n", readFile(t, fs, p.BinPath("hello")))
}

func TestRemove(t *testing.T) {
	t.Run("not_installed", func(t *testing.T) {
		fs := filesystem.NewMemory()
		_, err := install.New(fs, testPaths(t)).Remove("ghost")
		assert.True(t, errors.IsErrorCode(err, errors.ErrPackageNotFound))
	})

	t.Run("half_installed_is_cleaned_up", func(t *testing.T) {
		fs := filesystem.NewMemory()
		p := testPaths(t)
		require.NoError(t, fs.MkdirAll(p.BinDir(), 0755))
		require.NoError(t, fs.WriteFile(p.BinPath("half"), []byte("pass\n"), 0755))

		inst := install.New(fs, p)
		assert.Equal(t, types.StateInconsistent, inst.State("half").State)

		result, err := inst.Remove("half")
		assert.True(t, errors.IsErrorCode(err, errors.ErrPackageNotFound))
		assert.Equal(t, p.MetadataPath("half"), errors.GetErrorDetails(err)["missing"])
		assert.Equal(t, []string{p.BinPath("half")}, result.Removed)
		assert.Equal(t, types.StateAbsent, inst.State("half").State)
	})
}

func TestListAndInfo(t *testing.T) {
	fs := filesystem.NewMemory()
	p := testPaths(t)
	inst := install.New(fs, p)

	_, err := inst.Install(stage(t, fs, p, "zeta", "version=0.3\ndeveloper=z\n", "pass\n"))
	require.NoError(t, err)
	_, err = inst.Install(stage(t, fs, p, "alpha", "version=1.2\ndescription=first\n", "pass\n"))
	require.NoError(t, err)
	require.NoError(t, fs.WriteFile(p.BinPath("orphan"), []byte("pass\n"), 0755))
	require.NoError(t, fs.WriteFile(p.BinDir()+"/notes.txt", []byte("x"), 0644))

	packages, err := inst.List()
	require.NoError(t, err)
	require.Len(t, packages, 3)
	assert.Equal(t, "alpha", packages[0].Name)
	assert.Equal(t, "1.2", packages[0].Version())
	assert.Equal(t, "orphan", packages[1].Name)
	assert.Equal(t, types.StateInconsistent, packages[1].State)
	assert.Equal(t, "zeta", packages[2].Name)

	info, err := inst.Info("alpha")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"version": "1.2", "description": "first"}, info.Metadata)

	_, err = inst.Info("ghost")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPackageNotFound))
}

func TestList_EmptyWhenDirectoriesMissing(t *testing.T) {
	packages, err := install.New(filesystem.NewMemory(), testPaths(t)).List()
	require.NoError(t, err)
	assert.Empty(t, packages)
}
