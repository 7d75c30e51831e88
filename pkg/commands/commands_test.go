package commands_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/latte/pkg/commands"
	"github.com/arthur-debert/latte/pkg/config"
	"github.com/arthur-debert/latte/pkg/errors"
	"github.com/arthur-debert/latte/pkg/filesystem"
	"github.com/arthur-debert/latte/pkg/paths"
	"github.com/arthur-debert/latte/pkg/types"
)

type remote struct {
	*httptest.Server
	mu       sync.Mutex
	files    map[string]string
	requests []string
}

func newRemote(t *testing.T) *remote {
	t.Helper()
	r := &remote{files: map[string]string{}}
	r.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.requests = append(r.requests, req.URL.Path)
		body, ok := r.files[req.URL.Path]
		if !ok {
			http.NotFound(w, req)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(r.Close)
	return r
}

type testEnv struct {
	*commands.Env
	remote *remote
	fs     types.FS
}

func setupEnv(t *testing.T, registry string) *testEnv {
	t.Helper()
	srv := newRemote(t)

	cfg := config.Default()
	cfg.Repository.URL = srv.URL + "/u"

	p, err := paths.New(paths.Options{
		ConfigDir: "/config/latte",
		DataDir:   "/data/latte",
		CacheDir:  "/cache/latte",
		StateDir:  "/state/latte",
	})
	require.NoError(t, err)

	fs := filesystem.NewMemory()
	if registry != "" {
		require.NoError(t, fs.MkdirAll(p.ConfigDir(), 0755))
		require.NoError(t, fs.WriteFile(p.RegistryFile(), []byte(registry), 0644))
	}

	return &testEnv{Env: commands.NewEnv(cfg, p, fs), remote: srv, fs: fs}
}

func (e *testEnv) registry(t *testing.T) string {
	t.Helper()
	data, err := e.fs.ReadFile(e.Paths.RegistryFile())
	require.NoError(t, err)
	return string(data)
}

func (e *testEnv) publish(name, meta, bin string) {
	e.remote.files["/u/"+name+"/meta.latte"] = meta
	e.remote.files["/u/"+name+"/bin.py"] = bin
}

func dispatch(t *testing.T, env *testEnv, word, arg string) (*commands.Result, error) {
	t.Helper()
	cmd, err := commands.ParseCommandType(word)
	require.NoError(t, err)
	return commands.Dispatch(context.Background(), cmd, env.Env, commands.DispatchOptions{Argument: arg, WorkDir: "/work"})
}

func TestInstall_EndToEnd(t *testing.T) {
	env := setupEnv(t, "")
	env.publish("hello", "developer=me\nversion=1.0\n", "print('hello')\n")

	res, err := dispatch(t, env, "install", "hello")
	require.NoError(t, err)

	assert.Equal(t, []string{"/u/hello/meta.latte", "/u/hello/bin.py"}, env.remote.requests)
	assert.Equal(t, "universe="+env.remote.URL+"/u\n", env.registry(t))
	assert.Equal(t, []string{
		commands.MsgRegistryRebuilt,
		"Did not specify repository, using universe repository instead",
	}, res.Warnings)

	require.NotNil(t, res.Install)
	assert.False(t, res.Install.Updated)
	assert.Equal(t, types.StateInstalled, res.Install.Package.State)
	assert.Equal(t, "1.0", res.Install.Package.Version())
	assert.Equal(t, "me", res.Install.Package.Metadata["developer"])

	bin, err := env.fs.ReadFile(env.Paths.BinPath("hello"))
	require.NoError(t, err)
	assert.Equal(t, "print('hello')\n", string(bin))
	_, err = env.fs.Stat(env.Paths.MetadataPath("hello"))
	assert.NoError(t, err)
	_, err = env.fs.Stat(env.Paths.StagingDir("hello"))
	assert.Error(t, err, "staging directory must be gone")
}

func TestInstall_QualifiedReference(t *testing.T) {
	env := setupEnv(t, "")
	env.remote.files["/other/tool/meta.latte"] = "version=2\n"
	env.remote.files["/other/tool/bin.py"] = "pass\n"
	require.NoError(t, env.fs.MkdirAll(env.Paths.ConfigDir(), 0755))
	require.NoError(t, env.fs.WriteFile(env.Paths.RegistryFile(), []byte("universe=https://unused.test\nother="+env.remote.URL+"/other\n"), 0644))

	res, err := dispatch(t, env, "install", "other/tool")
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "other", res.Install.Reference.Nickname)
}

func TestInstall_Failures(t *testing.T) {
	t.Run("unknown_repository", func(t *testing.T) {
		env := setupEnv(t, "")
		_, err := dispatch(t, env, "install", "nope/hello")
		assert.True(t, errors.IsErrorCode(err, errors.ErrRepoNotFound))
	})

	t.Run("missing_package", func(t *testing.T) {
		env := setupEnv(t, "")
		_, err := dispatch(t, env, "install", "ghost")
		assert.True(t, errors.IsErrorCode(err, errors.ErrFetchFailed))
		assert.Equal(t, types.StateAbsent, env.Installer.State("ghost").State)
	})

	t.Run("bin_missing_leaves_nothing", func(t *testing.T) {
		env := setupEnv(t, "")
		env.remote.files["/u/half/meta.latte"] = "version=1\n"

		_, err := dispatch(t, env, "install", "half")
		assert.True(t, errors.IsErrorCode(err, errors.ErrFetchFailed))
		assert.Equal(t, types.StateAbsent, env.Installer.State("half").State)
		_, statErr := env.fs.Stat(env.Paths.StagingDir("half"))
		assert.Error(t, statErr)
	})
}

func TestUpdate(t *testing.T) {
	env := setupEnv(t, "")
	env.publish("hello", "version=1.0\n", "old\n")

	_, err := dispatch(t, env, "update", "hello")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPackageNotFound))

	_, err = dispatch(t, env, "install", "hello")
	require.NoError(t, err)

	env.publish("hello", "version=2.0\n", "new\n")
	res, err := dispatch(t, env, "update", "hello")
	require.NoError(t, err)
	assert.True(t, res.Install.Updated)
	assert.Equal(t, "2.0", res.Install.Package.Version())

	info, err := dispatch(t, env, "info", "hello")
	require.NoError(t, err)
	assert.Equal(t, "2.0", info.Info.Version())
}

func TestRemove(t *testing.T) {
	env := setupEnv(t, "")
	env.publish("hello", "version=1.0\n", "pass\n")
	_, err := dispatch(t, env, "install", "hello")
	require.NoError(t, err)

	res, err := dispatch(t, env, "remove", "hello")
	require.NoError(t, err)
	assert.Len(t, res.Remove.Removed, 2)
	assert.Equal(t, types.StateAbsent, env.Installer.State("hello").State)

	_, err = dispatch(t, env, "remove", "hello")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPackageNotFound))

	_, err = dispatch(t, env, "remove", "../etc")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestList(t *testing.T) {
	env := setupEnv(t, "")
	env.publish("b", "version=1\n", "pass\n")
	env.publish("a", "version=2\n", "pass\n")
	for _, name := range []string{"b", "a"} {
		_, err := dispatch(t, env, "install", name)
		require.NoError(t, err)
	}

	res, err := dispatch(t, env, "list", "")
	require.NoError(t, err)
	require.Len(t, res.Packages.Packages, 2)
	assert.Equal(t, "a", res.Packages.Packages[0].Name)
	assert.Equal(t, "b", res.Packages.Packages[1].Name)
}

func TestRegistryBootstrapOnEveryCommand(t *testing.T) {
	tests := []struct {
		word string
		arg  string
	}{
		{"list", ""},
		{"remove", "ghost"},
		{"info", "ghost"},
		{"new", "greeter"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			env := setupEnv(t, "")

			res, _ := dispatch(t, env, tt.word, tt.arg)
			require.NotNil(t, res)
			assert.Equal(t, "universe="+env.remote.URL+"/u\n", env.registry(t))
			assert.Equal(t, []string{commands.MsgRegistryRebuilt}, res.Warnings)

			again, _ := dispatch(t, env, tt.word, "other")
			require.NotNil(t, again)
			assert.Empty(t, again.Warnings)
		})
	}
}

func TestNew(t *testing.T) {
	env := setupEnv(t, "")

	res, err := dispatch(t, env, "new", "greeter")
	require.NoError(t, err)
	assert.Equal(t, "/work/greeter", res.New.Path)

	_, err = dispatch(t, env, "new", "greeter")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPackageExists))
}

func TestAddRepo_EndToEnd(t *testing.T) {
	env := setupEnv(t, "universe=https://example.test/u\n")
	env.remote.files["/r2/init.latte"] = "NICKNAME=r2name\n"
	url := env.remote.URL + "/r2"

	res, err := dispatch(t, env, "add-repo", url)
	require.NoError(t, err)
	assert.Equal(t, types.Repository{Nickname: "r2name", URL: url}, res.Repo.Repository)
	assert.Equal(t, "universe=https://example.test/u\nr2name="+url+"\n", env.registry(t))

	_, err = dispatch(t, env, "addrepo", url)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
}

func TestAddRepo_Invalid(t *testing.T) {
	tests := []struct {
		name string
		init string
		path string
	}{
		{name: "no_init_file", path: "/missing"},
		{name: "no_nickname", path: "/r3", init: "OWNER=someone\n"},
		{name: "malformed", path: "/r4", init: "garbage\n"},
		{name: "bad_nickname", path: "/r5", init: "NICKNAME=a/b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := "universe=https://example.test/u\n"
			env := setupEnv(t, original)
			if tt.init != "" {
				env.remote.files[tt.path+"/init.latte"] = tt.init
			}

			_, err := dispatch(t, env, "add-repo", env.remote.URL+tt.path)
			assert.True(t, errors.IsErrorCode(err, errors.ErrRepoInvalid), "got %v", err)
			assert.Equal(t, original, env.registry(t))
		})
	}

	t.Run("not_a_url", func(t *testing.T) {
		env := setupEnv(t, "")
		_, err := dispatch(t, env, "add-repo", "r2name")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestDelRepo(t *testing.T) {
	original := "universe=https://example.test/u\nr2name=https://example.test/r2\n"

	t.Run("removes", func(t *testing.T) {
		env := setupEnv(t, original)
		res, err := dispatch(t, env, "delrepo", "r2name")
		require.NoError(t, err)
		assert.Equal(t, "https://example.test/r2", res.Repo.Repository.URL)
		assert.Equal(t, "universe=https://example.test/u\n", env.registry(t))
	})

	t.Run("unknown_leaves_registry_unchanged", func(t *testing.T) {
		env := setupEnv(t, original)
		_, err := dispatch(t, env, "del-repo", "missing")
		assert.True(t, errors.IsErrorCode(err, errors.ErrRepoNotFound))
		assert.Equal(t, original, env.registry(t))
	})
}

func TestListRepos(t *testing.T) {
	env := setupEnv(t, "universe=https://example.test/u\nr2name=https://example.test/r2\n")

	res, err := dispatch(t, env, "list-repos", "all")
	require.NoError(t, err)
	assert.Equal(t, []types.Repository{
		{Nickname: "universe", URL: "https://example.test/u"},
		{Nickname: "r2name", URL: "https://example.test/r2"},
	}, res.Repos.Repositories)

	res, err = dispatch(t, env, "listrepo", "r2name")
	require.NoError(t, err)
	assert.Equal(t, []types.Repository{{Nickname: "r2name", URL: "https://example.test/r2"}}, res.Repos.Repositories)

	_, err = dispatch(t, env, "list-repos", "missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepoNotFound))
}

func TestParseCommandType(t *testing.T) {
	for word, expected := range map[string]commands.CommandType{
		"install":    commands.CommandInstall,
		"addrepo":    commands.CommandAddRepo,
		"delrepo":    commands.CommandDelRepo,
		"listrepo":   commands.CommandListRepos,
		"list-repos": commands.CommandListRepos,
	} {
		cmd, err := commands.ParseCommandType(word)
		require.NoError(t, err)
		assert.Equal(t, expected, cmd)
	}

	_, err := commands.ParseCommandType("frobnicate")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = commands.Dispatch(context.Background(), commands.CommandType("frobnicate"), nil, commands.DispatchOptions{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
