package fetch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/latte/pkg/errors"
	"github.com/arthur-debert/latte/pkg/logging"
	"github.com/arthur-debert/latte/pkg/paths"
	"github.com/arthur-debert/latte/pkg/types"
)

// Options configures the HTTP client
type Options struct {
	Timeout   time.Duration
	Retries   int
	UserAgent string
}

// Fetcher downloads packages into the staging root
type Fetcher struct {
	client      *resty.Client
	fs          types.FS
	stagingRoot string
	log         zerolog.Logger
}

// New creates a Fetcher that stages packages under stagingRoot
func New(fs types.FS, stagingRoot string, opts Options) *Fetcher {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	client := resty.New().
		SetTransport(retryClient.HTTPClient.Transport).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return &Fetcher{
		client:      client,
		fs:          fs,
		stagingRoot: stagingRoot,
		log:         logging.GetLogger("fetch"),
	}
}

// Fetch downloads the metadata file and the entry point of package name from
// the repository at baseURL into <staging root>/<name>.
func (f *Fetcher) Fetch(ctx context.Context, baseURL, name string) (*types.StagedPackage, error) {
	dir := filepath.Join(f.stagingRoot, name)
	staged := &types.StagedPackage{
		Name:         name,
		Dir:          dir,
		MetadataPath: filepath.Join(dir, paths.RemoteMetadataFile),
		BinPath:      filepath.Join(dir, paths.RemoteBinFile),
	}

	if _, err := f.fs.Stat(dir); err == nil {
		f.log.Warn().Str("dir", dir).Msg("Staging directory already exists, reusing it")
	}
	if err := f.fs.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to create staging directory %s", dir)
	}

	files := []struct {
		remote string
		local  string
		perm   os.FileMode
	}{
		{paths.RemoteMetadataFile, staged.MetadataPath, 0644},
		{paths.RemoteBinFile, staged.BinPath, 0755},
	}

	for _, file := range files {
		body, err := f.get(ctx, PackageFileURL(baseURL, name, file.remote))
		if err == nil {
			if werr := f.fs.WriteFile(file.local, body, file.perm); werr != nil {
				err = errors.Wrapf(werr, errors.ErrFilesystem, "failed to write %s", file.local)
			}
		}
		if err != nil {
			f.discard(dir)
			return nil, err
		}
	}

	f.log.Debug().Str("package", name).Str("dir", dir).Msg("Package staged")
	return staged, nil
}

// FetchInit downloads the init.latte descriptor of the repository at repoURL
func (f *Fetcher) FetchInit(ctx context.Context, repoURL string) (string, error) {
	body, err := f.get(ctx, joinURL(repoURL, paths.RemoteInitFile))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Discard removes the staging directory of a package, if any
func (f *Fetcher) Discard(name string) {
	f.discard(filepath.Join(f.stagingRoot, name))
}

func (f *Fetcher) discard(dir string) {
	if err := f.fs.RemoveAll(dir); err != nil {
		f.log.Warn().Err(err).Str("dir", dir).Msg("Failed to remove staging directory")
	}
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	f.log.Debug().Str("url", url).Msg("GET")

	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConnection, "failed to connect to %s", url).
			WithDetail("url", url)
	}
	if !resp.IsSuccess() {
		return nil, errors.Newf(errors.ErrFetchFailed, "GET %s returned %s", url, resp.Status()).
			WithDetail("url", url).
			WithDetail("status", resp.StatusCode())
	}

	f.log.Trace().Str("url", url).Int("bytes", len(resp.Body())).Msg("Fetched")
	return resp.Body(), nil
}

// PackageFileURL returns the URL of file inside package name
func PackageFileURL(baseURL, name, file string) string {
	return joinURL(baseURL, name, file)
}

func joinURL(base string, segments ...string) string {
	return strings.TrimRight(base, "/") + "/" + strings.Join(segments, "/")
}
