// Package scaffold creates the directory layout of a new package, ready to be
// published in a repository.
package scaffold

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/latte/pkg/errors"
	"github.com/arthur-debert/latte/pkg/logging"
	"github.com/arthur-debert/latte/pkg/paths"
	"github.com/arthur-debert/latte/pkg/types"
)

const namePlaceholder = "PACKAGE_NAME"

//go:embed meta-template.txt
var metaTemplate string

//go:embed bin-template.txt
var binTemplate string

// New creates dir/name containing a template metadata file and entry point
func New(fs types.FS, dir, name string) (*types.NewPackageResult, error) {
	logger := logging.GetLogger("scaffold")
	root := filepath.Join(dir, name)

	if _, err := fs.Stat(root); err == nil {
		return nil, errors.Newf(errors.ErrPackageExists, "couldn't create package, %s already exists", root).
			WithDetail("path", root)
	}
	if err := fs.MkdirAll(root, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to create %s", root)
	}

	files := []struct {
		name    string
		content string
		perm    os.FileMode
	}{
		{paths.RemoteMetadataFile, metaTemplate, 0644},
		{paths.RemoteBinFile, binTemplate, 0755},
	}

	result := &types.NewPackageResult{Name: name, Path: root}
	for _, f := range files {
		path := filepath.Join(root, f.name)
		content := Render(f.content, name)
		if err := fs.WriteFile(path, []byte(content), f.perm); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to write %s", path)
		}
		result.Files = append(result.Files, path)
	}

	logger.Info().Str("package", name).Str("path", root).Msg("Package template created")
	return result, nil
}

// Render substitutes the package name into a template
func Render(template, name string) string {
	return strings.ReplaceAll(template, namePlaceholder, name)
}
