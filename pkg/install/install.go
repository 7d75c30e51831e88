package install

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/latte/pkg/errors"
	"github.com/arthur-debert/latte/pkg/logging"
	"github.com/arthur-debert/latte/pkg/paths"
	"github.com/arthur-debert/latte/pkg/swconf"
	"github.com/arthur-debert/latte/pkg/types"
)

// Installer manages the files of installed packages
type Installer struct {
	fs    types.FS
	paths paths.Paths
	log   zerolog.Logger
}

// New creates an Installer over the metadata and binaries directories of p
func New(fs types.FS, p paths.Paths) *Installer {
	return &Installer{
		fs:    fs,
		paths: p,
		log:   logging.GetLogger("install"),
	}
}

type move struct {
	src    string
	dst    string
	backup string
	moved  bool
	backed bool
}

// Install moves the staged metadata file and entry point into place. The
// staging directory is removed whatever the outcome.
func (i *Installer) Install(staged *types.StagedPackage) (*types.InstalledPackage, error) {
	defer func() {
		if err := i.fs.RemoveAll(staged.Dir); err != nil {
			i.log.Warn().Err(err).Str("dir", staged.Dir).Msg("Failed to remove staging directory")
		}
	}()

	for _, dir := range []string{i.paths.MetadataDir(), i.paths.BinDir()} {
		if err := i.fs.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to create directory %s", dir)
		}
	}

	moves := []*move{
		{
			src:    staged.MetadataPath,
			dst:    i.paths.MetadataPath(staged.Name),
			backup: filepath.Join(staged.Dir, ".previous-metadata"),
		},
		{
			src:    staged.BinPath,
			dst:    i.paths.BinPath(staged.Name),
			backup: filepath.Join(staged.Dir, ".previous-bin"),
		},
	}

	for _, m := range moves {
		if err := i.place(m); err != nil {
			i.rollback(moves)
			return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to install %s", m.dst).
				WithDetail("package", staged.Name)
		}
	}

	i.log.Info().Str("package", staged.Name).Msg("Package installed")
	pkg := i.State(staged.Name)
	if err := i.readMetadata(pkg); err != nil {
		i.log.Warn().Err(err).Str("package", staged.Name).Msg("Unreadable metadata")
	}
	return pkg, nil
}

// place moves m.src to m.dst, first moving an existing m.dst to m.backup
func (i *Installer) place(m *move) error {
	if i.exists(m.dst) {
		if err := i.move(m.dst, m.backup); err != nil {
			return err
		}
		m.backed = true
	}
	if err := i.move(m.src, m.dst); err != nil {
		if m.backed {
			if rerr := i.move(m.backup, m.dst); rerr != nil {
				i.log.Error().Err(rerr).Str("file", m.dst).Msg("Failed to restore previous version")
			}
			m.backed = false
		}
		return err
	}
	m.moved = true
	return nil
}

func (i *Installer) rollback(moves []*move) {
	for idx := len(moves) - 1; idx >= 0; idx-- {
		m := moves[idx]
		if !m.moved {
			continue
		}
		if err := i.fs.Remove(m.dst); err != nil {
			i.log.Error().Err(err).Str("file", m.dst).Msg("Rollback failed")
			continue
		}
		if m.backed {
			if err := i.move(m.backup, m.dst); err != nil {
				i.log.Error().Err(err).Str("file", m.dst).Msg("Failed to restore previous version")
				continue
			}
		}
		i.log.Debug().Str("file", m.dst).Msg("Rolled back")
	}
}

// move renames src to dst, copying when they are on different devices
func (i *Installer) move(src, dst string) error {
	err := i.fs.Rename(src, dst)
	if err == nil || !stderrors.Is(err, syscall.EXDEV) {
		return err
	}

	info, err := i.fs.Stat(src)
	if err != nil {
		return err
	}
	data, err := i.fs.ReadFile(src)
	if err != nil {
		return err
	}
	if err := i.fs.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return err
	}
	return i.fs.Remove(src)
}

// Remove deletes both files of package name. When only one of them exists it
// is deleted anyway and a PACKAGE_NOT_FOUND error names the missing one; the
// returned result lists what was removed in every case.
func (i *Installer) Remove(name string) (*types.RemoveResult, error) {
	files := []string{i.paths.BinPath(name), i.paths.MetadataPath(name)}
	result := &types.RemoveResult{Name: name, Removed: []string{}}

	var present, missing []string
	for _, f := range files {
		if i.exists(f) {
			present = append(present, f)
		} else {
			missing = append(missing, f)
		}
	}

	if len(present) == 0 {
		return result, errors.Newf(errors.ErrPackageNotFound, "package %q is not installed", name).
			WithDetail("package", name)
	}

	for idx, f := range present {
		if err := i.fs.Remove(f); err != nil {
			return result, errors.Wrapf(err, errors.ErrFilesystem, "failed to remove %s", f).
				WithDetail("package", name).
				WithDetail("remaining", present[idx:])
		}
		result.Removed = append(result.Removed, f)
		i.log.Debug().Str("file", f).Msg("Removed")
	}

	if len(missing) > 0 {
		return result, errors.Newf(errors.ErrPackageNotFound, "package %q was only partly installed, %s was missing", name, missing[0]).
			WithDetail("package", name).
			WithDetail("missing", missing[0])
	}

	i.log.Info().Str("package", name).Msg("Package removed")
	return result, nil
}

// State describes the files of package name as they are on disk
func (i *Installer) State(name string) *types.InstalledPackage {
	pkg := &types.InstalledPackage{
		Name:         name,
		MetadataPath: i.paths.MetadataPath(name),
		BinPath:      i.paths.BinPath(name),
	}

	hasMeta, hasBin := i.exists(pkg.MetadataPath), i.exists(pkg.BinPath)
	switch {
	case hasMeta && hasBin:
		pkg.State = types.StateInstalled
	case hasMeta || hasBin:
		pkg.State = types.StateInconsistent
	default:
		pkg.State = types.StateAbsent
	}
	return pkg
}

// Info returns the state of package name along with its parsed metadata
func (i *Installer) Info(name string) (*types.InstalledPackage, error) {
	pkg := i.State(name)
	if pkg.State == types.StateAbsent {
		return nil, errors.Newf(errors.ErrPackageNotFound, "package %q is not installed", name).
			WithDetail("package", name)
	}

	if err := i.readMetadata(pkg); err != nil {
		return pkg, err
	}
	return pkg, nil
}

// List returns every package with at least one file on disk, sorted by name
func (i *Installer) List() ([]types.InstalledPackage, error) {
	names := map[string]struct{}{}
	sources := []struct {
		dir string
		ext string
	}{
		{i.paths.MetadataDir(), i.paths.MetadataExt()},
		{i.paths.BinDir(), i.paths.BinExt()},
	}

	for _, src := range sources {
		entries, err := i.fs.ReadDir(src.dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to read %s", src.dir)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), src.ext) {
				continue
			}
			if name := strings.TrimSuffix(e.Name(), src.ext); name != "" {
				names[name] = struct{}{}
			}
		}
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	packages := make([]types.InstalledPackage, 0, len(sorted))
	for _, name := range sorted {
		pkg := i.State(name)
		if err := i.readMetadata(pkg); err != nil {
			i.log.Warn().Err(err).Str("package", name).Msg("Unreadable metadata")
		}
		packages = append(packages, *pkg)
	}
	return packages, nil
}

func (i *Installer) readMetadata(pkg *types.InstalledPackage) error {
	if !i.exists(pkg.MetadataPath) {
		return nil
	}
	data, err := i.fs.ReadFile(pkg.MetadataPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to read %s", pkg.MetadataPath)
	}
	meta, err := swconf.Parse(string(data))
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "invalid metadata in %s", pkg.MetadataPath)
	}
	pkg.Metadata = meta.Map()
	return nil
}

func (i *Installer) exists(path string) bool {
	_, err := i.fs.Stat(path)
	return err == nil
}
