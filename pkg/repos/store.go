package repos

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/latte/pkg/errors"
	"github.com/arthur-debert/latte/pkg/logging"
	"github.com/arthur-debert/latte/pkg/types"
)

// Store reads and writes the registry file
type Store struct {
	fs       types.FS
	path     string
	fallback types.Repository
	log      zerolog.Logger
}

// NewStore creates a Store for the registry file at path. fallback is the
// single entry written when the file does not exist.
func NewStore(fs types.FS, path string, fallback types.Repository) *Store {
	return &Store{
		fs:       fs,
		path:     path,
		fallback: fallback,
		log:      logging.GetLogger("repos"),
	}
}

// Path returns the registry file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the registry, creating it with the fallback repository if the
// file is absent. created reports whether that happened.
func (s *Store) Load() (reg *Registry, created bool, err error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, false, errors.Wrapf(err, errors.ErrFilesystem, "failed to read registry %s", s.path)
		}
		s.log.Info().Str("path", s.path).Msg("Repository listing doesn't exist, rebuilding to default")
		reg = NewRegistry(s.fallback)
		if err := s.Save(reg); err != nil {
			return nil, false, err
		}
		return reg, true, nil
	}

	reg, err = ParseRegistry(string(data))
	if err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse registry %s", s.path)
	}
	s.log.Debug().Str("path", s.path).Int("repositories", reg.Len()).Msg("Loaded registry")
	return reg, false, nil
}

// Save replaces the registry file with reg
func (s *Store) Save(reg *Registry) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to create directory %s", dir)
	}

	tmp := fmt.Sprintf("%s.tmp-%d", s.path, os.Getpid())
	if err := s.fs.WriteFile(tmp, []byte(reg.String()), 0644); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to write registry %s", tmp)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to replace registry %s", s.path)
	}
	return nil
}

// Add registers repo. A nickname that is already present is rejected.
func (s *Store) Add(repo types.Repository) error {
	if err := ValidateNickname(repo.Nickname); err != nil {
		return err
	}
	if err := ValidateURL(repo.URL); err != nil {
		return err
	}

	reg, _, err := s.Load()
	if err != nil {
		return err
	}
	if existing, err := reg.Lookup(repo.Nickname); err == nil {
		return errors.Newf(errors.ErrAlreadyExists, "repository %q is already registered as %s", repo.Nickname, existing).
			WithDetail("nickname", repo.Nickname).
			WithDetail("url", existing)
	}

	reg.add(repo)
	if err := s.Save(reg); err != nil {
		return err
	}
	s.log.Info().Str("nickname", repo.Nickname).Str("url", repo.URL).Msg("Repository added")
	return nil
}

// Remove unregisters nickname and returns the removed record. The file is
// left untouched when nickname is unknown.
func (s *Store) Remove(nickname string) (types.Repository, error) {
	reg, _, err := s.Load()
	if err != nil {
		return types.Repository{}, err
	}

	u, err := reg.Lookup(nickname)
	if err != nil {
		return types.Repository{}, err
	}

	reg.remove(nickname)
	if err := s.Save(reg); err != nil {
		return types.Repository{}, err
	}
	s.log.Info().Str("nickname", nickname).Msg("Repository removed")
	return types.Repository{Nickname: nickname, URL: u}, nil
}
