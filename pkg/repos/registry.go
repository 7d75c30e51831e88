package repos

import (
	"net/url"
	"strings"

	"github.com/arthur-debert/latte/pkg/errors"
	"github.com/arthur-debert/latte/pkg/swconf"
	"github.com/arthur-debert/latte/pkg/types"
)

// Registry is the in-memory view of the registry file
type Registry struct {
	records *swconf.Config
}

// NewRegistry returns a registry holding repos in order
func NewRegistry(repos ...types.Repository) *Registry {
	r := &Registry{records: swconf.New()}
	for _, repo := range repos {
		r.records.Set(repo.Nickname, repo.URL)
	}
	return r
}

// ParseRegistry reads registry file content
func ParseRegistry(content string) (*Registry, error) {
	records, err := swconf.Parse(content)
	if err != nil {
		return nil, err
	}
	return &Registry{records: records}, nil
}

// Lookup returns the base URL registered under nickname
func (r *Registry) Lookup(nickname string) (string, error) {
	u, ok := r.records.Get(nickname)
	if !ok {
		return "", errors.Newf(errors.ErrRepoNotFound, "repository %q not found", nickname).
			WithDetail("nickname", nickname)
	}
	return u, nil
}

// Has reports whether nickname is registered
func (r *Registry) Has(nickname string) bool {
	return r.records.Has(nickname)
}

// List returns every repository in file order
func (r *Registry) List() []types.Repository {
	keys := r.records.Keys()
	list := make([]types.Repository, 0, len(keys))
	for _, k := range keys {
		u, _ := r.records.Get(k)
		list = append(list, types.Repository{Nickname: k, URL: u})
	}
	return list
}

// Len returns the number of repositories
func (r *Registry) Len() int {
	return r.records.Len()
}

// String renders the registry in its file format
func (r *Registry) String() string {
	return swconf.Serialize(r.records)
}

func (r *Registry) add(repo types.Repository) {
	r.records.Set(repo.Nickname, repo.URL)
}

func (r *Registry) remove(nickname string) bool {
	return r.records.Delete(nickname)
}

// ValidateNickname checks that nickname can be stored and used in a
// package reference
func ValidateNickname(nickname string) error {
	if !swconf.ValidKey(nickname) || strings.ContainsAny(nickname, "/ \t") {
		return errors.Newf(errors.ErrInvalidInput, "invalid repository nickname %q", nickname)
	}
	return nil
}

// ValidateURL checks that raw is an absolute http(s) URL that fits on one
// registry line
func ValidateURL(raw string) error {
	if raw == "" || !swconf.ValidValue(raw) {
		return errors.Newf(errors.ErrInvalidInput, "invalid repository url %q", raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "invalid repository url %q", raw)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Newf(errors.ErrInvalidInput, "repository url %q must be an absolute http(s) URL", raw)
	}
	return nil
}
