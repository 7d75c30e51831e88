package resolver

import (
	"strings"

	"github.com/arthur-debert/latte/pkg/errors"
	"github.com/arthur-debert/latte/pkg/types"
)

// Lookup maps a repository nickname to its base URL
type Lookup interface {
	Lookup(nickname string) (string, error)
}

// Resolve parses ref and looks up its repository in registry. A bare name is
// resolved against defaultNickname.
func Resolve(ref string, registry Lookup, defaultNickname string) (types.Reference, error) {
	nickname, name, err := Split(ref)
	if err != nil {
		return types.Reference{}, err
	}

	defaulted := nickname == ""
	if defaulted {
		nickname = defaultNickname
	}

	url, err := registry.Lookup(nickname)
	if err != nil {
		return types.Reference{}, err
	}

	return types.Reference{
		Nickname:  nickname,
		URL:       url,
		Name:      name,
		Defaulted: defaulted,
	}, nil
}

// Split breaks ref into its nickname and package name. nickname is empty for
// a bare name.
func Split(ref string) (nickname, name string, err error) {
	parts := strings.Split(ref, "/")
	switch len(parts) {
	case 1:
		name = parts[0]
	case 2:
		nickname, name = parts[0], parts[1]
		if nickname == "" {
			return "", "", invalidRef(ref, "empty repository nickname")
		}
	default:
		return "", "", invalidRef(ref, "expected name or repo/name")
	}

	if err := ValidateName(name); err != nil {
		return "", "", invalidRef(ref, err.Error())
	}
	return nickname, name, nil
}

// ValidateName checks that name can be used as a file and URL path segment
func ValidateName(name string) error {
	switch {
	case name == "":
		return errors.New(errors.ErrInvalidInput, "empty package name")
	case name == "." || name == "..":
		return errors.Newf(errors.ErrInvalidInput, "invalid package name %q", name)
	case strings.ContainsAny(name, "/\\ \t\r\n?#%"):
		return errors.Newf(errors.ErrInvalidInput, "package name %q contains invalid characters", name)
	}
	return nil
}

func invalidRef(ref, reason string) error {
	return errors.Newf(errors.ErrInvalidInput, "invalid package reference %q: %s", ref, reason).
		WithDetail("reference", ref)
}
