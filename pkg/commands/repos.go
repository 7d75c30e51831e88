package commands

import (
	"context"
	"strings"

	"github.com/arthur-debert/latte/pkg/errors"
	"github.com/arthur-debert/latte/pkg/logging"
	"github.com/arthur-debert/latte/pkg/repos"
	"github.com/arthur-debert/latte/pkg/swconf"
	"github.com/arthur-debert/latte/pkg/types"
)

// NicknameKey is the init.latte key naming a repository
const NicknameKey = "NICKNAME"

// ListAll is the ListRepos pattern that selects every repository
const ListAll = "all"

// AddRepo registers the repository at url under the nickname its init.latte
// declares
func AddRepo(ctx context.Context, env *Env, url string) (*Result, error) {
	log := logging.GetLogger("commands.repos")
	res := &Result{Command: CommandAddRepo}

	url = strings.TrimSpace(url)
	if err := repos.ValidateURL(url); err != nil {
		return res, err
	}
	if _, err := env.loadRegistry(res); err != nil {
		return res, err
	}

	content, err := env.Fetcher.FetchInit(ctx, url)
	if err != nil {
		return res, repoInvalid(err, url, "either the repository doesn't exist or it has no init.latte file")
	}

	descriptor, err := swconf.Parse(content)
	if err != nil {
		return res, repoInvalid(err, url, "init.latte is malformed")
	}

	nickname, ok := descriptor.Get(NicknameKey)
	if !ok {
		return res, repoInvalid(nil, url, "init.latte does not declare "+NicknameKey)
	}
	nickname = strings.TrimSpace(nickname)
	if err := repos.ValidateNickname(nickname); err != nil {
		return res, repoInvalid(err, url, "init.latte declares an invalid "+NicknameKey)
	}

	repo := types.Repository{Nickname: nickname, URL: url}
	if err := env.Store.Add(repo); err != nil {
		return res, err
	}

	log.Debug().Str("nickname", nickname).Str("url", url).Msg("Repository registered")
	res.Repo = &types.RepoResult{Repository: repo}
	return res, nil
}

// DelRepo unregisters nickname
func DelRepo(env *Env, nickname string) (*Result, error) {
	res := &Result{Command: CommandDelRepo}
	if _, err := env.loadRegistry(res); err != nil {
		return res, err
	}

	removed, err := env.Store.Remove(nickname)
	if err != nil {
		return res, err
	}
	res.Repo = &types.RepoResult{Repository: removed}
	return res, nil
}

// ListRepos lists every repository when pattern is "all", or the single
// repository named by pattern
func ListRepos(env *Env, pattern string) (*Result, error) {
	res := &Result{Command: CommandListRepos}
	reg, err := env.loadRegistry(res)
	if err != nil {
		return res, err
	}

	if pattern == "" || pattern == ListAll {
		res.Repos = &types.ListReposResult{Repositories: reg.List()}
		return res, nil
	}

	url, err := reg.Lookup(pattern)
	if err != nil {
		return res, err
	}
	res.Repos = &types.ListReposResult{
		Repositories: []types.Repository{{Nickname: pattern, URL: url}},
	}
	return res, nil
}

func repoInvalid(err error, url, reason string) error {
	if err == nil {
		return errors.Newf(errors.ErrRepoInvalid, "repository %s is invalid: %s", url, reason).
			WithDetail("url", url)
	}
	return errors.Wrapf(err, errors.ErrRepoInvalid, "repository %s is invalid: %s", url, reason).
		WithDetail("url", url)
}
