package commands

import (
	"context"

	"github.com/arthur-debert/latte/pkg/errors"
	"github.com/arthur-debert/latte/pkg/logging"
	"github.com/arthur-debert/latte/pkg/resolver"
	"github.com/arthur-debert/latte/pkg/types"
)

// Install resolves ref, fetches the package and installs it
func Install(ctx context.Context, env *Env, ref string) (*Result, error) {
	return installRef(ctx, env, CommandInstall, ref)
}

// Update reinstalls a package that is already installed
func Update(ctx context.Context, env *Env, ref string) (*Result, error) {
	return installRef(ctx, env, CommandUpdate, ref)
}

func installRef(ctx context.Context, env *Env, cmd CommandType, ref string) (*Result, error) {
	log := logging.GetLogger("commands.install")
	res := &Result{Command: cmd}

	reg, err := env.loadRegistry(res)
	if err != nil {
		return res, err
	}

	reference, err := resolver.Resolve(ref, reg, env.Config.Repository.Nickname)
	if err != nil {
		return res, err
	}
	if reference.Defaulted {
		res.warn(defaultRepositoryWarning(reference.Nickname))
	}

	before := env.Installer.State(reference.Name)
	if cmd == CommandUpdate && before.State == types.StateAbsent {
		return res, errors.Newf(errors.ErrPackageNotFound, msgNotInstalled, reference.Name).
			WithDetail("package", reference.Name)
	}

	log.Info().
		Str("package", reference.Name).
		Str("repository", reference.Nickname).
		Str("url", reference.URL).
		Msg("Downloading package")

	staged, err := env.Fetcher.Fetch(ctx, reference.URL, reference.Name)
	if err != nil {
		return res, err
	}

	pkg, err := env.Installer.Install(staged)
	if err != nil {
		return res, err
	}

	res.Install = &types.InstallResult{
		Reference: reference,
		Package:   *pkg,
		Updated:   before.State != types.StateAbsent,
	}
	return res, nil
}
