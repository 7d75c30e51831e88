package commands

import (
	"github.com/arthur-debert/latte/pkg/resolver"
	"github.com/arthur-debert/latte/pkg/scaffold"
	"github.com/arthur-debert/latte/pkg/types"
)

// Remove deletes an installed package
func Remove(env *Env, name string) (*Result, error) {
	res := &Result{Command: CommandRemove}
	if _, err := env.loadRegistry(res); err != nil {
		return res, err
	}
	if err := resolver.ValidateName(name); err != nil {
		return res, err
	}

	removed, err := env.Installer.Remove(name)
	res.Remove = removed
	return res, err
}

// New creates a package template named name inside dir
func New(env *Env, dir, name string) (*Result, error) {
	res := &Result{Command: CommandNew}
	if _, err := env.loadRegistry(res); err != nil {
		return res, err
	}
	if err := resolver.ValidateName(name); err != nil {
		return res, err
	}
	if dir == "" {
		dir = "."
	}

	created, err := scaffold.New(env.FS, dir, name)
	if err != nil {
		return res, err
	}
	res.New = created
	return res, nil
}

// List reports every package found in the metadata and binaries directories
func List(env *Env) (*Result, error) {
	res := &Result{Command: CommandList}
	if _, err := env.loadRegistry(res); err != nil {
		return res, err
	}
	packages, err := env.Installer.List()
	if err != nil {
		return res, err
	}
	res.Packages = &types.ListPackagesResult{Packages: packages}
	return res, nil
}

// Info reports the state and metadata of one installed package
func Info(env *Env, name string) (*Result, error) {
	res := &Result{Command: CommandInfo}
	if _, err := env.loadRegistry(res); err != nil {
		return res, err
	}
	if err := resolver.ValidateName(name); err != nil {
		return res, err
	}

	pkg, err := env.Installer.Info(name)
	res.Info = pkg
	return res, err
}
