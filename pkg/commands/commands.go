// Package commands provides the operations behind every latte command.
//
// This is the only package that composes the lower layers: the registry
// store, the resolver, the fetcher, the installer and the scaffold. The CLI
// builds an Env once per invocation and hands it to Dispatch together with
// the command variant and its argument.
package commands

import (
	"github.com/arthur-debert/latte/pkg/config"
	"github.com/arthur-debert/latte/pkg/fetch"
	"github.com/arthur-debert/latte/pkg/install"
	"github.com/arthur-debert/latte/pkg/paths"
	"github.com/arthur-debert/latte/pkg/repos"
	"github.com/arthur-debert/latte/pkg/types"
)

// Env holds the configuration and collaborators shared by all commands
type Env struct {
	Config *config.Config
	Paths  paths.Paths
	FS     types.FS

	Store     *repos.Store
	Fetcher   *fetch.Fetcher
	Installer *install.Installer
}

// NewEnv wires the registry store, fetcher and installer for cfg and p
func NewEnv(cfg *config.Config, p paths.Paths, fs types.FS) *Env {
	fallback := types.Repository{
		Nickname: cfg.Repository.Nickname,
		URL:      cfg.Repository.URL,
	}

	return &Env{
		Config: cfg,
		Paths:  p,
		FS:     fs,
		Store:  repos.NewStore(fs, p.RegistryFile(), fallback),
		Fetcher: fetch.New(fs, p.StagingRoot(), fetch.Options{
			Timeout:   cfg.HTTP.Timeout,
			Retries:   cfg.HTTP.Retries,
			UserAgent: cfg.HTTP.UserAgent,
		}),
		Installer: install.New(fs, p),
	}
}

// Result is the outcome of a dispatched command. Exactly one of the payload
// fields is set, matching Command.
type Result struct {
	Command  CommandType `json:"command"`
	Warnings []string    `json:"warnings,omitempty"`

	Install  *types.InstallResult      `json:"install,omitempty"`
	Remove   *types.RemoveResult       `json:"remove,omitempty"`
	New      *types.NewPackageResult   `json:"new,omitempty"`
	Repo     *types.RepoResult         `json:"repo,omitempty"`
	Repos    *types.ListReposResult    `json:"repos,omitempty"`
	Packages *types.ListPackagesResult `json:"packages,omitempty"`
	Info     *types.InstalledPackage   `json:"info,omitempty"`
}

func (r *Result) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// loadRegistry loads the registry and records a warning when it had to be
// rebuilt. Every command calls it first so a missing registry is recreated
// on any invocation.
func (e *Env) loadRegistry(res *Result) (*repos.Registry, error) {
	reg, created, err := e.Store.Load()
	if err != nil {
		return nil, err
	}
	if created {
		res.warn(MsgRegistryRebuilt)
	}
	return reg, nil
}
