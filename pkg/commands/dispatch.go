package commands

import (
	"context"

	"github.com/arthur-debert/latte/pkg/errors"
	"github.com/arthur-debert/latte/pkg/logging"
)

// CommandType is one of the closed set of latte commands
type CommandType string

const (
	// Package commands
	CommandInstall CommandType = "install"
	CommandRemove  CommandType = "remove"
	CommandUpdate  CommandType = "update"
	CommandNew     CommandType = "new"
	CommandList    CommandType = "list"
	CommandInfo    CommandType = "info"

	// Repository commands
	CommandAddRepo   CommandType = "add-repo"
	CommandDelRepo   CommandType = "del-repo"
	CommandListRepos CommandType = "list-repos"
)

// AllCommands lists every command variant
var AllCommands = []CommandType{
	CommandInstall, CommandRemove, CommandUpdate, CommandNew, CommandList, CommandInfo,
	CommandAddRepo, CommandDelRepo, CommandListRepos,
}

var aliases = map[string]CommandType{
	"addrepo":  CommandAddRepo,
	"delrepo":  CommandDelRepo,
	"listrepo": CommandListRepos,
}

// ParseCommandType maps a command word, including the legacy spellings, to
// its variant
func ParseCommandType(word string) (CommandType, error) {
	for _, c := range AllCommands {
		if string(c) == word {
			return c, nil
		}
	}
	if c, ok := aliases[word]; ok {
		return c, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, msgUnknownCommand, word).
		WithDetail("command", word)
}

// DispatchOptions carries the argument of a command
type DispatchOptions struct {
	// Argument is the package reference, package name, repository URL,
	// nickname or pattern, depending on the command
	Argument string
	// WorkDir is where 'new' creates the package directory
	WorkDir string
}

// Dispatch runs cmdType against env. A non-nil Result may accompany an error
// when the command got partway.
func Dispatch(ctx context.Context, cmdType CommandType, env *Env, opts DispatchOptions) (*Result, error) {
	logger := logging.GetLogger("commands.dispatch")
	logger.Debug().
		Str("command", string(cmdType)).
		Str("argument", opts.Argument).
		Msg("Dispatching command")
	defer logging.LogOperationStart(logger, string(cmdType))()

	var result *Result
	var err error

	switch cmdType {
	case CommandInstall:
		result, err = Install(ctx, env, opts.Argument)
	case CommandUpdate:
		result, err = Update(ctx, env, opts.Argument)
	case CommandRemove:
		result, err = Remove(env, opts.Argument)
	case CommandNew:
		result, err = New(env, opts.WorkDir, opts.Argument)
	case CommandList:
		result, err = List(env)
	case CommandInfo:
		result, err = Info(env, opts.Argument)
	case CommandAddRepo:
		result, err = AddRepo(ctx, env, opts.Argument)
	case CommandDelRepo:
		result, err = DelRepo(env, opts.Argument)
	case CommandListRepos:
		result, err = ListRepos(env, opts.Argument)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, msgUnknownCommand, cmdType)
	}

	if err != nil {
		logger.Debug().
			Str("command", string(cmdType)).
			Err(err).
			Msg("Command execution failed")
		return result, err
	}

	logger.Info().
		Str("command", string(cmdType)).
		Int("warnings", len(result.Warnings)).
		Msg("Command completed successfully")
	return result, nil
}
