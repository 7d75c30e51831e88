package commands

import "fmt"

const (
	MsgRegistryRebuilt   = "Repository listing doesn't exist, rebuilt it with the default repository"
	msgDefaultRepository = "Did not specify repository, using %s repository instead"
	msgUnknownCommand    = "unknown command '%s'"
	msgNotInstalled      = "package %q is not installed"
)

func defaultRepositoryWarning(nickname string) string {
	return fmt.Sprintf(msgDefaultRepository, nickname)
}
