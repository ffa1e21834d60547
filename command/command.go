// Package command runs the commands of the application
// against the loaded environment.
package command

import (
	"errors"
	"fmt"
	"strings"
)

// Command is the name of the command that the user passed
type Command string

const (
	Files   Command = "files"
	Env     Command = "env"
	Check   Command = "check"
	Proxy   Command = "proxy"
	Vault   Command = "vault"
	Version Command = "version"
)

var (
	ErrUsage   = errors.New("usage")
	ErrNotSet  = errors.New("not set")
	ErrMissing = errors.New("missing required variables")
)

func (c Command) String() string {
	return string(c)
}

func New(value string) Command {
	return Command(value)
}

func usageError(handlers Handlers, format string, args ...interface{}) error {
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s (commands: %s)", ErrUsage, message, strings.Join(handlers.CommandNames(), ", "))
}
