package command

import (
	"context"
	"sort"

	"github.com/ahmetson/envboot/arg"
	"github.com/ahmetson/envboot/configuration"
	"github.com/ahmetson/envboot/log"
	"github.com/ahmetson/envboot/proxy"
)

// Request is passed to the command handler
type Request struct {
	arg.Command
	Config   *configuration.Config
	Advisory proxy.Advisory
	Logger   *log.Logger
}

// HandleFunc returns the text to print. The empty text is not printed.
type HandleFunc = func(context.Context, Request) (string, error)

// Handlers command name => function
type Handlers map[Command]HandleFunc

func EmptyHandlers() Handlers {
	return Handlers{}
}

// DefaultHandlers of the application
func DefaultHandlers() Handlers {
	return EmptyHandlers().
		Add(Files, onFiles).
		Add(Env, onEnv).
		Add(Check, onCheck).
		Add(Proxy, onProxy).
		Add(Vault, onVault).
		Add(Version, onVersion)
}

// Exist Check does command handler exist
func (c Handlers) Exist(command Command) bool {
	_, ok := c[command]
	return ok
}

func (c Handlers) Add(command Command, handler HandleFunc) Handlers {
	c[command] = handler
	return c
}

// CommandNames returns the sorted list of command names without handlers
func (c Handlers) CommandNames() []string {
	commands := make([]string, 0, len(c))
	for name := range c {
		commands = append(commands, name.String())
	}
	sort.Strings(commands)

	return commands
}
