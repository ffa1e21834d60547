package command

import (
	"context"
	"fmt"

	"github.com/ahmetson/envboot/arg"
	"github.com/ahmetson/envboot/configuration"
	"github.com/ahmetson/envboot/log"
	"github.com/ahmetson/envboot/proxy"
)

// Runner executes the parsed command with the bootstrap results.
type Runner struct {
	handlers Handlers
	config   *configuration.Config
	advisory proxy.Advisory
	logger   *log.Logger
}

// NewRunner with the default handlers
func NewRunner(config *configuration.Config, advisory proxy.Advisory, logger *log.Logger) *Runner {
	return &Runner{
		handlers: DefaultHandlers(),
		config:   config,
		advisory: advisory,
		logger:   logger,
	}
}

// Handlers returns the registered handlers. Add to them to extend the runner.
func (runner *Runner) Handlers() Handlers {
	return runner.handlers
}

// Run the command. If the command has a text to print, then ok is true.
func (runner *Runner) Run(ctx context.Context, parsed arg.Command) (string, bool, error) {
	if len(parsed.Name) == 0 {
		return "", false, usageError(runner.handlers, "no command given")
	}

	name := New(parsed.Name)
	handler, ok := runner.handlers[name]
	if !ok {
		return "", false, usageError(runner.handlers, "unknown command '%s'", parsed.Name)
	}

	runner.logger.Debug("running", "command", name, "args", parsed.Args, "flags", parsed.Flags)
	request := Request{
		Command:  parsed,
		Config:   runner.config,
		Advisory: runner.advisory,
		Logger:   runner.logger.Child(name.String()),
	}

	output, err := handler(ctx, request)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", name, err)
	}

	return output, len(output) > 0, nil
}
