// envboot loads the environment files of the working directory and runs the command.
//
// The environment files are the canonical file (.env) and the suffixed files (.env.*).
// The suffixed files are loaded first in the lexicographic order, then the canonical one,
// so the canonical file overrides them. Pass --variant=roblox to use .env.roblox instead.
//
// After loading, the proxy variables are reported, then the command is executed:
//
//	envboot files
//	envboot env [get <KEY>]
//	envboot check
//	envboot proxy [<url>]
//	envboot vault pull <secret> [--out=<file>]
//	envboot version
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ahmetson/envboot/arg"
	"github.com/ahmetson/envboot/command"
	"github.com/ahmetson/envboot/configuration"
	"github.com/ahmetson/envboot/env"
	"github.com/ahmetson/envboot/log"
	"github.com/ahmetson/envboot/path"
	"github.com/ahmetson/envboot/proxy"
)

const (
	VariantFlag  = "variant"
	LogLevelFlag = "log-level"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, arg.ParseOS(), os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run bootstraps the environment and executes the command.
// The result is printed to stdout, the logs and the error to stderr.
// Returns the exit code.
func run(ctx context.Context, parsed arg.Command, stdout io.Writer, stderr io.Writer) int {
	logger, err := log.NewWithOutput(stderr, "envboot", log.WithoutTimestamp)
	if err != nil {
		fmt.Fprintf(stderr, "%+v\n", err)
		return 1
	}

	if level := parsed.FlagValue(LogLevelFlag); len(level) > 0 {
		if err := logger.SetLevel(level); err != nil {
			logger.Warn("invalid log level, keep the default", "error", err)
		}
	}

	variant, err := env.VariantByName(parsed.FlagValue(VariantFlag))
	if err != nil {
		logger.Warn("unknown variant, use the default", "error", err, "default", env.Default.Canonical)
		variant = env.Default
	}

	dir, err := path.CurrentDir()
	if err != nil {
		logger.Warn("can not resolve the working directory", "error", err, "fallback", dir)
	}

	loaded := env.Load(dir, variant, logger.Child("env"))

	advisory := proxy.CheckOS()
	proxy.Report(logger.Child("proxy"), advisory)

	config, err := configuration.New(logger.Child("configuration"), loaded)
	if err != nil {
		fmt.Fprintf(stderr, "%+v\n", err)
		return 1
	}

	runner := command.NewRunner(config, advisory, logger)
	output, ok, err := runner.Run(ctx, parsed)
	if err != nil {
		fmt.Fprintf(stderr, "%+v\n", err)
		return 1
	}
	if ok {
		fmt.Fprintln(stdout, output)
	}
	return 0
}
