package command

import (
	"context"
	"fmt"
	"runtime/debug"
)

// BuildVersion and BuildCommit are injected at build time:
//
//	go build -ldflags "-X github.com/ahmetson/envboot/command.BuildVersion=v1.0.0"
var (
	BuildVersion = "dev"
	BuildCommit  = ""
)

// onVersion prints the build version.
// A development build installed with `go install` shows the module version instead.
func onVersion(_ context.Context, _ Request) (string, error) {
	version := BuildVersion
	if info, ok := debug.ReadBuildInfo(); ok && version == "dev" {
		if len(info.Main.Version) > 0 && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
	}

	if len(BuildCommit) > 0 {
		return fmt.Sprintf("envboot %s (%s)", version, BuildCommit), nil
	}
	return "envboot " + version, nil
}
