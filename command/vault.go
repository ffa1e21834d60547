package command

import (
	"context"
	"fmt"

	"github.com/ahmetson/envboot/arg"
	"github.com/ahmetson/envboot/env"
	"github.com/ahmetson/envboot/path"
	"github.com/ahmetson/envboot/vault"
)

const (
	// VaultSuffix is the suffix of the file that keeps the pulled secrets
	VaultSuffix = "vault"
	// OutFlag overrides the file to write the secrets into
	OutFlag = "out"
)

// onVault writes the Vault secret into the environment file.
//
//	vault pull <secret> [--out=<file>]
//
// By default the file is <canonical>.vault, so it's loaded before the canonical file.
func onVault(ctx context.Context, request Request) (string, error) {
	if request.Arg(0) != "pull" || len(request.Arg(1)) == 0 {
		return "", fmt.Errorf("%w: vault pull <secret> [%s]", ErrUsage, arg.NewFlag(OutFlag, "<file>"))
	}
	secret := request.Arg(1)

	loaded := request.Config.Loaded()
	out := request.FlagValue(OutFlag)
	if len(out) == 0 {
		out = loaded.Variant.SuffixedName(VaultSuffix)
	}
	out = path.AbsDir(loaded.Dir, out)
	if !loaded.Variant.Match(path.FileName(out)) {
		request.Logger.Warn("the file won't be loaded on the next start", "file", out, "canonical", loaded.Variant.Canonical)
	}
	exist, err := path.FileExist(out)
	if err != nil {
		return "", fmt.Errorf("path.FileExist: %w", err)
	}
	if exist {
		request.Logger.Warn("overwriting existing file", "file", out)
	}

	client, err := vault.New(request.Config, request.Logger)
	if err != nil {
		return "", fmt.Errorf("vault.New: %w", err)
	}
	if err := client.Login(ctx); err != nil {
		return "", fmt.Errorf("vault.Login: %w", err)
	}
	vars, err := client.Pull(ctx, secret)
	if err != nil {
		return "", fmt.Errorf("vault.Pull: %w", err)
	}

	if err := env.WriteEnv(vars, out); err != nil {
		return "", fmt.Errorf("env.WriteEnv: %w", err)
	}

	return fmt.Sprintf("wrote %d keys to %s", len(vars), out), nil
}
