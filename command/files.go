package command

import (
	"context"
	"fmt"
	"strings"
)

// onFiles lists the environment files in the order they were loaded
func onFiles(_ context.Context, request Request) (string, error) {
	loaded := request.Config.Loaded()
	if loaded.DirErr != nil {
		return fmt.Sprintf("can not list %s: %v", loaded.Dir, loaded.DirErr), nil
	}
	if len(loaded.Files) == 0 {
		return fmt.Sprintf("no environment files matching %s in %s", loaded.Variant.Canonical, loaded.Dir), nil
	}

	lines := make([]string, len(loaded.Files))
	for i, file := range loaded.Files {
		status := fmt.Sprintf("ok (%d keys)", len(file.Keys))
		if !file.Loaded() {
			status = fmt.Sprintf("failed: %v", file.Err)
		}
		if loaded.Variant.IsCanonical(file.Name) {
			status += ", canonical"
		}
		lines[i] = fmt.Sprintf("%d. %s\t%s", i+1, file.Name, status)
	}

	return strings.Join(lines, "\n"), nil
}
