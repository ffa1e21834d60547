package command

import (
	"context"
	"fmt"
	"strings"
)

// onCheck verifies that the variables required by the project file are set
func onCheck(_ context.Context, request Request) (string, error) {
	if len(request.Config.File()) == 0 {
		return "no project file, nothing to check", nil
	}

	required := request.Config.Required()
	missing := request.Config.Missing()
	if len(missing) > 0 {
		return "", fmt.Errorf("%w (%d of %d): %s", ErrMissing, len(missing), len(required), strings.Join(missing, ", "))
	}

	return fmt.Sprintf("all %d required keys set", len(required)), nil
}
