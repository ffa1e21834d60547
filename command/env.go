package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// onEnv prints the merged variables with the file that set them.
//
//	env          all variables
//	env get KEY  the value of the variable, nothing if it's set to the empty string
func onEnv(_ context.Context, request Request) (string, error) {
	switch request.Arg(0) {
	case "":
		return listEnv(request), nil
	case "get":
		key := request.Arg(1)
		if len(key) == 0 {
			return "", fmt.Errorf("%w: env get <KEY>", ErrUsage)
		}
		value, ok := request.Config.Lookup(key)
		if !ok {
			return "", fmt.Errorf("'%s': %w", key, ErrNotSet)
		}
		return value, nil
	default:
		return "", fmt.Errorf("%w: env [get <KEY>], unknown '%s'", ErrUsage, request.Arg(0))
	}
}

func listEnv(request Request) string {
	loaded := request.Config.Loaded()
	keys := loaded.Keys()

	lines := make([]string, len(keys))
	for i, key := range keys {
		lines[i] = fmt.Sprintf("%s=%s # %s", key, quote(loaded.Vars[key]), loaded.Sources[key])
	}
	return strings.Join(lines, "\n")
}

// quote the value only if it can't be printed on one line as it is
func quote(value string) string {
	if strings.ContainsAny(value, " \t\r\n\"'#") {
		return strconv.Quote(value)
	}
	return value
}
