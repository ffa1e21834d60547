package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahmetson/envboot/proxy"
)

// onProxy prints the detected proxy variables.
// If the url is given, then prints the proxy that the request to the url will use.
func onProxy(_ context.Context, request Request) (string, error) {
	lines := request.Advisory.Lines()
	if len(lines) == 0 {
		lines = append(lines, "no proxy configuration")
	}

	target := request.Arg(0)
	if len(target) > 0 {
		proxyURL, err := proxy.Resolve(request.Config.Lookup, target)
		if err != nil {
			return "", fmt.Errorf("proxy.Resolve: %w", err)
		}
		route := "direct"
		if proxyURL != nil {
			route = proxyURL.Redacted()
		}
		lines = append(lines, fmt.Sprintf("%s -> %s", target, route))
	}

	return strings.Join(lines, "\n"), nil
}
