// Package proxy inspects the proxy variables of the environment.
//
// The advisory is informational only. The outbound HTTP requests of the
// application use Func, which honors HTTP_PROXY, HTTPS_PROXY and NO_PROXY
// (in either case) and doesn't use ALL_PROXY.
package proxy

import (
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/ahmetson/envboot/log"
	"golang.org/x/net/http/httpproxy"
)

// Names of the proxy variables in the order they are checked
var Names = []string{
	"HTTP_PROXY", "http_proxy",
	"HTTPS_PROXY", "https_proxy",
	"ALL_PROXY", "all_proxy",
}

// Note is printed once if any proxy variable is set
const Note = "outbound HTTP requests honor HTTP_PROXY, HTTPS_PROXY and NO_PROXY; ALL_PROXY is not used"

// LookupFunc returns the variable value and whether it's set, identical to os.LookupEnv
type LookupFunc = func(string) (string, bool)

// Detection is the proxy variable that has a non-empty value
type Detection struct {
	Name  string
	Value string
}

// Redacted value hides the password if the value is a URL with credentials.
func (detection Detection) Redacted() string {
	u, err := url.Parse(detection.Value)
	if err != nil || u.User == nil {
		return detection.Value
	}
	return u.Redacted()
}

// Advisory is the result of the check
type Advisory struct {
	Detected []Detection
}

// Found returns true if any proxy variable is set
func (advisory Advisory) Found() bool {
	return len(advisory.Detected) > 0
}

// Lines returns the human-readable detection lines followed by the Note.
// Returns nothing if no proxy variable was set.
func (advisory Advisory) Lines() []string {
	if !advisory.Found() {
		return []string{}
	}
	lines := make([]string, 0, len(advisory.Detected)+1)
	for _, detection := range advisory.Detected {
		lines = append(lines, fmt.Sprintf("proxy configuration detected: %s=%s", detection.Name, detection.Redacted()))
	}
	return append(lines, "note: "+Note)
}

// Check reads the proxy variables. Empty values are treated as absent.
func Check(lookup LookupFunc) Advisory {
	advisory := Advisory{Detected: make([]Detection, 0)}
	for _, name := range Names {
		value, ok := lookup(name)
		if !ok || len(value) == 0 {
			continue
		}
		advisory.Detected = append(advisory.Detected, Detection{Name: name, Value: value})
	}
	return advisory
}

// CheckOS is Check over the process environment
func CheckOS() Advisory {
	return Check(os.LookupEnv)
}

// Report prints each detection and then the Note.
func Report(logger *log.Logger, advisory Advisory) {
	for _, detection := range advisory.Detected {
		logger.Warn("proxy configuration detected", "name", detection.Name, "value", detection.Redacted())
	}
	if advisory.Found() {
		logger.Warn(Note)
	}
}

func get(lookup LookupFunc, names ...string) string {
	for _, name := range names {
		if value, ok := lookup(name); ok && len(value) > 0 {
			return value
		}
	}
	return ""
}

// Config returns the proxy configuration that the outbound requests are using.
// The upper case variable has a priority over the lower case one.
func Config(lookup LookupFunc) *httpproxy.Config {
	return &httpproxy.Config{
		HTTPProxy:  get(lookup, "HTTP_PROXY", "http_proxy"),
		HTTPSProxy: get(lookup, "HTTPS_PROXY", "https_proxy"),
		NoProxy:    get(lookup, "NO_PROXY", "no_proxy"),
	}
}

// Func returns the function for http.Transport.Proxy
func Func(lookup LookupFunc) func(*http.Request) (*url.URL, error) {
	proxyFunc := Config(lookup).ProxyFunc()
	return func(req *http.Request) (*url.URL, error) {
		return proxyFunc(req.URL)
	}
}

// Resolve returns the proxy that a request to rawURL goes through.
// The nil url means the request is direct.
func Resolve(lookup LookupFunc, rawURL string) (*url.URL, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse('%s'): %w", rawURL, err)
	}
	if len(target.Scheme) == 0 || len(target.Host) == 0 {
		return nil, fmt.Errorf("'%s' is not an absolute url", rawURL)
	}

	proxyURL, err := Config(lookup).ProxyFunc()(target)
	if err != nil {
		return nil, fmt.Errorf("httpproxy.ProxyFunc: %w", err)
	}
	return proxyURL, nil
}
