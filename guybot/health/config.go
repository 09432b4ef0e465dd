package health

import (
	"os"
	"strings"
)

// Lookuper resolves configuration keys such as BACKEND_DEV_URL.
type Lookuper interface {
	Lookup(key string) (string, bool)
}

// Environ looks keys up in the process environment.
type Environ struct{}

func (Environ) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

// Static looks keys up in a fixed map.
type Static map[string]string

func (s Static) Lookup(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

// Key returns the configuration key naming the URL of service in environment.
func Key(service, environment string) string {
	return strings.ToUpper(service) + "_" + strings.ToUpper(environment) + "_URL"
}

// BackendKey names the URL consulted by CheckBackend.
const BackendKey = "BACKEND_URL"
