// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/mcp-registry/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/mcp-registry/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/mcp-registry/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/mcp-registry
package buildinfo

import (
	"fmt"
	"strings"
)

// userAgentProduct is the product token of the default User-Agent.
const userAgentProduct = "mcp-registry-client"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent returns the default User-Agent sent to the registry, e.g.
// "mcp-registry-client/1.2.3".
func UserAgent() string {
	return userAgentProduct + "/" + strings.TrimPrefix(Version, "v")
}
