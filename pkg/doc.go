// Package pkg provides the libraries behind the mcp-registry client and CLI.
//
// # Overview
//
// mcp-registry reads server entries from an MCP server registry. Every read
// flows through one pipeline:
//
//	caller (CLI or library user)
//	         ↓
//	    [registry] Client (validate input, derive cache key)
//	         ↓
//	    [cache] Expiring (in-memory TTL cache) → Store (file / redis)
//	         ↓  miss
//	    [httputil] Execute (retry with exponential backoff)
//	         ↓
//	    registry HTTP API → decode → validate → cache
//
// # Quick Start
//
//	client, err := registry.New("https://registry.modelcontextprotocol.io")
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	resp, err := client.SearchServers(ctx, "weather")
//	server, err := client.GetServerByName(ctx, "io.github.acme/weather")
//
// # Main Packages
//
// [registry] - The registry client: search, get by id, get by name, with
// caching, request coalescing and error mapping. Also the server data model.
//
// [cache] - Expiring, a generic in-memory TTL cache, the cache key formats,
// and persistent byte stores (NullStore, FileStore, RedisStore).
//
// [httputil] - The retry executor (Strategy, Execute), transport and status
// error types, and the HTTP client factory.
//
// [config] - Layered configuration: defaults, TOML file, environment.
//
// [errors] - Coded application errors and input validation.
//
// [observability] - Hooks for cache, HTTP and retry events.
//
// [registrytest] - An in-process fake registry for tests.
//
// # Testing
//
//	go test ./...                 # All tests
//	go test ./pkg/registry/...    # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [registry]: https://pkg.go.dev/github.com/matzehuels/mcp-registry/pkg/registry
// [cache]: https://pkg.go.dev/github.com/matzehuels/mcp-registry/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/mcp-registry/pkg/httputil
// [config]: https://pkg.go.dev/github.com/matzehuels/mcp-registry/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/mcp-registry/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/mcp-registry/pkg/observability
// [registrytest]: https://pkg.go.dev/github.com/matzehuels/mcp-registry/pkg/registrytest
package pkg
