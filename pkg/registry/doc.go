// Package registry is a client for the MCP server registry API.
//
// # Operations
//
//   - [Client.SearchServers]: GET /v0/servers?search=<name>, active servers only
//   - [Client.GetServerByID]: GET /v0/servers/{id}, nil for inactive servers
//   - [Client.GetServerByName]: search, then exact or substring name match,
//     then a lookup by id
//
// # Caching
//
// Each operation derives a normalized key (see the cache package), checks an
// in-memory [cache.Expiring] and then an optional persistent [cache.Store],
// and only calls the registry on a miss. Successful results are written to
// both tiers, including "not found" results; failures never are. Concurrent
// misses for the same key share one request.
//
// # Retries and errors
//
// Requests run under an [httputil.Strategy]. Transport failures, 5xx and 429
// are retried with exponential backoff. After the last attempt the failure is
// returned as an API_ERROR (RATE_LIMITED for 429) carrying the HTTP status.
// Malformed or invalid payloads are INVALID_RESPONSE and are never retried.
// Cancelling the context aborts any backoff wait and returns the context's
// error.
//
// Usage:
//
//	client, err := registry.New("https://registry.modelcontextprotocol.io")
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	server, err := client.GetServerByName(ctx, "io.github.acme/weather")
package registry
