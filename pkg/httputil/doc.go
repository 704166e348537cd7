// Package httputil provides the retry executor and HTTP plumbing used by the
// registry client.
//
// # Retry
//
// [Execute] runs an operation under a [Strategy], retrying transient failures
// with exponential backoff:
//
//	s := httputil.DefaultStrategy() // 3 retries, 1s, x2, capped at 30s
//	servers, err := httputil.Execute(ctx, s, "search", func(ctx context.Context) ([]Server, error) {
//	    return fetch(ctx)
//	})
//
// The operation is invoked at most MaxRetries+1 times. After the n-th failed
// attempt (0-based) Execute waits BaseDelay * BackoffFactor^n, limited by
// MaxDelay. There is no jitter.
//
// # What is retried
//
//   - [TransportError]: no response was received
//   - [StatusError] with status 5xx or 429
//   - errors wrapped with [Retryable]
//
// Everything else, including 4xx responses, decode failures and cancellation
// of the caller's context, ends the loop immediately and is returned as-is.
//
// # HTTP helpers
//
// [NewClient] builds a client with split connect/read/total timeouts.
// [CheckResponse] turns responses with status >= 400 into a [StatusError].
package httputil
