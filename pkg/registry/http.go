package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/matzehuels/mcp-registry/pkg/errors"
	"github.com/matzehuels/mcp-registry/pkg/httputil"
	"github.com/matzehuels/mcp-registry/pkg/observability"
)

// maxBodySize caps how much of a successful response is read.
const maxBodySize = 16 << 20

// getJSON performs GET path under the retry strategy and decodes the body
// into v. Failures that survive the retries are translated by apiError.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	op := "GET " + path
	body, err := httputil.Execute(ctx, c.strategy, op, func(ctx context.Context) ([]byte, error) {
		return c.doRequest(ctx, path, query)
	})
	if err != nil {
		return apiError(err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return invalidResponse(op, err)
	}
	return nil
}

// doRequest makes a single GET. It returns a *httputil.TransportError when no
// response was received and a *httputil.StatusError for status >= 400. A body
// cut short after a successful status is marked with httputil.Retryable.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if id, ok := RequestIDFrom(ctx); ok {
		req.Header.Set(HeaderRequestID, id)
	}

	hooks := observability.HTTP()
	host, reqPath := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, reqPath)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, reqPath, err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &httputil.TransportError{Err: err}
	}
	hooks.OnResponse(ctx, req.Method, host, reqPath, resp.StatusCode, time.Since(start))

	if err := httputil.CheckResponse(resp); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, httputil.Retryable(fmt.Errorf("read response body: %w", err))
	}
	return body, nil
}

// apiError converts a transport, status or body read failure into an
// API_ERROR (or RATE_LIMITED for 429). Status failures carry the HTTP status
// and the registry's JSON error message when the body has one. Other errors,
// including context cancellation, are returned unchanged.
func apiError(err error) error {
	var se *httputil.StatusError
	if errors.As(err, &se) {
		code := apperrors.ErrCodeAPI
		if se.StatusCode == http.StatusTooManyRequests {
			code = apperrors.ErrCodeRateLimited
		}
		return apperrors.WrapStatus(code, se.StatusCode, err, "%s", statusMessage(se))
	}

	var te *httputil.TransportError
	if errors.As(err, &te) {
		return apperrors.Wrap(apperrors.ErrCodeAPI, err, "request failed")
	}

	var re *httputil.RetryableError
	if errors.As(err, &re) {
		return apperrors.Wrap(apperrors.ErrCodeAPI, err, "incomplete response")
	}
	return err
}

func statusMessage(se *httputil.StatusError) string {
	var re RegistryError
	if json.Unmarshal(se.Body, &re) == nil && re.Error != "" {
		if re.Message != "" {
			return re.Message
		}
		return re.Error
	}
	body := strings.TrimSpace(string(se.Body))
	if body == "" {
		return fmt.Sprintf("HTTP %d", se.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", se.StatusCode, body)
}

func invalidResponse(what string, err error) error {
	return apperrors.Wrap(apperrors.ErrCodeInvalidResponse, err, "failed to parse %s response", what)
}
