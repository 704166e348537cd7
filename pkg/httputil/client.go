package httputil

import (
	"net"
	"net/http"
	"time"
)

// Timeouts splits the HTTP client deadline into phases. Zero disables the
// corresponding limit.
type Timeouts struct {
	Total   time.Duration // whole request, including reading the body
	Connect time.Duration // TCP connect
	Read    time.Duration // waiting for response headers after the request is written
	Idle    time.Duration // how long an idle pooled connection is kept
}

// DefaultTimeouts mirrors the registry client defaults.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Total:   30 * time.Second,
		Connect: 10 * time.Second,
		Read:    30 * time.Second,
		Idle:    5 * time.Second,
	}
}

// NewClient returns an *http.Client with its own pooled transport configured
// from t. The transport is cloned from http.DefaultTransport so proxy
// settings from the environment still apply.
func NewClient(t Timeouts) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   t.Connect,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.ResponseHeaderTimeout = t.Read
	transport.IdleConnTimeout = t.Idle
	transport.MaxIdleConnsPerHost = 10

	return &http.Client{
		Timeout:   t.Total,
		Transport: transport,
	}
}
