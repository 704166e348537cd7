package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/mcp-registry/pkg/errors"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		want           string
		wantUnexpected bool
	}{
		{"input", apperrors.New(apperrors.ErrCodeInvalidInput, "search term cannot be empty"), "search term cannot be empty", false},
		{"config", apperrors.New(apperrors.ErrCodeInvalidConfig, "bad config"), "bad config", false},
		{"not found", apperrors.New(apperrors.ErrCodeNotFound, `server "x" not found`), `server "x" not found`, false},
		{"api 404", apperrors.WrapStatus(apperrors.ErrCodeAPI, 404, errors.New("x"), "Server not found"), "server not found", false},
		{"api 500", apperrors.WrapStatus(apperrors.ErrCodeAPI, 500, errors.New("x"), "HTTP 500"), "registry service unavailable, try again later", false},
		{"api 502", apperrors.WrapStatus(apperrors.ErrCodeAPI, 502, errors.New("x"), "HTTP 502"), "registry service unavailable, try again later", false},
		{"api 403", apperrors.WrapStatus(apperrors.ErrCodeAPI, 403, errors.New("x"), "forbidden"), "API request failed (HTTP 403)", false},
		{"api transport", apperrors.Wrap(apperrors.ErrCodeAPI, errors.New("refused"), "request failed"), "API request failed", false},
		{"rate limited", apperrors.WrapStatus(apperrors.ErrCodeRateLimited, 429, errors.New("x"), "HTTP 429"), "rate limited by the registry, try again later", false},
		{"invalid response", apperrors.Wrap(apperrors.ErrCodeInvalidResponse, errors.New("eof"), "bad"), "failed to process response", false},
		{"wrapped", fmt.Errorf("outer: %w", apperrors.New(apperrors.ErrCodeInvalidInput, "inner")), "inner", false},
		{"deadline", context.DeadlineExceeded, "request timed out", false},
		{"internal", apperrors.New(apperrors.ErrCodeInternal, "boom"), "unexpected error", true},
		{"plain", errors.New("boom"), "unexpected error", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, unexpected := userMessage(tt.err)
			if got != tt.want || unexpected != tt.wantUnexpected {
				t.Errorf("userMessage() = (%q, %v), want (%q, %v)", got, unexpected, tt.want, tt.wantUnexpected)
			}
		})
	}
}

func TestRun_LogsUnexpectedErrors(t *testing.T) {
	var logs bytes.Buffer
	c := New(&logs, LogInfo)

	cmd := &cobra.Command{Use: "x"}
	cmd.SetContext(log.WithContext(context.Background(), c.Logger))

	err := c.run(func(*cobra.Command, []string) error {
		return errors.New("disk on fire")
	})(cmd, nil)
	if err == nil || err.Error() != "unexpected error" {
		t.Errorf("error = %v", err)
	}
	if !strings.Contains(logs.String(), "disk on fire") {
		t.Errorf("full error not logged: %q", logs.String())
	}
}

func TestRun_PassesCancellation(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	cmd := &cobra.Command{Use: "x"}
	cmd.SetContext(context.Background())

	err := c.run(func(*cobra.Command, []string) error {
		return fmt.Errorf("search: %w", context.Canceled)
	})(cmd, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled in chain", err)
	}
}

func TestVerboseLogsRequestID(t *testing.T) {
	reg := newRegistry(t)

	var logs, stdout bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"-v", "--base-url", reg.URL, "search", "weather"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("search error: %v", err)
	}

	out := logs.String()
	for _, want := range []string{"request_id", "http request", "http response", "cache miss"} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose logs missing %q:\n%s", want, out)
		}
	}
	headers := reg.Headers()
	if len(headers) == 0 || headers[0].Get("X-Request-ID") == "" {
		t.Error("request should carry X-Request-ID")
	}
}
