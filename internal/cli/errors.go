package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/mcp-registry/pkg/errors"
)

// run wraps a command body so that failures reach the user as short
// messages. Cancellation is returned unchanged so main can exit with 130.
func (c *CLI) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil || errors.Is(err, context.Canceled) {
			return err
		}
		logger := log.FromContext(cmd.Context())
		msg, unexpected := userMessage(err)
		if unexpected {
			logger.Error("unexpected error", "err", err)
		} else {
			logger.Debug("command failed", "err", err)
		}
		return errors.New(msg)
	}
}

// userMessage maps err to the message shown on stderr. unexpected is true
// for errors that do not belong to a known category.
func userMessage(err error) (msg string, unexpected bool) {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidConfig, apperrors.ErrCodeNotFound:
		return apperrors.UserMessage(err), false
	case apperrors.ErrCodeRateLimited:
		return "rate limited by the registry, try again later", false
	case apperrors.ErrCodeAPI:
		status := apperrors.StatusCodeOf(err)
		switch {
		case status == http.StatusNotFound:
			return "server not found", false
		case status >= http.StatusInternalServerError:
			return "registry service unavailable, try again later", false
		case status > 0:
			return fmt.Sprintf("API request failed (HTTP %d)", status), false
		default:
			return "API request failed", false
		}
	case apperrors.ErrCodeInvalidResponse:
		return "failed to process response", false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out", false
	}
	return "unexpected error", true
}
