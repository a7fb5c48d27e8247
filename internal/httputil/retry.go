// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP helpers used to check the local site
// server before a browser verification run.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// RetryBaseDelay controls the base duration for exponential backoff.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = 500 * time.Millisecond

const defaultMaxRetries = 5

// retryableStatus reports whether a response means "try again shortly":
// 429 from a rate limiter, 503 from a server that is still starting.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable
}

// DoWithRetry executes an HTTP request and retries on 429, 503 and refused
// connections with exponential backoff: RetryBaseDelay, doubled each attempt.
//
// When maxRetries is 0 the default (5) is used. Retryable response bodies are
// drained and closed before sleeping. If the context is cancelled during a
// backoff wait the function returns ctx.Err(). After exhausting retries the
// last response (or connection error) is returned as-is.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, log zerolog.Logger) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))

		var reason string
		switch {
		case err != nil && errors.Is(err, syscall.ECONNREFUSED):
			reason = "connection refused"
		case err != nil:
			return nil, err
		case retryableStatus(resp.StatusCode):
			reason = resp.Status
		default:
			return resp, nil
		}

		if attempt >= maxRetries {
			return resp, err
		}

		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		log.Debug().Str("url", req.URL.String()).Str("reason", reason).
			Dur("backoff", backoff).Int("attempt", attempt+1).Int("max", maxRetries).
			Msg("retrying request")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// CheckReachable GETs url and fails unless the final response is 2xx.
func CheckReachable(ctx context.Context, client *http.Client, url string, maxRetries int, log zerolog.Logger) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := DoWithRetry(ctx, client, req, maxRetries, log)
	if err != nil {
		return fmt.Errorf("site not reachable at %s: %w", url, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("site not reachable at %s: HTTP %d", url, resp.StatusCode)
	}
	return nil
}
