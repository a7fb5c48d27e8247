// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/drunkowl/site-tools/internal/httputil"
)

// ErrStepFailed wraps every failure of a scenario step.
var ErrStepFailed = errors.New("verification step failed")

const (
	defaultStepTimeout = 30 * time.Second
	defaultBaseURL     = "http://localhost:8000"
)

// urlPollInterval is how often wait_url re-reads the page location.
var urlPollInterval = 100 * time.Millisecond

// Browser is the subset of browser automation a scenario needs.
type Browser interface {
	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, selector string) error
	WaitVisible(ctx context.Context, selector string) error
	Text(ctx context.Context, selector string) (string, error)
	Title(ctx context.Context) (string, error)
	Location(ctx context.Context) (string, error)
	Screenshot(ctx context.Context) ([]byte, error)
}

// Options configure a Runner.
type Options struct {
	// BaseURL resolves relative step URLs.
	BaseURL string
	// OutputDir receives screenshots.
	OutputDir string
	// StepTimeout bounds each step (default 30s).
	StepTimeout time.Duration
	// Client, when set, is used to check BaseURL is being served before
	// the browser is driven.
	Client *http.Client
	// MaxRetries bounds the reachability check retries.
	MaxRetries int
}

// Report summarises a completed scenario.
type Report struct {
	Scenario    string
	Steps       int
	Screenshots []string
}

// Runner executes scenarios against a Browser.
type Runner struct {
	browser Browser
	base    *url.URL
	opts    Options
	log     zerolog.Logger
}

// NewRunner validates opts and returns a runner driving b.
func NewRunner(b Browser, opts Options, log zerolog.Logger) (*Runner, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.StepTimeout <= 0 {
		opts.StepTimeout = defaultStepTimeout
	}
	base, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", opts.BaseURL)
	}
	return &Runner{browser: b, base: base, opts: opts, log: log}, nil
}

// Resolve turns a step URL into an absolute URL against the base URL.
func (r *Runner) Resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", ref, err)
	}
	return r.base.ResolveReference(u).String(), nil
}

// Run executes every step of sc in order, printing one status line per
// step to w. The first failing step stops the run.
func (r *Runner) Run(ctx context.Context, sc Scenario, w io.Writer) (*Report, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if r.opts.Client != nil {
		if err := httputil.CheckReachable(ctx, r.opts.Client, r.base.String(), r.opts.MaxRetries, r.log); err != nil {
			return nil, err
		}
	}

	report := &Report{Scenario: sc.Name}
	fmt.Fprintf(w, "scenario: %s (%d steps)\n", sc.Name, len(sc.Steps))
	for i, step := range sc.Steps {
		stepCtx, cancel := context.WithTimeout(ctx, r.opts.StepTimeout)
		shot, err := r.step(stepCtx, step)
		cancel()
		if err != nil {
			fmt.Fprintf(w, "failed:  %d. %s\n", i+1, step)
			return report, fmt.Errorf("step %d (%s): %w: %v", i+1, step, ErrStepFailed, err)
		}
		report.Steps++
		if shot != "" {
			report.Screenshots = append(report.Screenshots, shot)
			fmt.Fprintf(w, "ok:      %d. %s -> %s\n", i+1, step, shot)
			continue
		}
		fmt.Fprintf(w, "ok:      %d. %s\n", i+1, step)
	}
	fmt.Fprintf(w, "\nScenario %s passed: %d steps, %d screenshots\n", sc.Name, report.Steps, len(report.Screenshots))
	return report, nil
}

// step runs one step and returns the screenshot path it wrote, if any.
func (r *Runner) step(ctx context.Context, s Step) (string, error) {
	r.log.Debug().Str("step", s.String()).Msg("running step")

	switch s.Action {
	case ActionGoto:
		target, err := r.Resolve(s.URL)
		if err != nil {
			return "", err
		}
		return "", r.browser.Navigate(ctx, target)

	case ActionClick:
		return "", r.browser.Click(ctx, s.Selector)

	case ActionWaitURL:
		target, err := r.Resolve(s.URL)
		if err != nil {
			return "", err
		}
		return "", r.waitURL(ctx, target)

	case ActionExpectVisible:
		return "", r.browser.WaitVisible(ctx, s.Selector)

	case ActionExpectText:
		if err := r.browser.WaitVisible(ctx, s.Selector); err != nil {
			return "", err
		}
		got, err := r.browser.Text(ctx, s.Selector)
		if err != nil {
			return "", err
		}
		if normalizeSpace(got) != normalizeSpace(s.Text) {
			return "", fmt.Errorf("text of %s is %q, want %q", s.Selector, got, s.Text)
		}
		return "", nil

	case ActionExpectTitle:
		got, err := r.browser.Title(ctx)
		if err != nil {
			return "", err
		}
		if got != s.Text {
			return "", fmt.Errorf("title is %q, want %q", got, s.Text)
		}
		return "", nil

	case ActionScreenshot:
		return r.screenshot(ctx, s.File)

	default:
		return "", fmt.Errorf("unknown action %q", s.Action)
	}
}

func (r *Runner) waitURL(ctx context.Context, want string) error {
	var last string
	for {
		loc, err := r.browser.Location(ctx)
		if err != nil {
			return err
		}
		if loc == want {
			return nil
		}
		last = loc
		select {
		case <-ctx.Done():
			return fmt.Errorf("page stayed at %s, want %s: %w", last, want, ctx.Err())
		case <-time.After(urlPollInterval):
		}
	}
}

func (r *Runner) screenshot(ctx context.Context, file string) (string, error) {
	img, err := r.browser.Screenshot(ctx)
	if err != nil {
		return "", err
	}
	path := filepath.Join(r.opts.OutputDir, file)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating screenshot directory: %w", err)
	}
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return "", fmt.Errorf("writing screenshot: %w", err)
	}
	return path, nil
}

// normalizeSpace collapses runs of whitespace, as rendered text does.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
