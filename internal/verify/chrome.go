// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

// ChromeBrowser drives a local Chrome or Chromium through the DevTools
// protocol.
type ChromeBrowser struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewChromeBrowser starts a browser and opens one tab. Close must be called
// to stop it.
func NewChromeBrowser(parent context.Context, headless bool) (*ChromeBrowser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.WindowSize(1280, 800),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	ctx, tabCancel := chromedp.NewContext(allocCtx)
	cancel := func() {
		tabCancel()
		allocCancel()
	}

	// The first Run launches the browser.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("starting browser: %w", err)
	}
	return &ChromeBrowser{ctx: ctx, cancel: cancel}, nil
}

// Close shuts the browser down.
func (b *ChromeBrowser) Close() error {
	b.cancel()
	return nil
}

// run executes actions on the tab, bounded by ctx's deadline.
func (b *ChromeBrowser) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx := b.ctx
	if dl, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(b.ctx, dl)
		defer cancel()
	}
	return chromedp.Run(runCtx, actions...)
}

func (b *ChromeBrowser) Navigate(ctx context.Context, url string) error {
	return b.run(ctx, chromedp.Navigate(url))
}

func (b *ChromeBrowser) Click(ctx context.Context, selector string) error {
	return b.run(ctx, chromedp.Click(selector, chromedp.ByQuery))
}

func (b *ChromeBrowser) WaitVisible(ctx context.Context, selector string) error {
	return b.run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

func (b *ChromeBrowser) Text(ctx context.Context, selector string) (string, error) {
	var s string
	err := b.run(ctx, chromedp.Text(selector, &s, chromedp.ByQuery))
	return s, err
}

func (b *ChromeBrowser) Title(ctx context.Context) (string, error) {
	var s string
	err := b.run(ctx, chromedp.Title(&s))
	return s, err
}

func (b *ChromeBrowser) Location(ctx context.Context) (string, error) {
	var s string
	err := b.run(ctx, chromedp.Location(&s))
	return s, err
}

// Screenshot captures the viewport as PNG.
func (b *ChromeBrowser) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	err := b.run(ctx, chromedp.CaptureScreenshot(&buf))
	return buf, err
}
