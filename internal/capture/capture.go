// Package capture takes screenshots of the dashboard chart for the assistant's
// image path.
package capture

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/phuslu/log"
)

// ErrDenied is returned when a screenshot cannot be taken: capture is
// disabled, the browser is missing, or the page never rendered the chart.
var ErrDenied = errors.New("screen capture denied or unavailable")

// Capturer produces a PNG screenshot of the chart.
type Capturer interface {
	Capture(ctx context.Context) ([]byte, error)
}

// Disabled is a Capturer that always fails with ErrDenied.
type Disabled struct{}

func (Disabled) Capture(context.Context) ([]byte, error) { return nil, ErrDenied }

// Options configures a ChromeCapturer.
type Options struct {
	URL      string
	Selector string
	Width    int
	Height   int
	Timeout  time.Duration
	ExecPath string // empty uses the chromedp lookup
}

// ChromeCapturer screenshots Selector on URL with a headless Chrome.
type ChromeCapturer struct {
	opts Options
}

// NewChromeCapturer creates a ChromeCapturer, filling unset options.
func NewChromeCapturer(opts Options) *ChromeCapturer {
	if opts.Selector == "" {
		opts.Selector = "#chart-panel"
	}
	if opts.Width <= 0 {
		opts.Width = 1440
	}
	if opts.Height <= 0 {
		opts.Height = 900
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 45 * time.Second
	}
	return &ChromeCapturer{opts: opts}
}

// Capture starts a browser, loads the dashboard and screenshots the chart
// element. Every failure is reported as ErrDenied.
func (c *ChromeCapturer) Capture(ctx context.Context) ([]byte, error) {
	if c.opts.URL == "" {
		return nil, fmt.Errorf("%w: no capture url", ErrDenied)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(c.opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()
	browserCtx, timeoutCancel := context.WithTimeout(browserCtx, c.opts.Timeout)
	defer timeoutCancel()

	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		if e, ok := ev.(*runtime.EventExceptionThrown); ok && e.ExceptionDetails != nil {
			log.Warn().Str("url", c.opts.URL).Str("exception", e.ExceptionDetails.Text).Msg("page exception during capture")
		}
	})

	var buf []byte
	start := time.Now()
	err := chromedp.Run(browserCtx,
		emulation.SetDeviceMetricsOverride(int64(c.opts.Width), int64(c.opts.Height), 1, false),
		chromedp.Navigate(c.opts.URL),
		chromedp.WaitVisible(c.opts.Selector, chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.Screenshot(c.opts.Selector, &buf, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDenied, err)
	}
	log.Debug().Str("url", c.opts.URL).Int("bytes", len(buf)).Dur("took", time.Since(start)).Msg("chart captured")
	return buf, nil
}
