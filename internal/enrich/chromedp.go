package enrich

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/metrics"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"
	defaultNavTimeout = 15 * time.Second

	viewportWidth  = 1366
	viewportHeight = 768
	timezoneID     = "Europe/London"

	// Footers are a common place for contact emails; give lazy-loaded
	// ones a moment to render after scrolling.
	settleDelay = time.Second

	webdriverScrubScript = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`
)

// HeadlessConfig controls the chromedp-backed fetcher.
type HeadlessConfig struct {
	UserAgent         string
	NavigationTimeout time.Duration
	// DomainQPS caps navigations per second against a single host.
	DomainQPS float64
}

// HeadlessFetcher renders pages with headless Chrome, configured to
// minimize the signals bot-detection scripts look for.
type HeadlessFetcher struct {
	cfg         HeadlessConfig
	allocator   context.Context
	allocCancel context.CancelFunc
	limiters    sync.Map
	logger      *zap.Logger
}

// NewHeadless creates a headless fetcher backed by chromedp.
func NewHeadless(cfg HeadlessConfig, logger *zap.Logger) *HeadlessFetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = defaultNavTimeout
	}
	if cfg.DomainQPS <= 0 {
		cfg.DomainQPS = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("enable-automation", false),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &HeadlessFetcher{
		cfg:         cfg,
		allocator:   allocCtx,
		allocCancel: allocCancel,
		logger:      logger,
	}
}

// Close cancels the allocator context.
func (f *HeadlessFetcher) Close() {
	f.allocCancel()
}

// FetchPage navigates to the URL in a fresh tab and returns the DOM
// after base readiness plus a scroll-triggered settle pause.
func (f *HeadlessFetcher) FetchPage(ctx context.Context, pageURL string) (string, error) {
	if err := f.waitDomain(ctx, pageURL); err != nil {
		return "", err
	}

	taskCtx, taskCancel := chromedp.NewContext(f.allocator)
	defer taskCancel()
	done := make(chan struct{})
	defer close(done)
	go forwardCancel(ctx, done, taskCancel)

	taskCtx, cancel := context.WithTimeout(taskCtx, f.cfg.NavigationTimeout+settleDelay)
	defer cancel()

	var html string
	actions := []chromedp.Action{
		f.stealthSetupAction(),
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	}
	if err := chromedp.Run(taskCtx, actions...); err != nil {
		return "", fmt.Errorf("chromedp run: %w", err)
	}
	return html, nil
}

func (f *HeadlessFetcher) stealthSetupAction() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if err := emulation.SetUserAgentOverride(f.cfg.UserAgent).Do(ctx); err != nil {
			return fmt.Errorf("set user-agent: %w", err)
		}
		if err := emulation.SetTimezoneOverride(timezoneID).Do(ctx); err != nil {
			return fmt.Errorf("set timezone: %w", err)
		}
		if _, err := page.AddScriptToEvaluateOnNewDocument(webdriverScrubScript).Do(ctx); err != nil {
			return fmt.Errorf("install init script: %w", err)
		}
		return nil
	})
}

// waitDomain blocks until the per-host rate limiter admits another
// navigation, so repeated visits to one site stay polite.
func (f *HeadlessFetcher) waitDomain(ctx context.Context, pageURL string) error {
	host := hostLabel(pageURL)
	value, _ := f.limiters.LoadOrStore(host, rate.NewLimiter(rate.Limit(f.cfg.DomainQPS), 1))
	limiter := value.(*rate.Limiter)

	start := time.Now()
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("domain rate wait: %w", err)
	}
	if waited := time.Since(start); waited > 10*time.Millisecond {
		metrics.ObserveFetchDelay(host, waited)
		f.logger.Debug("rate limited navigation", zap.String("host", host), zap.Duration("waited", waited))
	}
	return nil
}

func hostLabel(rawURL string) string {
	if !strings.HasPrefix(rawURL, "http") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.ToLower(u.Hostname())
}

// forwardCancel tears the tab down when the caller's context ends
// before the navigation finishes. Closing done releases the goroutine
// once the fetch returns, so finished fetches leave nothing parked.
func forwardCancel(ctx context.Context, done <-chan struct{}, cancel context.CancelFunc) {
	select {
	case <-ctx.Done():
		cancel()
	case <-done:
	}
}
