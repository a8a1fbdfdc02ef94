package scraper

import (
	"context"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"dealbot/dealbot/utils/logging"
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
}

// Scraper owns the Playwright runtime and a single shared headless
// browser. The browser is launched lazily under a mutex; each fetch runs
// in its own browser context so concurrent fetches cannot interleave
// automation state.
type Scraper struct {
	pw      *playwright.Playwright
	mu      sync.Mutex
	browser playwright.Browser
}

func NewScraper() (*Scraper, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, err
	}
	return &Scraper{pw: pw}, nil
}

// Close stops the browser and the Playwright runtime.
func (s *Scraper) Close() {
	s.mu.Lock()
	if s.browser != nil {
		s.browser.Close()
		s.browser = nil
	}
	s.mu.Unlock()
	if s.pw != nil {
		s.pw.Stop()
	}
}

func (s *Scraper) sharedBrowser() (playwright.Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browser != nil && s.browser.IsConnected() {
		return s.browser, nil
	}
	browser, err := s.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args: []string{
			"--disable-gpu",
			"--no-sandbox",
			"--disable-dev-shm-usage",
			"--disable-http2",
			"--disable-background-timer-throttling",
		},
	})
	if err != nil {
		return nil, err
	}
	s.browser = browser
	return browser, nil
}

// FetchHTML loads targetURL in a fresh browser context and returns the
// rendered page HTML.
func (s *Scraper) FetchHTML(ctx context.Context, targetURL string) (string, error) {
	defer logging.LogDuration(ctx, "scraper_fetch_html")()

	browser, err := s.sharedBrowser()
	if err != nil {
		return "", err
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent:         playwright.String(userAgents[time.Now().UnixNano()%int64(len(userAgents))]),
		Viewport:          &playwright.Size{Width: 1920, Height: 1080},
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		return "", err
	}
	defer bctx.Close()

	page, err := bctx.NewPage()
	if err != nil {
		return "", err
	}
	defer page.Close()

	if err := page.Route("**/*.{png,jpg,jpeg,gif,svg,woff,woff2}", func(route playwright.Route) {
		route.Abort()
	}); err != nil {
		return "", err
	}

	if _, err := page.Goto(targetURL, playwright.PageGotoOptions{
		Timeout:   playwright.Float(20000),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return "", err
	}

	return page.Content()
}
