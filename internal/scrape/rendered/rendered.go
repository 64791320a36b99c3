package rendered

import (
	"context"
	"fmt"
	"log"
	"time"

	"mlbwar-engine/internal/scrape/types"

	"github.com/chromedp/chromedp"
)

type Config struct {
	Dwell      time.Duration // blind wait after navigation; no readiness polling
	Timeout    time.Duration
	UserAgent  string
	Headless   bool
	ChromePath string
}

// Fetcher renders pages in a headless browser. Every Fetch spawns its own
// browser process and tears it down before returning.
type Fetcher struct {
	cfg Config
}

func New(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Fetcher{cfg: cfg}
}

func (f *Fetcher) Name() string { return "rendered" }

func (f *Fetcher) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !f.cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if f.cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(f.cfg.UserAgent))
	}
	if f.cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(f.cfg.ChromePath))
	}
	return opts
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (types.Page, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout+f.cfg.Dwell)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, f.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	start := time.Now()
	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(f.cfg.Dwell),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return types.Page{}, fmt.Errorf("render %s: %w", url, err)
	}
	log.Printf("[fetch:rendered] url=%s bytes=%d dur_ms=%d", url, len(html), time.Since(start).Milliseconds())

	return types.Page{URL: url, Status: 200, HTML: html}, nil
}
