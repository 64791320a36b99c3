package plain

import (
	"context"
	"fmt"
	"log"
	"time"

	"mlbwar-engine/internal/scrape/types"
	"mlbwar-engine/internal/scrape/util"

	"github.com/go-resty/resty/v2"
)

type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// Fetcher issues one synchronous GET per page. No retries.
type Fetcher struct {
	cfg     Config
	client  *resty.Client
	limiter *util.HostLimiter
}

func New(cfg Config, limiter *util.HostLimiter) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		SetHeader("Accept-Language", "en-US,en;q=0.9")
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}
	return &Fetcher{cfg: cfg, client: client, limiter: limiter}
}

func (f *Fetcher) Name() string { return "plain" }

func (f *Fetcher) Fetch(ctx context.Context, url string) (types.Page, error) {
	if f.limiter != nil {
		if err := f.limiter.WaitURL(ctx, url); err != nil {
			return types.Page{}, err
		}
	}

	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return types.Page{}, fmt.Errorf("get %s: %w", url, err)
	}
	if res.IsError() || res.StatusCode() < 200 || res.StatusCode() > 299 {
		log.Printf("[fetch:plain] status=%d url=%s", res.StatusCode(), url)
		return types.Page{URL: url, Status: res.StatusCode()}, &types.StatusError{URL: url, Code: res.StatusCode()}
	}

	return types.Page{URL: url, Status: res.StatusCode(), HTML: string(res.Body())}, nil
}
