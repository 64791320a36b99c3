package scrape

import (
	"fmt"
	"time"

	"mlbwar-engine/internal/config"
	"mlbwar-engine/internal/scrape/plain"
	"mlbwar-engine/internal/scrape/rendered"
	"mlbwar-engine/internal/scrape/types"
	"mlbwar-engine/internal/scrape/util"
)

// NewFetcher builds the fetcher for mode, or for cfg.Fetch.Mode when mode
// is empty.
func NewFetcher(cfg config.Config, mode string) (types.Fetcher, error) {
	if mode == "" {
		mode = cfg.Fetch.Mode
	}
	switch mode {
	case config.ModePlain:
		return plain.New(plain.Config{
			UserAgent: cfg.Fetch.UserAgent,
			Timeout:   cfg.Fetch.Timeout,
		}, hostLimiter(cfg)), nil
	case config.ModeRendered:
		return rendered.New(rendered.Config{
			Dwell:      cfg.Fetch.Dwell,
			Timeout:    cfg.Fetch.Timeout,
			UserAgent:  cfg.Fetch.UserAgent,
			Headless:   cfg.Fetch.Headless,
			ChromePath: cfg.Fetch.ChromePath,
		}), nil
	default:
		return nil, fmt.Errorf("unknown fetch mode %q", mode)
	}
}

// hostLimiter returns nil when the pacer alone already spaces items at least
// 1/rps apart; the two would otherwise stack (6s sleep plus a 6s token wait).
func hostLimiter(cfg config.Config) *util.HostLimiter {
	p := cfg.Pacing
	if p.Every >= 1 && p.Delay > 0 && cfg.Fetch.RPS > 0 {
		perItem := p.Delay / time.Duration(p.Every)
		if perItem.Seconds()*cfg.Fetch.RPS >= 1-1e-9 {
			return nil
		}
	}
	return util.NewHostLimiter(cfg.Fetch.RPS, cfg.Fetch.Burst)
}
