package types

import (
	"context"
	"fmt"
)

// Page is raw markup handed back by a Fetcher.
type Page struct {
	URL    string
	Status int
	HTML   string
}

type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, url string) (Page, error)
}

// StatusError is a non-2xx response. The page is treated as "no data".
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d for %s", e.Code, e.URL)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) (Page, error)

func (f FetcherFunc) Name() string { return "func" }

func (f FetcherFunc) Fetch(ctx context.Context, url string) (Page, error) { return f(ctx, url) }
