package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task once per interval until ctx is done. Task errors are
// logged and do not stop the loop. With immediate set the first run starts
// right away instead of after one interval.
func Every(ctx context.Context, interval time.Duration, name string, immediate bool, task Task) error {
	run := func() {
		if err := task(ctx); err != nil {
			log.Printf("[%s] error: %v", name, err)
		}
	}

	if immediate {
		run()
	}

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			run()
		}
	}
}
