package feed

import (
	"context"
	"time"
)

const DefaultPollInterval = 30 * time.Second

// PollFeed rereads the source every Interval and emits only when the set
// of open sessions changed.
type PollFeed struct {
	src      Source
	interval time.Duration
}

func NewPollFeed(src Source, interval time.Duration) *PollFeed {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &PollFeed{src: src, interval: interval}
}

func (f *PollFeed) Subscribe(ctx context.Context) (<-chan Update, error) {
	first, err := Snapshot(ctx, f.src)
	if err != nil {
		return nil, err
	}
	out := make(chan Update, 1)
	out <- Update{Active: first}

	go func() {
		defer close(out)
		last := first
		t := time.NewTicker(f.interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				active, err := Snapshot(ctx, f.src)
				if err != nil {
					if ctx.Err() != nil || !send(ctx, out, Update{Err: err}) {
						return
					}
					continue
				}
				if sameActive(last, active) {
					continue
				}
				last = active
				if !send(ctx, out, Update{Active: active}) {
					return
				}
			}
		}
	}()
	return out, nil
}
