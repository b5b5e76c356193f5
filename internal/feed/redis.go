package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "tally:open_sessions"

// NewRedisClient parses url and checks the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return client, nil
}

// RedisFeed publishes changes to a Redis channel and, for subscribers,
// rereads the source on every announcement.
type RedisFeed struct {
	client  *redis.Client
	channel string
	src     Source
	logger  *slog.Logger
}

func NewRedisFeed(client *redis.Client, channel string, src Source, logger *slog.Logger) *RedisFeed {
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisFeed{client: client, channel: channel, src: src, logger: logger}
}

func (f *RedisFeed) Publish(ctx context.Context, c Change) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode change: %w", err)
	}
	if err := f.client.Publish(ctx, f.channel, string(data)).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", f.channel, err)
	}
	return nil
}

func (f *RedisFeed) Subscribe(ctx context.Context) (<-chan Update, error) {
	pubsub := f.client.Subscribe(ctx, f.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", f.channel, err)
	}

	first, err := Snapshot(ctx, f.src)
	if err != nil {
		pubsub.Close()
		return nil, err
	}
	out := make(chan Update, 1)
	out <- Update{Active: first}

	go func() {
		defer close(out)
		defer pubsub.Close()
		f.pump(ctx, pubsub.Channel(), out)
	}()
	return out, nil
}

// pump turns announcements into fresh snapshots until ctx ends or msgs
// closes. Undecodable payloads still trigger a reread.
func (f *RedisFeed) pump(ctx context.Context, msgs <-chan *redis.Message, out chan<- Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var change *Change
			var c Change
			if err := json.Unmarshal([]byte(msg.Payload), &c); err != nil {
				f.logger.Warn("undecodable change payload", "channel", msg.Channel, "error", err)
			} else {
				change = &c
			}

			active, err := Snapshot(ctx, f.src)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if !send(ctx, out, Update{Change: change, Err: err}) {
					return
				}
				continue
			}
			if !send(ctx, out, Update{Active: active, Change: change}) {
				return
			}
		}
	}
}
