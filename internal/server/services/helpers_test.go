package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/taskboard-dev/taskboard/internal/logging"
	"github.com/taskboard-dev/taskboard/internal/server/config"
	"github.com/taskboard-dev/taskboard/internal/server/store"
	"github.com/taskboard-dev/taskboard/internal/server/update"
)

func newTestLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	return cfg
}

// fakeClock is a manually advanced clock for deterministic timestamps.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// failingGateway returns the same error from every operation.
type failingGateway struct {
	err error
}

func (g *failingGateway) Get(ctx context.Context, key store.Key, out any) error { return g.err }
func (g *failingGateway) Put(ctx context.Context, item any) error               { return g.err }
func (g *failingGateway) Update(ctx context.Context, key store.Key, changes []update.Change) error {
	return g.err
}
func (g *failingGateway) Delete(ctx context.Context, key store.Key, out any) error { return g.err }
func (g *failingGateway) QueryPrefix(ctx context.Context, pk, skPrefix string, out any) error {
	return g.err
}
func (g *failingGateway) ScanEquals(ctx context.Context, match map[string]any, out any) error {
	return g.err
}

// fakePresigner records the last requested key and hands out canned URLs.
type fakePresigner struct {
	lastKey string
	err     error
}

func (p *fakePresigner) UserImageKey(userID string, now time.Time) string {
	return fmt.Sprintf("users/%s_%d.png", userID, now.Unix())
}

func (p *fakePresigner) UploadURL(ctx context.Context, key string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.lastKey = key
	return "https://upload.example.com/" + key, nil
}

func (p *fakePresigner) PublicURL(key string) string {
	return "https://images.example.com/" + key
}
