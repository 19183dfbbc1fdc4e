package httpx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsGate answers whether a URL may be fetched at all. It downloads
// robots.txt once per host and caches the parsed result for the lifetime
// of the gate, which matches a single pipeline run.
type RobotsGate struct {
	client    *http.Client
	userAgent string

	mu    sync.Mutex
	cache map[string]*robotstxt.RobotsData
}

func NewRobotsGate(userAgent string, client *http.Client) *RobotsGate {
	if userAgent == "" {
		userAgent = "jardin-du-the-bot/1.0"
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RobotsGate{
		client:    client,
		userAgent: userAgent,
		cache:     make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether the gate's user agent may fetch rawURL. Any
// failure to retrieve or parse robots.txt fails open: the fetcher's rate
// limits still apply, so an unreachable robots.txt never stalls a run.
func (g *RobotsGate) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return true
	}
	robots, err := g.robotsFor(ctx, u)
	if err != nil || robots == nil {
		return true
	}
	group := robots.FindGroup(g.userAgent)
	if group == nil {
		group = robots.FindGroup("*")
	}
	if group == nil {
		return true
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return group.Test(path)
}

func (g *RobotsGate) robotsFor(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	key := u.Scheme + "://" + u.Host

	g.mu.Lock()
	if robots, ok := g.cache[key]; ok {
		g.mu.Unlock()
		return robots, nil
	}
	g.mu.Unlock()

	robotsURL := key + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("robots fetch failed: %w", err)
	}
	defer resp.Body.Close()

	robots, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("robots parse failed: %w", err)
	}

	g.mu.Lock()
	g.cache[key] = robots
	g.mu.Unlock()
	return robots, nil
}
