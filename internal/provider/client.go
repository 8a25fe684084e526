// Package provider fetches an event's sessions, ticket tiers and
// availability counters from the Billetweb API.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/billetweb-booking/internal/config"
	"github.com/iliyamo/billetweb-booking/internal/model"
)

// Resource names as they appear in the Billetweb URL path.
const (
	ResourceSessions     = "dates"
	ResourceTickets      = "tickets"
	ResourceAvailability = "avail"
)

const apiVersion = "1"

// Feeds holds the three raw data sets of one event.
type Feeds struct {
	Sessions     []model.Session
	Tickets      []model.TicketTier
	Availability []model.AvailabilityCounter
}

// Client issues read-only requests against the Billetweb API.  It holds no
// state between calls and is safe for concurrent use.
type Client struct {
	cfg    config.Billetweb
	http   *http.Client
	logger *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger attaches a logger; fetches are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient returns a Client for the event and credentials in cfg.
func NewClient(cfg config.Billetweb, opts ...Option) *Client {
	c := &Client{cfg: cfg, http: http.DefaultClient, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sessions fetches the event's performance dates.
func (c *Client) Sessions(ctx context.Context) ([]model.Session, error) {
	var out []model.Session
	if err := c.get(ctx, ResourceSessions, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Tickets fetches every ticket tier of the event, hidden ones included.
func (c *Client) Tickets(ctx context.Context) ([]model.TicketTier, error) {
	var out []model.TicketTier
	if err := c.get(ctx, ResourceTickets, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Availability fetches the per-session sales counters.
func (c *Client) Availability(ctx context.Context) ([]model.AvailabilityCounter, error) {
	var out []model.AvailabilityCounter
	if err := c.get(ctx, ResourceAvailability, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchAll runs the three fetches concurrently and waits for all of them.
// The first failure cancels the others and is returned; no partial Feeds
// are ever returned.
func (c *Client) FetchAll(ctx context.Context) (Feeds, error) {
	var feeds Feeds
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := c.Sessions(gctx)
		feeds.Sessions = s
		return err
	})
	g.Go(func() error {
		t, err := c.Tickets(gctx)
		feeds.Tickets = t
		return err
	})
	g.Go(func() error {
		a, err := c.Availability(gctx)
		feeds.Availability = a
		return err
	})
	if err := g.Wait(); err != nil {
		return Feeds{}, err
	}
	return feeds, nil
}

func (c *Client) endpoint(resource string) string {
	q := url.Values{}
	q.Set("user", c.cfg.APIUser)
	q.Set("key", c.cfg.APIKey)
	q.Set("version", apiVersion)
	return fmt.Sprintf("%s/event/%s/%s?%s", c.cfg.APIBase, url.PathEscape(c.cfg.EventID), resource, q.Encode())
}

func (c *Client) get(ctx context.Context, resource string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(resource), nil)
	if err != nil {
		return fmt.Errorf("billetweb %s: build request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("billetweb %s: %w", resource, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("billetweb fetch",
		zap.String("resource", resource),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{Resource: resource, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("billetweb %s: decode: %w", resource, err)
	}
	return nil
}
