package dynup

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cloudflare/cloudflare-go"
	"github.com/go-logr/logr"
)

// DefaultTTL is the record TTL used when no WithTTL option is given.
// 300 seconds is the floor accepted by config validation.
const DefaultTTL = 300

// Client runs one resolve-and-update pass per call to Run.
type Client interface {
	Run(ctx context.Context) error
}

// New returns a Client that keeps the apex A record of domain pointed at the
// caller's public address. A provider option such as [UsingGandi] is required;
// the resolver defaults to a [WebResolver] on [DefaultIPService].
func New(domain string, options ...Option) (Client, error) {
	if domain == "" {
		return nil, fmt.Errorf("dynup.New: domain cannot be empty")
	}
	c := &client{
		Resolver: WebResolver(DefaultIPService),
		domain:   domain,
		ttl:      DefaultTTL,
		logger:   logr.Discard(),
	}
	for i, opt := range options {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("dynup.New: option %d returned an error: %w", i, err)
		}
	}

	if c.Provider == nil {
		return nil, fmt.Errorf("dynup.New: no DNS provider was registered and there is no default option - use dynup.UsingGandi or similar")
	}

	// propagate cross-cutting settings to dependencies regardless of option order
	switch p := c.Provider.(type) {
	case *gandiProvider:
		p.log = c.logger
		p.ttl = c.ttl
		if c.endpoint != "" {
			p.baseURL = c.endpoint
		}
		if c.httpClient != nil {
			p.client = c.httpClient
		}
	case *cloudflareProvider:
		p.log = c.logger
		p.ttl = c.ttl
		if c.httpClient != nil {
			cloudflare.HTTPClient(c.httpClient)(p.api)
		}
	}
	switch r := c.Resolver.(type) {
	case *webResolver:
		r.log = c.logger
		if c.httpClient != nil {
			r.httpClient = c.httpClient
		}
	case *stunResolver:
		r.log = c.logger
	case *dnsResolver:
		r.log = c.logger
	}

	return c, nil
}

// Option configures a Client created by New.
type Option func(*client) error

// UsingGandi registers the Gandi LiveDNS provider authenticated with the
// given personal access token.
func UsingGandi(pat string) Option {
	return func(c *client) error {
		if pat == "" {
			return fmt.Errorf("dynup.UsingGandi: token cannot be empty")
		}
		c.Provider = newGandiProvider(pat)
		return nil
	}
}

// UsingCloudflare registers the Cloudflare provider authenticated with the
// given API token.
func UsingCloudflare(token string) Option {
	return func(c *client) (err error) {
		if c.Provider, err = newCloudflareProvider(token); err != nil {
			return fmt.Errorf("dynup.UsingCloudflare: error creating cloudflare DNS provider: %w", err)
		}
		return nil
	}
}

// UsingResolver replaces the default resolver.
// A nil resolver restores the default.
func UsingResolver(resolver Resolver) Option {
	return func(c *client) error {
		if resolver == nil {
			resolver = WebResolver(DefaultIPService)
		}
		c.Resolver = resolver
		return nil
	}
}

// WithTTL sets the TTL in seconds written to updated records.
func WithTTL(seconds int) Option {
	return func(c *client) error {
		if seconds < 300 {
			return fmt.Errorf("dynup.WithTTL: %d is below the minimum TTL of 300", seconds)
		}
		c.ttl = seconds
		return nil
	}
}

// WithLogger directs diagnostic output to logger.
// The default discards all output.
func WithLogger(logger logr.Logger) Option {
	return func(c *client) error {
		c.logger = logger
		return nil
	}
}

// WithAPIEndpoint overrides the base URL of the provider's REST API.
// Intended for tests and API-compatible mirrors.
func WithAPIEndpoint(baseURL string) Option {
	return func(c *client) error {
		c.endpoint = baseURL
		return nil
	}
}

// UsingHTTPClient replaces the http.Client used for provider and resolver requests.
func UsingHTTPClient(httpclient *http.Client) Option {
	return func(c *client) error {
		c.httpClient = httpclient
		return nil
	}
}

type client struct {
	Resolver
	Provider
	logger     logr.Logger
	domain     string
	ttl        int
	endpoint   string
	httpClient *http.Client
}

func (c *client) Run(ctx context.Context) error {
	addr, err := c.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("error getting public IP: %w", err)
	}
	c.logger.Info("Retrieved public IP address", "addr", addr)

	if !addr.Is4() && !addr.Is4In6() {
		// Warn but continue: an AAAA-shaped value pushed into an A record is
		// the provider's error to report, and its response says more than a
		// local guess would.
		c.logger.Info("Resolved address is not IPv4", "addr", addr)
	}

	if err := c.UpdateRecord(ctx, c.domain, addr); err != nil {
		return fmt.Errorf("error updating %s: %w", c.domain, err)
	}
	return nil
}
