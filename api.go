package dynup

import (
	"context"
	"net/netip"
)

// Resolver discovers the address that should be published.
type Resolver interface {
	Resolve(context.Context) (netip.Addr, error)
}

// Provider updates the apex A record of domain to point at addr.
type Provider interface {
	UpdateRecord(ctx context.Context, domain string, addr netip.Addr) error
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(context.Context) (netip.Addr, error)

func (f ResolverFunc) Resolve(ctx context.Context) (netip.Addr, error) {
	return f(ctx)
}
