package dynup

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/go-logr/logr"
	"github.com/miekg/dns"
)

// Default endpoints for the DNS-based resolver. OpenDNS answers queries for
// myip.opendns.com with the address the query came from.
const (
	DefaultDNSServer = "resolver1.opendns.com:53"
	myIPHostname     = "myip.opendns.com"
)

// DNSResolver constructs a resolver that discovers the public address by
// asking server for the A record of myip.opendns.com.
// An empty server selects [DefaultDNSServer].
func DNSResolver(server string) Resolver {
	if server == "" {
		server = DefaultDNSServer
	}
	return &dnsResolver{server: server, log: logr.Discard()}
}

type dnsResolver struct {
	server string
	log    logr.Logger
}

// Resolve implements dynup.Resolver.
func (dr *dnsResolver) Resolve(ctx context.Context) (netip.Addr, error) {
	dr.log.Info("Requesting public IP address via DNS", "server", dr.server)

	c := new(dns.Client)
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(myIPHostname), dns.TypeA)

	r, _, err := c.ExchangeContext(ctx, m, dr.server)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("DNS query failed: %w", err)
	}
	if r.Rcode != dns.RcodeSuccess {
		return netip.Addr{}, fmt.Errorf("DNS query returned rcode %s", dns.RcodeToString[r.Rcode])
	}

	for _, ans := range r.Answer {
		if a, ok := ans.(*dns.A); ok {
			if addr, ok := netip.AddrFromSlice(a.A.To4()); ok {
				return addr, nil
			}
		}
	}
	return netip.Addr{}, fmt.Errorf("no A record in answer for %s", myIPHostname)
}
