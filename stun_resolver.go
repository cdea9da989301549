package dynup

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/go-logr/logr"
	"github.com/pion/stun"
)

// DefaultSTUNServer is the STUN server used when none is configured.
const DefaultSTUNServer = "stunserver2025.stunprotocol.org:3478"

// STUNResolver constructs a resolver that discovers the public address via a
// STUN binding request over UDP. An empty server selects [DefaultSTUNServer].
func STUNResolver(server string) Resolver {
	if server == "" {
		server = DefaultSTUNServer
	}
	return &stunResolver{server: server, log: logr.Discard()}
}

type stunResolver struct {
	server string
	log    logr.Logger
}

// Resolve implements dynup.Resolver.
func (sr *stunResolver) Resolve(ctx context.Context) (netip.Addr, error) {
	sr.log.Info("Requesting public IP address via STUN", "server", sr.server)

	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", sr.server)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("failed to connect to STUN server: %w", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	message := stun.MustBuild(stun.TransactionID, stun.BindingRequest)
	if _, err = conn.Write(message.Raw); err != nil {
		return netip.Addr{}, fmt.Errorf("failed to send STUN request: %w", err)
	}

	buf := make([]byte, 1500)
	n, err := conn.Read(buf)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("failed to read STUN response: %w", err)
	}

	var response stun.Message
	response.Raw = buf[:n]
	if err := response.Decode(); err != nil {
		return netip.Addr{}, fmt.Errorf("failed to decode STUN response: %w", err)
	}

	var xorAddr stun.XORMappedAddress
	if err := xorAddr.GetFrom(&response); err != nil {
		return netip.Addr{}, fmt.Errorf("failed to get XOR-MAPPED-ADDRESS: %w", err)
	}

	addr, ok := netip.AddrFromSlice(xorAddr.IP)
	if !ok {
		return netip.Addr{}, fmt.Errorf("STUN server returned unusable address %v", xorAddr.IP)
	}
	return addr.Unmap(), nil
}
