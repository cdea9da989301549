package dynup_test

import (
	"context"
	"net/netip"
	"testing"

	"github.com/akarpz/dynup"
)

func TestNewRequiresDomain(t *testing.T) {
	_, err := dynup.New("", dynup.UsingGandi("tok"))
	if err == nil {
		t.Fatal("Expected error for empty domain; got err == nil")
	}
}

func TestNewRequiresProvider(t *testing.T) {
	_, err := dynup.New("example.com")
	if err == nil {
		t.Fatal("Expected error for missing provider; got err == nil")
	}
}

func TestWithTTLFloor(t *testing.T) {
	_, err := dynup.New("example.com", dynup.UsingGandi("tok"), dynup.WithTTL(60))
	if err == nil {
		t.Fatal("Expected error for TTL below 300; got err == nil")
	}
}

func TestResolverFunc(t *testing.T) {
	r := dynup.ResolverFunc(func(context.Context) (netip.Addr, error) {
		return netip.MustParseAddr("203.0.113.7"), nil
	})
	addr, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %s", err)
	}
	if expected, got := netip.MustParseAddr("203.0.113.7"), addr; expected != got {
		t.Fatalf("Expected %q; got %q", expected, got)
	}
}

func TestFromStringRejectsGarbage(t *testing.T) {
	r := dynup.FromString("not-an-ip")
	if _, err := r.Resolve(context.Background()); err == nil {
		t.Fatal("Expected parse error; got err == nil")
	}
}
