package dynup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// WebResolver constructs a resolver which asks an external web service for the
// caller's "public" IP address.
//
// The service must speak http and answer GET requests with status "200 OK" and
// a valid IPv4 or IPv6 address as the response body.
// All other responses are an error;
// a non-200 status is reported as a [StatusError] carrying the body verbatim,
// without attempting to parse it as an address.
//
// The request is a single blocking round trip with no retries.
// The recommended approach is to run your own service over https.
func WebResolver(serviceURL string) Resolver {
	return &webResolver{serviceURL: serviceURL, log: logr.Discard()}
}

type webResolver struct {
	httpClient *http.Client
	serviceURL string
	log        logr.Logger
}

// Resolve implements dynup.Resolver.
func (wr *webResolver) Resolve(ctx context.Context) (netip.Addr, error) {
	wr.log.Info("Requesting public IP address", "url", wr.serviceURL)

	// 15 seconds is an eternity for the size of the request we're making,
	// but this ensures that the run will eventually complete even if the
	// caller supplied context.TODO or context.Background.
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wr.serviceURL, nil)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	httpclient := wr.httpClient
	if httpclient == nil {
		httpclient = http.DefaultClient
	}

	resp, err := httpclient.Do(req)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := StatusError{StatusCode: resp.StatusCode, Body: string(body)}
		wr.log.Error(err, "Failed to retrieve public IP address")
		return netip.Addr{}, err
	}

	ip, err := netip.ParseAddr(strings.TrimSpace(string(body)))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("error parsing IP address from response body: %w", err)
	}
	return ip, nil
}
