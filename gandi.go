package dynup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"strings"

	"github.com/go-logr/logr"
)

const defaultGandiBaseURL = "https://api.gandi.net"

func newGandiProvider(pat string) *gandiProvider {
	return &gandiProvider{
		pat:     pat,
		ttl:     DefaultTTL,
		baseURL: defaultGandiBaseURL,
		log:     logr.Discard(),
	}
}

// gandiProvider implements dynup.Provider against the Gandi LiveDNS API.
// It replaces the zone apex A rrset in a single authenticated PUT.
type gandiProvider struct {
	pat     string
	ttl     int
	baseURL string
	client  *http.Client
	log     logr.Logger
}

// rrset is the LiveDNS record-set body for PUT .../records/{name}/{type}.
type rrset struct {
	TTL    int      `json:"rrset_ttl"`
	Values []string `json:"rrset_values"`
}

func (g *gandiProvider) UpdateRecord(ctx context.Context, domain string, addr netip.Addr) error {
	url := fmt.Sprintf("%s/v5/livedns/domains/%s/records/@/A", strings.TrimRight(g.baseURL, "/"), domain)
	g.log.Info("Updating DNS record", "url", url, "addr", addr)

	payload, err := json.Marshal(rrset{TTL: g.ttl, Values: []string{addr.String()}})
	if err != nil {
		return fmt.Errorf("gandi: marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("gandi: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.pat)
	req.Header.Set("Content-Type", "application/json")

	httpclient := g.client
	if httpclient == nil {
		httpclient = http.DefaultClient
	}

	resp, err := httpclient.Do(req)
	if err != nil {
		return fmt.Errorf("gandi: failed to reach DNS registrar service: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	// LiveDNS answers 201 when the rrset was created or replaced.
	if resp.StatusCode != http.StatusCreated {
		err := StatusError{StatusCode: resp.StatusCode, Body: string(body)}
		g.log.Error(err, "Failed to update DNS entry")
		return err
	}

	g.log.Info("DNS entry updated", "domain", domain)
	return nil
}
