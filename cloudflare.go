package dynup

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	"github.com/cloudflare/cloudflare-go"
	"github.com/go-logr/logr"
)

func newCloudflareProvider(token string) (cf *cloudflareProvider, err error) {
	cf = new(cloudflareProvider)
	cf.api, err = cloudflare.NewWithAPIToken(token)
	if err != nil {
		return nil, fmt.Errorf("error creating cloudflare api client: %w", err)
	}
	cf.ttl = DefaultTTL
	cf.log = logr.Discard()
	cf.comment = "managed by dynup"
	return cf, err
}

// cloudflareProvider implements dynup.Provider.
//
// It should be constructed through the UsingCloudflare option.
type cloudflareProvider struct {
	api     *cloudflare.API
	ttl     int
	log     logr.Logger
	comment string // optional comment to attach to each new DNS entry
}

// UpdateRecord points the A record for domain at addr.
// A write is always issued even when the record already matches:
// an existing record is updated in place, a missing one is created,
// and leftover duplicates are deleted.
func (cf *cloudflareProvider) UpdateRecord(ctx context.Context, domain string, addr netip.Addr) error {
	zid, err := cf.getZoneIDFromDomain(ctx, domain)
	if err != nil {
		return fmt.Errorf("unable to get zone ID for %s: %w", domain, err)
	}
	cf.log.Info("Found zone", "zone_id", zid)

	rc := cloudflare.ZoneIdentifier(zid)
	records, _, err := cf.api.ListDNSRecords(ctx, rc, cloudflare.ListDNSRecordsParams{
		Type: "A",
		Name: domain,
	})
	if err != nil {
		return fmt.Errorf("failed to list DNS records: %w", err)
	}
	cf.log.Info("Listed existing A records", "count", len(records))

	if len(records) == 0 {
		record, err := cf.api.CreateDNSRecord(ctx, rc, cloudflare.CreateDNSRecordParams{
			Type:    "A",
			Name:    domain,
			Content: addr.String(),
			TTL:     cf.ttl,
			Comment: cf.comment,
		})
		if err != nil {
			return fmt.Errorf("error creating DNS record: %w", err)
		}
		cf.log.Info("DNS entry created", "record_id", record.ID, "addr", addr)
		return nil
	}

	_, err = cf.api.UpdateDNSRecord(ctx, rc, cloudflare.UpdateDNSRecordParams{
		ID:      records[0].ID,
		Type:    "A",
		Content: addr.String(),
		TTL:     cf.ttl,
	})
	if err != nil {
		return fmt.Errorf("failed to update DNS record: %w", err)
	}
	cf.log.Info("DNS entry updated", "record_id", records[0].ID, "addr", addr)

	for _, r := range records[1:] {
		if err := cf.api.DeleteDNSRecord(ctx, rc, r.ID); err != nil {
			return fmt.Errorf("unable to delete duplicate DNS record %s: %w", r.ID, err)
		}
		cf.log.Info("Deleted duplicate A record", "record_id", r.ID)
	}
	return nil
}

func (cf *cloudflareProvider) getZoneIDFromDomain(ctx context.Context, domain string) (zid string, err error) {
	zones, err := cf.api.ListZones(ctx)
	if err != nil {
		return "", fmt.Errorf("error listing zones: %w", err)
	}

	max := 0
	for _, z := range zones {
		if strings.HasSuffix(domain, z.Name) && len(z.Name) > max {
			max, zid = len(z.Name), z.ID
		}
	}
	if max == 0 {
		return "", fmt.Errorf("unable to find a zone matching %q", domain)
	}
	return zid, nil
}
