package dynup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// DefaultIPService is the IP-echo endpoint used when the config does not name one.
const DefaultIPService = "https://api.ipify.org"

// Config is the on-disk configuration for one updater run.
//
// PAT, Domain and TTL are required.
// The remaining fields select and tune the backends and default to the
// plain ipify-to-Gandi flow when omitted.
type Config struct {
	PAT    string `json:"pat" yaml:"pat"`
	Domain string `json:"domain" yaml:"domain"`
	TTL    int    `json:"ttl" yaml:"ttl"`

	Provider  string `json:"provider,omitempty" yaml:"provider,omitempty"`
	Resolver  string `json:"resolver,omitempty" yaml:"resolver,omitempty"`
	IPService string `json:"ip_service,omitempty" yaml:"ip_service,omitempty"`
	APIURL    string `json:"api_url,omitempty" yaml:"api_url,omitempty"`
}

// LoadConfig reads, parses and validates the config file at path.
// Files named *.yaml or *.yml are parsed as YAML; everything else as JSON.
// Unknown fields are a load error rather than being silently dropped.
// The returned Config always passes Validate.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Provider == "" {
		cfg.Provider = "gandi"
	}
	if cfg.Resolver == "" {
		cfg.Resolver = "web"
	}
	if cfg.IPService == "" {
		cfg.IPService = DefaultIPService
	}
	return &cfg, nil
}

// Validate checks every field constraint and returns a ValidationError
// naming the first violated field.
func (c Config) Validate() error {
	if c.PAT == "" {
		return ValidationError{Field: "pat", Constraint: "must be a non-empty string"}
	}
	if c.Domain == "" {
		return ValidationError{Field: "domain", Constraint: "must be a non-empty string"}
	}
	if c.TTL < 300 {
		return ValidationError{Field: "ttl", Constraint: "must be greater or equal than 300"}
	}
	switch c.Provider {
	case "", "gandi", "cloudflare":
	default:
		return ValidationError{Field: "provider", Constraint: `must be one of "gandi", "cloudflare"`}
	}
	switch c.Resolver {
	case "", "web", "stun", "dns":
	default:
		return ValidationError{Field: "resolver", Constraint: `must be one of "web", "stun", "dns"`}
	}
	return nil
}
