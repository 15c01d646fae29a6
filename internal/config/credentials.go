package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/opsmirror/ddexport/internal/constants"
)

// ErrMissingCredentials indicates the credential file for an environment
// is absent, or its key fields are empty or still the provisioning
// placeholders. The environment's export cannot proceed.
var ErrMissingCredentials = errors.New("missing credentials")

// Credentials is the bundle required to authenticate against the
// Datadog API: site host, API key, application key, plus optional
// proxy / CA overrides for restricted networks.
type Credentials struct {
	// SiteHost is the platform host (e.g. us5.datadoghq.com).
	// The API endpoint is derived as https://api.<SiteHost>.
	SiteHost string

	APIKey string
	AppKey string

	// Proxy is an optional proxy URL (http://host:port).
	Proxy string

	// NoProxy is an optional comma-separated bypass list for Proxy.
	NoProxy string

	// CABundle is an optional path to a PEM file of extra root CAs.
	CABundle string
}

// APIBaseURL returns the API endpoint for the credential's site.
func (c *Credentials) APIBaseURL() string {
	return "https://api." + c.SiteHost
}

// Validate checks that the key fields are usable. Placeholder values
// count as missing: they mean a human has not filled the file in yet.
func (c *Credentials) Validate() error {
	apiKey := strings.TrimSpace(c.APIKey)
	appKey := strings.TrimSpace(c.AppKey)
	if apiKey == "" || apiKey == constants.PlaceholderAPIKey {
		return fmt.Errorf("%w: %s is not set", ErrMissingCredentials, KeyAPIKey)
	}
	if appKey == "" || appKey == constants.PlaceholderAppKey {
		return fmt.Errorf("%w: %s is not set", ErrMissingCredentials, KeyAppKey)
	}
	if strings.TrimSpace(c.SiteHost) == "" {
		return fmt.Errorf("%w: %s is not set", ErrMissingCredentials, KeySite)
	}
	return nil
}

// Source resolves the credential bundle for an environment. The export
// core depends only on this capability, not on file I/O, so tests and
// alternative secret backends can substitute their own implementation.
type Source interface {
	Resolve(environment string) (*Credentials, error)
}

// FileSource resolves credentials from the provisioned credential file
// at <BaseDir>/<site>_org_<env>/.env.
type FileSource struct {
	Settings Settings
}

// Resolve loads and validates the environment's credential file.
func (s FileSource) Resolve(environment string) (*Credentials, error) {
	path := s.Settings.EnvFilePath(environment)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: credential file not found: %s", ErrMissingCredentials, path)
		}
		return nil, fmt.Errorf("failed to stat credential file %s: %w", path, err)
	}

	values, err := ReadEnvFile(path)
	if err != nil {
		return nil, err
	}

	creds := &Credentials{
		SiteHost: values[KeySite],
		APIKey:   values[KeyAPIKey],
		AppKey:   values[KeyAppKey],
		Proxy:    values[KeyProxy],
		NoProxy:  values[KeyNoProxy],
		CABundle: values[KeyCABundle],
	}
	if creds.SiteHost == "" {
		// Derive from the site code when the file predates the host field.
		host, _ := ResolveSiteHost(s.Settings.Site)
		creds.SiteHost = host
	}
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return creds, nil
}

// StaticSource is an in-memory Source keyed by environment name,
// intended for tests and embedding.
type StaticSource map[string]*Credentials

// Resolve returns the stored bundle or ErrMissingCredentials.
func (s StaticSource) Resolve(environment string) (*Credentials, error) {
	creds, ok := s[strings.ToLower(strings.TrimSpace(environment))]
	if !ok {
		return nil, fmt.Errorf("%w: no credentials for environment %q", ErrMissingCredentials, environment)
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return creds, nil
}
