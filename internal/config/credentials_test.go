package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeCredFile(t *testing.T, settings Settings, environment, content string) string {
	t.Helper()
	path := settings.EnvFilePath(environment)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileSource_ResolveValid(t *testing.T) {
	settings := Settings{Site: "us5", BaseDir: t.TempDir()}
	writeCredFile(t, settings, "dev",
		"DD_SITE=us5.datadoghq.com\nDD_API_KEY=abc123\nDD_APP_KEY=def456\nDD_PROXY=http://proxy:3128\n")

	creds, err := FileSource{Settings: settings}.Resolve("dev")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if creds.SiteHost != "us5.datadoghq.com" {
		t.Errorf("SiteHost = %q", creds.SiteHost)
	}
	if creds.APIKey != "abc123" || creds.AppKey != "def456" {
		t.Errorf("keys = %q / %q", creds.APIKey, creds.AppKey)
	}
	if creds.Proxy != "http://proxy:3128" {
		t.Errorf("Proxy = %q", creds.Proxy)
	}
	if got := creds.APIBaseURL(); got != "https://api.us5.datadoghq.com" {
		t.Errorf("APIBaseURL = %q", got)
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	settings := Settings{Site: "us1", BaseDir: t.TempDir()}

	_, err := FileSource{Settings: settings}.Resolve("dev")
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("want ErrMissingCredentials, got %v", err)
	}
}

func TestFileSource_PlaceholderKeys(t *testing.T) {
	settings := Settings{Site: "us1", BaseDir: t.TempDir()}
	writeCredFile(t, settings, "prod",
		"DD_SITE=datadoghq.com\nDD_API_KEY=your_api_key_here\nDD_APP_KEY=your_app_key_here\n")

	_, err := FileSource{Settings: settings}.Resolve("prod")
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("placeholder keys should resolve as missing, got %v", err)
	}
}

func TestFileSource_DerivesHostFromSiteCode(t *testing.T) {
	settings := Settings{Site: "eu1", BaseDir: t.TempDir()}
	// Older file without DD_SITE.
	writeCredFile(t, settings, "dev", "DD_API_KEY=abc\nDD_APP_KEY=def\n")

	creds, err := FileSource{Settings: settings}.Resolve("dev")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if creds.SiteHost != "datadoghq.eu" {
		t.Errorf("SiteHost = %q, want datadoghq.eu", creds.SiteHost)
	}
}

func TestStaticSource(t *testing.T) {
	source := StaticSource{
		"dev": {SiteHost: "datadoghq.com", APIKey: "a", AppKey: "b"},
	}

	creds, err := source.Resolve(" DEV ")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if creds.APIKey != "a" {
		t.Errorf("APIKey = %q", creds.APIKey)
	}

	if _, err := source.Resolve("prod"); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("want ErrMissingCredentials for unknown environment, got %v", err)
	}
}

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		ok    bool
	}{
		{"complete", Credentials{SiteHost: "datadoghq.com", APIKey: "a", AppKey: "b"}, true},
		{"empty api key", Credentials{SiteHost: "datadoghq.com", AppKey: "b"}, false},
		{"empty app key", Credentials{SiteHost: "datadoghq.com", APIKey: "a"}, false},
		{"no site host", Credentials{APIKey: "a", AppKey: "b"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("Validate() = %v, want ErrMissingCredentials", err)
			}
		})
	}
}
