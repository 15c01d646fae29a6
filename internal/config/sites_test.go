package config

import "testing"

func TestResolveSiteHost_KnownSites(t *testing.T) {
	tests := []struct {
		site string
		host string
	}{
		{"us1", "datadoghq.com"},
		{"us3", "us3.datadoghq.com"},
		{"us5", "us5.datadoghq.com"},
		{"eu1", "datadoghq.eu"},
		{"ap1", "ap1.datadoghq.com"},
		{"us1-fed", "ddog-gov.com"},
	}
	for _, tt := range tests {
		host, known := ResolveSiteHost(tt.site)
		if !known {
			t.Errorf("ResolveSiteHost(%q) known = false, want true", tt.site)
		}
		if host != tt.host {
			t.Errorf("ResolveSiteHost(%q) = %q, want %q", tt.site, host, tt.host)
		}
	}
}

func TestResolveSiteHost_UnknownPassesThrough(t *testing.T) {
	host, known := ResolveSiteHost("staging-east")
	if known {
		t.Error("ResolveSiteHost should report unknown codes")
	}
	if host != "staging-east" {
		t.Errorf("unknown site should pass through unchanged, got %q", host)
	}
}

func TestKnownSitesAllResolve(t *testing.T) {
	for _, site := range KnownSites() {
		if _, known := ResolveSiteHost(site); !known {
			t.Errorf("KnownSites entry %q does not resolve", site)
		}
	}
}
