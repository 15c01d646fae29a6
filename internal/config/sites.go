// Package config provides configuration management for ddexport.
package config

// siteHosts maps known Datadog site codes to their platform host.
// The API endpoint for a host is "api." + host.
var siteHosts = map[string]string{
	"us1":     "datadoghq.com",
	"us3":     "us3.datadoghq.com",
	"us5":     "us5.datadoghq.com",
	"eu1":     "datadoghq.eu",
	"ap1":     "ap1.datadoghq.com",
	"us1-fed": "ddog-gov.com",
}

// ResolveSiteHost returns the platform host for a site code.
// Unrecognized codes pass through unchanged; the second return value
// reports whether the code was found in the table so callers can warn.
// An unknown code is never a hard error.
func ResolveSiteHost(site string) (string, bool) {
	if host, ok := siteHosts[site]; ok {
		return host, true
	}
	return site, false
}

// KnownSites returns the supported site codes in stable order.
func KnownSites() []string {
	return []string{"us1", "us3", "us5", "eu1", "ap1", "us1-fed"}
}
