// Package http builds HTTP clients honoring the credential bundle's
// proxy and CA overrides.
package http

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	nethttp "net/http"
	"net/url"
	"os"

	"golang.org/x/net/http/httpproxy"

	"github.com/opsmirror/ddexport/internal/config"
	"github.com/opsmirror/ddexport/internal/constants"
)

// ConfigureHTTPClient builds an HTTP client for API calls. Proxy and CA
// settings come from the credential bundle; when no proxy is set the
// standard environment variables (HTTP_PROXY, HTTPS_PROXY, NO_PROXY)
// apply. The client carries no overall timeout — callers set a
// per-request timeout via context.
func ConfigureHTTPClient(creds *config.Credentials) (*nethttp.Client, error) {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	if creds.CABundle != "" {
		pool, err := loadCABundle(creds.CABundle)
		if err != nil {
			return nil, err
		}
		tlsConfig.RootCAs = pool
	}

	transport := &nethttp.Transport{
		DialContext: (&net.Dialer{
			Timeout:   constants.HTTPDialTimeout,
			KeepAlive: constants.HTTPDialKeepAlive,
		}).DialContext,
		TLSClientConfig:     tlsConfig,
		MaxIdleConns:        16,
		MaxIdleConnsPerHost: 16,
		IdleConnTimeout:     constants.HTTPIdleConnTimeout,
		TLSHandshakeTimeout: constants.HTTPTLSHandshakeTimeout,
	}

	if creds.Proxy != "" {
		proxyURL, err := url.Parse(creds.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", creds.Proxy, err)
		}
		transport.Proxy = proxyFuncWithBypass(proxyURL, creds.NoProxy)
	} else {
		transport.Proxy = nethttp.ProxyFromEnvironment
	}

	return &nethttp.Client{Transport: transport}, nil
}

// loadCABundle returns the system pool extended with the PEM
// certificates from the given file.
func loadCABundle(path string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA bundle %s: %w", path, err)
	}
	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("CA bundle %s contains no usable certificates", path)
	}
	return pool, nil
}

// proxyFuncWithBypass returns a proxy function that respects the
// NoProxy bypass list. With an empty list it behaves identically to
// nethttp.ProxyURL.
func proxyFuncWithBypass(proxyURL *url.URL, noProxy string) func(*nethttp.Request) (*url.URL, error) {
	if noProxy == "" {
		return nethttp.ProxyURL(proxyURL)
	}
	cfg := httpproxy.Config{
		HTTPProxy:  proxyURL.String(),
		HTTPSProxy: proxyURL.String(),
		NoProxy:    noProxy,
	}
	proxyFunc := cfg.ProxyFunc()
	return func(req *nethttp.Request) (*url.URL, error) {
		return proxyFunc(req.URL)
	}
}
