package constants

import (
	"io/fs"
	"time"
)

// Defaults for CLI arguments
const (
	// DefaultSite - site code used when none is given
	DefaultSite = "us1"

	// DefaultBaseDir - base directory for project directories
	DefaultBaseDir = "datadog-api"

	// DefaultEnvironments - comma-separated environment list for provisioning
	DefaultEnvironments = "DEV,PROD"
)

// Credential file
const (
	// EnvFileName - name of the per-environment credential file
	EnvFileName = ".env"

	// EnvFilePerm - credential files hold API keys, owner read/write only
	EnvFilePerm fs.FileMode = 0600

	// DirPerm - permissions for project and category directories
	DirPerm fs.FileMode = 0755

	// PlaceholderAPIKey - sentinel written at provisioning time.
	// Export refuses to run until a human replaces it.
	PlaceholderAPIKey = "your_api_key_here"

	// PlaceholderAppKey - sentinel for the application key
	PlaceholderAppKey = "your_app_key_here"
)

// HTTP Client Timeouts
const (
	// APIRequestTimeout - per-request timeout for category fetches (30 seconds)
	APIRequestTimeout = 30 * time.Second

	// HTTPDialTimeout - timeout for establishing connection (30 seconds)
	HTTPDialTimeout = 30 * time.Second

	// HTTPDialKeepAlive - keep-alive period for dialer (30 seconds)
	HTTPDialKeepAlive = 30 * time.Second

	// HTTPIdleConnTimeout - how long to keep idle connections open (90 seconds)
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPTLSHandshakeTimeout - timeout for TLS handshake (10 seconds)
	HTTPTLSHandshakeTimeout = 10 * time.Second
)

// Parallel fetch limits
const (
	// MinParallel - sequential mode
	MinParallel = 1

	// MaxParallel - maximum concurrent category fetches.
	// Output files are independent per category, so no write contention.
	MaxParallel = 8
)
