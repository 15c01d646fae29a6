package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/opsmirror/ddexport/internal/constants"
)

// Credential file keys.
const (
	KeySite     = "DD_SITE"
	KeyAPIKey   = "DD_API_KEY"
	KeyAppKey   = "DD_APP_KEY"
	KeyProxy    = "DD_PROXY"
	KeyNoProxy  = "DD_NO_PROXY"
	KeyCABundle = "DD_CA_BUNDLE"
)

// ErrMalformedEnvFile indicates a credential file a merge refuses to
// rewrite: duplicate lines for the same key, or a value spanning
// lines. The original content is left untouched.
var ErrMalformedEnvFile = errors.New("malformed credential file")

// EnvFilePath returns the credential file path for an environment.
func (s Settings) EnvFilePath(environment string) string {
	return filepath.Join(s.BaseDir, s.ProjectDirName(environment), constants.EnvFileName)
}

// WriteEnvFileTemplate creates a new credential file with a comment
// header, the resolved site host, and placeholder key fields. The file
// is written atomically and restricted to owner read/write.
func WriteEnvFileTemplate(path, environment, host string) error {
	content := fmt.Sprintf(`# Datadog credentials for environment %q
# Replace the placeholder keys below before running an export.
# Optional: DD_PROXY, DD_NO_PROXY, DD_CA_BUNDLE for restricted networks.
%s=%s
%s=%s
%s=%s
`,
		environment,
		KeySite, host,
		KeyAPIKey, constants.PlaceholderAPIKey,
		KeyAppKey, constants.PlaceholderAppKey,
	)
	return writeEnvFile(path, content)
}

// MergeSiteHost updates only the DD_SITE line of an existing credential
// file: the line is replaced if present, appended if missing. Every
// other line is preserved byte-for-byte; key values are never touched.
func MergeSiteHost(path, host string) error {
	return MergeEnvValues(path, map[string]string{KeySite: host})
}

// MergeEnvValues rewrites the given KEY=VALUE lines of a credential
// file in place, appending keys that are missing and leaving all other
// lines untouched.
//
// A file with more than one line for a merged key, or with a value
// containing an unbalanced quote (a value continued over multiple
// lines), is rejected with ErrMalformedEnvFile rather than guessed at.
func MergeEnvValues(path string, updates map[string]string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read credential file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	replaced := make(map[string]bool, len(updates))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		for key, value := range updates {
			if !strings.HasPrefix(trimmed, key+"=") {
				continue
			}
			if replaced[key] {
				return fmt.Errorf("%w: %s appears more than once in %s", ErrMalformedEnvFile, key, path)
			}
			existing := strings.TrimPrefix(trimmed, key+"=")
			if strings.Count(existing, `"`)%2 == 1 {
				return fmt.Errorf("%w: %s value in %s spans multiple lines", ErrMalformedEnvFile, key, path)
			}
			lines[i] = key + "=" + value
			replaced[key] = true
		}
	}

	// Append missing keys, keeping the file newline-terminated.
	// Iterate in a stable order so repeated runs produce identical files.
	for _, key := range []string{KeySite, KeyAPIKey, KeyAppKey, KeyProxy, KeyNoProxy, KeyCABundle} {
		value, wanted := updates[key]
		if !wanted || replaced[key] {
			continue
		}
		entry := key + "=" + value
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines[len(lines)-1] = entry
			lines = append(lines, "")
		} else {
			lines = append(lines, entry, "")
		}
	}

	return writeEnvFile(path, strings.Join(lines, "\n"))
}

// ReadEnvFile parses a credential file into a key/value map.
func ReadEnvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credential file %s: %w", path, err)
	}
	return values, nil
}

// writeEnvFile writes content atomically with owner-only permissions.
func writeEnvFile(path, content string) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(content), constants.EnvFilePerm); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save credential file: %w", err)
	}
	return nil
}
