package config

import (
	"fmt"
	"strings"
)

// Settings is the explicit configuration object passed into the
// provisioner and the exporter. There is no ambient global state; the
// CLI builds one of these from its arguments and hands it down.
type Settings struct {
	// Site is the lowercase site code (us1, us5, eu1, ...).
	Site string

	// BaseDir is the filesystem root holding the project directories.
	BaseDir string
}

// ProjectDirName returns the directory name for an environment under
// BaseDir: <site>_org_<lowercase env>.
func (s Settings) ProjectDirName(environment string) string {
	return fmt.Sprintf("%s_org_%s", s.Site, strings.ToLower(strings.TrimSpace(environment)))
}

// NormalizeEnvironments trims, lower-cases and deduplicates an
// environment list, preserving first-seen order. Blank entries are
// silently skipped.
func NormalizeEnvironments(environments []string) []string {
	seen := make(map[string]bool, len(environments))
	out := make([]string, 0, len(environments))
	for _, env := range environments {
		name := strings.ToLower(strings.TrimSpace(env))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
