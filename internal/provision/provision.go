// Package provision scaffolds per-environment project directories and
// credential files.
package provision

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/opsmirror/ddexport/internal/config"
	"github.com/opsmirror/ddexport/internal/constants"
	"github.com/opsmirror/ddexport/internal/logging"
	"github.com/opsmirror/ddexport/internal/resources"
)

// Provisioner creates project directories, category subdirectories and
// credential files. Re-running it is idempotent: existing directories
// are left intact and existing credential key values are never touched.
type Provisioner struct {
	Settings config.Settings
	Logger   *logging.Logger
}

// Result describes one provisioned environment.
type Result struct {
	Environment string
	ProjectDir  string

	// CredentialsCreated is true when a fresh template was written;
	// false when an existing file only had its site host merged.
	CredentialsCreated bool
}

// Provision scaffolds one project directory per normalized environment
// name. Only inability to create the filesystem root is fatal; any
// per-environment problem is logged and skipped.
func (p *Provisioner) Provision(environments []string) ([]Result, error) {
	if err := os.MkdirAll(p.Settings.BaseDir, constants.DirPerm); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", p.Settings.BaseDir, err)
	}

	host, known := config.ResolveSiteHost(p.Settings.Site)
	if !known {
		p.Logger.Warnf("unrecognized site code %q, using it as the host unchanged", p.Settings.Site)
	}

	var results []Result
	for _, env := range config.NormalizeEnvironments(environments) {
		projectDir := filepath.Join(p.Settings.BaseDir, p.Settings.ProjectDirName(env))
		created, err := p.provisionOne(env, projectDir, host)
		if err != nil {
			p.Logger.Warnf("skipping environment %q: %v", env, err)
			continue
		}
		results = append(results, Result{
			Environment:        env,
			ProjectDir:         projectDir,
			CredentialsCreated: created,
		})
	}
	return results, nil
}

// provisionOne creates one project directory tree and bootstraps or
// refreshes its credential file. Returns whether a fresh template was
// written.
func (p *Provisioner) provisionOne(env, projectDir, host string) (bool, error) {
	if err := os.MkdirAll(projectDir, constants.DirPerm); err != nil {
		return false, fmt.Errorf("failed to create project directory: %w", err)
	}
	for _, category := range resources.All() {
		dir := filepath.Join(projectDir, category.Dir())
		if err := os.MkdirAll(dir, constants.DirPerm); err != nil {
			return false, fmt.Errorf("failed to create category directory %s: %w", dir, err)
		}
	}

	envFile := filepath.Join(projectDir, constants.EnvFileName)
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		if err := config.WriteEnvFileTemplate(envFile, env, host); err != nil {
			return false, err
		}
		p.Logger.Infof("created credential file %s (fill in your keys)", envFile)
		return true, nil
	}

	// Existing file: only the site host is ever auto-updated.
	if err := config.MergeSiteHost(envFile, host); err != nil {
		return false, err
	}
	p.Logger.Debugf("verified credential file %s (site host refreshed)", envFile)
	return false, nil
}
