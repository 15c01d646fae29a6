package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opsmirror/ddexport/internal/config"
	"github.com/opsmirror/ddexport/internal/constants"
	"github.com/opsmirror/ddexport/internal/provision"
)

// newProvisionCmd creates the 'provision' command.
func newProvisionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provision [site=<code>] [env=<A,B,...>] [base=<path>]",
		Short: "Create per-environment export directories and credential files",
		Long: `Create one project directory per environment under the base directory,
with a subdirectory per resource category and a .env credential file.

Re-running is safe: existing directories are left intact and existing
credential key values are never modified. Only the DD_SITE field of an
existing .env is refreshed.

Examples:
  # Defaults: site=us1 env=DEV,PROD base=datadog-api
  ddexport provision

  # Sandbox org on the us5 site
  ddexport provision site=us5 env=SANDBOX base=exports`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site := constants.DefaultSite
			envList := constants.DefaultEnvironments
			base := constants.DefaultBaseDir
			parseKeyValueArgs(args, map[string]*string{
				"site": &site,
				"env":  &envList,
				"base": &base,
			})

			settings := config.Settings{
				Site:    strings.ToLower(strings.TrimSpace(site)),
				BaseDir: base,
			}

			p := &provision.Provisioner{
				Settings: settings,
				Logger:   GetLogger(),
			}
			results, err := p.Provision(strings.Split(envList, ","))
			if err != nil {
				return err
			}

			host, _ := config.ResolveSiteHost(settings.Site)
			fmt.Printf("Site:  %s -> %s\n", settings.Site, host)
			fmt.Printf("Base:  %s\n\n", settings.BaseDir)
			for _, r := range results {
				state := "verified"
				if r.CredentialsCreated {
					state = "created"
				}
				fmt.Printf("  %-10s %s (%s credentials)\n", r.Environment, r.ProjectDir, state)
			}
			if len(results) == 0 {
				fmt.Println("No environments provisioned.")
			}
			return nil
		},
	}
	return cmd
}
