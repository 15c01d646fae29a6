package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opsmirror/ddexport/internal/config"
	"github.com/opsmirror/ddexport/internal/constants"
)

// newKeysCmd creates the 'keys' command.
func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys <ENVIRONMENT> [base=<path>] [site=<code>]",
		Short: "Interactively set API keys in an environment's credential file",
		Long: `Prompt for the Datadog API key and application key (input hidden) and
write them into the environment's .env credential file. All other lines
of the file are left untouched. Leave a prompt empty to keep the
current value.

Example:
  ddexport keys DEV site=us5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			environment := strings.TrimSpace(args[0])

			site := constants.DefaultSite
			base := constants.DefaultBaseDir
			parseKeyValueArgs(args[1:], map[string]*string{
				"site": &site,
				"base": &base,
			})

			settings := config.Settings{
				Site:    strings.ToLower(strings.TrimSpace(site)),
				BaseDir: base,
			}

			path := settings.EnvFilePath(environment)
			if _, err := os.Stat(path); err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("credential file not found: %s (run 'ddexport provision' first)", path)
				}
				return err
			}

			apiKey, err := promptSecret("DD_API_KEY")
			if err != nil {
				return err
			}
			appKey, err := promptSecret("DD_APP_KEY")
			if err != nil {
				return err
			}

			updates := make(map[string]string, 2)
			if apiKey != "" {
				updates[config.KeyAPIKey] = apiKey
			}
			if appKey != "" {
				updates[config.KeyAppKey] = appKey
			}
			if len(updates) == 0 {
				fmt.Println("Nothing entered; credential file unchanged.")
				return nil
			}

			if err := config.MergeEnvValues(path, updates); err != nil {
				return err
			}
			fmt.Printf("Updated %s\n", path)
			return nil
		},
	}
	return cmd
}
