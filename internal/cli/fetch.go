package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/opsmirror/ddexport/internal/config"
	"github.com/opsmirror/ddexport/internal/constants"
	"github.com/opsmirror/ddexport/internal/export"
)

// defaultResources is exported when no resource list is given,
// matching the historical behavior.
const defaultResources = "Monitors"

// newFetchCmd creates the 'fetch' command.
func newFetchCmd() *cobra.Command {
	var parallel int

	cmd := &cobra.Command{
		Use:   `fetch <ENVIRONMENT> ["<Comma,Separated,Resources>"] [base=<path>] [site=<code>]`,
		Short: "Export resource categories for an environment",
		Long: `Fetch the requested resource categories from the Datadog API using the
environment's credential file and write one JSON file per category under
<base>/<site>_org_<env>/<category>/<category>.json.

Resource names are matched case-insensitively; unknown names are skipped.
A failing category never aborts the batch: the final report lists every
success and failure.

Categories: dashboards, monitors, notebooks, on-call, restriction-policies,
roles, tags, teams, users, slos, software-catalog.

Examples:
  ddexport fetch DEV "Dashboards,Monitors" site=us5
  ddexport fetch PROD "users, roles, teams" base=exports
  ddexport fetch DEV "Monitors" --parallel 4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			environment := strings.TrimSpace(args[0])
			resourcesArg := defaultResources
			rest := args[1:]
			if len(rest) > 0 && !strings.Contains(rest[0], "=") {
				resourcesArg = rest[0]
				rest = rest[1:]
			}

			site := constants.DefaultSite
			base := constants.DefaultBaseDir
			parseKeyValueArgs(rest, map[string]*string{
				"site": &site,
				"base": &base,
			})

			settings := config.Settings{
				Site:    strings.ToLower(strings.TrimSpace(site)),
				BaseDir: base,
			}

			var names []string
			for _, name := range strings.Split(resourcesArg, ",") {
				if strings.TrimSpace(name) != "" {
					names = append(names, strings.TrimSpace(name))
				}
			}
			if len(names) == 0 {
				fmt.Println("No resources requested; nothing to do.")
				return nil
			}

			exporter := &export.Exporter{
				Settings: settings,
				Source:   config.FileSource{Settings: settings},
				Logger:   GetLogger(),
				Parallel: parallel,
			}

			// Progress bar on stderr so stdout stays clean for the report.
			if !verbose && !debug {
				bar := progressbar.NewOptions(len(names),
					progressbar.OptionSetDescription("exporting"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSetWidth(40),
					progressbar.OptionThrottle(100),
					progressbar.OptionOnCompletion(func() {
						fmt.Fprint(os.Stderr, "\n")
					}),
				)
				exporter.OnResult = func(export.CategoryResult) {
					_ = bar.Add(1)
				}
			}

			fmt.Printf("Base: %s | Site: %s | Env: %s | Resources: %s\n",
				settings.BaseDir, settings.Site, environment, strings.Join(names, ","))

			report, err := exporter.Run(GetContext(), export.Request{
				Environment: environment,
				Resources:   names,
			})
			if err != nil {
				return err
			}

			printReport(report)
			return nil
		},
	}

	cmd.Flags().IntVarP(&parallel, "parallel", "p", constants.MinParallel,
		fmt.Sprintf("Concurrent category fetches (1 = sequential, max %d)", constants.MaxParallel))

	return cmd
}

// printReport writes the final per-category report to stdout.
func printReport(report *export.Report) {
	fmt.Println()
	for _, result := range report.Results {
		switch result.Status {
		case export.StatusSucceeded:
			fmt.Printf("  ok      %-22s %s\n", result.Name, result.OutputPath)
		case export.StatusSkipped:
			fmt.Printf("  skipped %-22s %s\n", result.Name, result.Reason)
		default:
			fmt.Printf("  failed  %-22s %s\n", result.Name, result.Reason)
		}
	}
	fmt.Printf("\nDone: %s\n", report.Summary())
}
