package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/opsmirror/ddexport/internal/api"
	"github.com/opsmirror/ddexport/internal/config"
	"github.com/opsmirror/ddexport/internal/constants"
	"github.com/opsmirror/ddexport/internal/logging"
	"github.com/opsmirror/ddexport/internal/resources"
)

// Fetcher retrieves the raw payload for one resource category.
// *api.Client is the production implementation.
type Fetcher interface {
	FetchCategory(ctx context.Context, category resources.Category) ([]byte, error)
}

// Request names one export invocation: an environment and the
// user-supplied resource names (matched case-insensitively).
type Request struct {
	Environment string
	Resources   []string
}

// Exporter fetches requested resource categories for one environment
// and writes each payload under the environment's project directory.
// One failing category never aborts the batch.
type Exporter struct {
	Settings config.Settings
	Source   config.Source
	Logger   *logging.Logger

	// Parallel bounds concurrent category fetches; values below 2 mean
	// the sequential per-category loop. Output files are independent per
	// category, so no locking is needed around the writes.
	Parallel int

	// NewFetcher builds the per-invocation fetcher from resolved
	// credentials. Defaults to api.NewClient.
	NewFetcher func(*config.Credentials) (Fetcher, error)

	// OnResult, if set, is called as each category reaches a terminal
	// state. Used by the CLI progress bar.
	OnResult func(CategoryResult)
}

// Run resolves credentials and exports every requested category.
// It returns an error only when the invocation cannot proceed at all
// (missing credentials, unusable project directory); per-category
// failures land in the report.
func (e *Exporter) Run(ctx context.Context, req Request) (*Report, error) {
	creds, err := e.Source.Resolve(req.Environment)
	if err != nil {
		return nil, err
	}

	newFetcher := e.NewFetcher
	if newFetcher == nil {
		newFetcher = func(c *config.Credentials) (Fetcher, error) { return api.NewClient(c) }
	}
	fetcher, err := newFetcher(creds)
	if err != nil {
		return nil, err
	}

	projectDir := filepath.Join(e.Settings.BaseDir, e.Settings.ProjectDirName(req.Environment))
	if err := os.MkdirAll(projectDir, constants.DirPerm); err != nil {
		return nil, fmt.Errorf("failed to create project directory %s: %w", projectDir, err)
	}

	report := &Report{Environment: req.Environment}
	var wanted []resources.Category
	var wantedNames []string
	seen := make(map[resources.Category]bool)
	for _, name := range req.Resources {
		category, ok := resources.Parse(name)
		if !ok {
			e.Logger.Warnf("unknown resource %q, skipping", name)
			result := CategoryResult{Name: name, Status: StatusSkipped, Reason: "unknown resource"}
			report.Results = append(report.Results, result)
			if e.OnResult != nil {
				e.OnResult(result)
			}
			continue
		}
		if seen[category] {
			continue
		}
		seen[category] = true
		wanted = append(wanted, category)
		wantedNames = append(wantedNames, name)
	}
	if len(wanted) == 0 {
		return report, nil
	}

	results := make([]CategoryResult, len(wanted))
	run := func(i int) {
		results[i] = e.exportOne(ctx, fetcher, projectDir, wantedNames[i], wanted[i])
	}

	if e.Parallel > 1 {
		e.runParallel(len(wanted), run)
	} else {
		for i := range wanted {
			run(i)
		}
	}

	for _, result := range results {
		report.Results = append(report.Results, result)
	}
	return report, nil
}

// exportOne transitions one category pending -> succeeded | failed.
func (e *Exporter) exportOne(ctx context.Context, fetcher Fetcher, projectDir, name string, category resources.Category) CategoryResult {
	result := CategoryResult{Name: name}
	defer func() {
		if e.OnResult != nil {
			e.OnResult(result)
		}
	}()

	reqCtx, cancel := context.WithTimeout(ctx, constants.APIRequestTimeout)
	defer cancel()

	body, err := fetcher.FetchCategory(reqCtx, category)
	if err != nil {
		e.Logger.Warnf("%s: %v", category, err)
		result.Status = StatusFailed
		result.Reason = err.Error()
		return result
	}

	outPath := filepath.Join(projectDir, filepath.FromSlash(category.OutputFile()))
	if err := os.MkdirAll(filepath.Dir(outPath), constants.DirPerm); err != nil {
		result.Status = StatusFailed
		result.Reason = fmt.Sprintf("failed to create output directory: %v", err)
		return result
	}
	if err := os.WriteFile(outPath, body, 0644); err != nil {
		result.Status = StatusFailed
		result.Reason = fmt.Sprintf("failed to write output: %v", err)
		return result
	}

	e.Logger.Infof("wrote %s (%d bytes)", outPath, len(body))
	result.Status = StatusSucceeded
	result.OutputPath = outPath
	return result
}

// runParallel drives n independent tasks with a bounded worker pool.
func (e *Exporter) runParallel(n int, run func(int)) {
	workers := e.Parallel
	if workers > constants.MaxParallel {
		workers = constants.MaxParallel
	}
	if workers > n {
		workers = n
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				run(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		indexes <- i
	}
	close(indexes)
	wg.Wait()
}
