package scanaction

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/orgkit/orgkit/pkg/github"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

const perPage = 100

// Run walks every repository of the organization and builds the usage
// report. Only organization level failures (bad credentials, unknown
// organization) abort the scan; everything else is recorded in the report's
// error buckets.
func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) (*Report, error) {
	repos, err := c.listRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list repositories of %s: %w", c.param.Org, err)
	}

	agg := newAggregate()
	c.scanRepositories(ctx, logE, repos, agg)
	return agg.report(c.param.Org, c.param.Target, len(repos), c.now()), nil
}

// listRepositories pages through all repositories, 100 per page, stopping
// when a page comes back smaller than the page size. Archived repositories
// are deliberately not filtered out here.
func (c *Controller) listRepositories(ctx context.Context) ([]*github.Repository, error) {
	opts := &github.RepositoryListByOrgOptions{
		Type: "all",
		ListOptions: github.ListOptions{
			Page:    1,
			PerPage: perPage,
		},
	}
	var all []*github.Repository
	for {
		repos, _, err := c.repos.ListByOrg(ctx, c.param.Org, opts)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		all = append(all, repos...)
		if len(repos) < perPage {
			return all, nil
		}
		opts.Page++
	}
}

func (c *Controller) scanRepositories(ctx context.Context, logE *logrus.Entry, repos []*github.Repository, agg *aggregate) {
	var bar *pterm.ProgressbarPrinter
	if c.param.Progress {
		bar, _ = pterm.DefaultProgressbar.WithTotal(len(repos)).WithTitle("scanning repositories").Start()
	}

	concurrency := c.param.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for _, repo := range repos {
		wg.Add(1)
		sem <- struct{}{}
		go func(repo *github.Repository) {
			defer wg.Done()
			defer func() { <-sem }()
			c.scanRepository(ctx, logE, repo, agg)
			if bar != nil {
				bar.Increment()
			}
		}(repo)
	}
	wg.Wait()
	if bar != nil {
		bar.Stop() //nolint:errcheck
	}
}

// scanRepository scans one repository and merges its results into the
// aggregate. A panic while processing the repository is recovered and
// recorded as a scan error so the walk continues.
func (c *Controller) scanRepository(ctx context.Context, logE *logrus.Entry, repo *github.Repository, agg *aggregate) {
	fullName := repo.GetFullName()
	logE = logE.WithField("repo", fullName)
	defer func() {
		if r := recover(); r != nil {
			logE.WithField("panic", r).Error("scan a repository")
			agg.addScanError(fullName)
		}
	}()

	owner := repo.GetOwner().GetLogin()
	name := repo.GetName()
	_, entries, _, err := c.repos.GetContents(ctx, owner, name, ".github/workflows", nil)
	if err != nil {
		if github.IsNotFound(err) {
			// No workflows directory. Not an error.
			logE.Debug("no workflows directory")
			agg.addScanned()
			return
		}
		logerr.WithError(logE, err).Warn("list the workflows directory")
		agg.addAccessError(fullName)
		return
	}
	agg.addScanned()

	for _, entry := range entries {
		if entry.GetType() != "file" {
			continue
		}
		path := entry.GetPath()
		if !strings.HasSuffix(path, ".yml") && !strings.HasSuffix(path, ".yaml") {
			continue
		}
		result := c.scanWorkflow(ctx, logE.WithField("workflow", path), owner, name, path)
		agg.merge(fullName, path, result)
	}
}

// aggregate is the only shared mutable state of a scan. All mutation goes
// through its mutex so the worker pool can scan repositories in parallel.
type aggregate struct {
	mu             sync.Mutex
	scanned        int
	directUsages   []Usage
	indirectUsages map[string][]Usage
	directRepos    map[string]struct{}
	indirectRepos  map[string]struct{}
	totalIndirect  int
	accessErrors   []string
	scanErrors     []string
}

func newAggregate() *aggregate {
	return &aggregate{
		indirectUsages: map[string][]Usage{},
		directRepos:    map[string]struct{}{},
		indirectRepos:  map[string]struct{}{},
	}
}

func (a *aggregate) addScanned() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.scanned++
}

func (a *aggregate) addAccessError(repo string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.accessErrors = append(a.accessErrors, repo)
}

func (a *aggregate) addScanError(repo string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.scanErrors = append(a.scanErrors, repo)
}

func (a *aggregate) merge(repo, workflow string, result *ScanResult) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if result.Direct {
		a.directUsages = append(a.directUsages, Usage{Repo: repo, Workflow: workflow})
		a.directRepos[repo] = struct{}{}
	}
	for _, ref := range result.Indirect {
		a.indirectUsages[ref] = append(a.indirectUsages[ref], Usage{Repo: repo, Workflow: workflow})
		a.indirectRepos[repo] = struct{}{}
		a.totalIndirect++
	}
}

// report freezes the aggregate into the output document. Slices are sorted
// so two scans of the same organization state serialize identically apart
// from the timestamp.
func (a *aggregate) report(org, target string, total int, now time.Time) *Report {
	a.mu.Lock()
	defer a.mu.Unlock()

	direct := make([]Usage, len(a.directUsages))
	copy(direct, a.directUsages)
	sortUsages(direct)

	indirect := make(map[string][]Usage, len(a.indirectUsages))
	for ref, usages := range a.indirectUsages {
		arr := make([]Usage, len(usages))
		copy(arr, usages)
		sortUsages(arr)
		indirect[ref] = arr
	}

	accessErrors := sortedCopy(a.accessErrors)
	scanErrors := sortedCopy(a.scanErrors)

	return &Report{
		Organization: org,
		Timestamp:    now.Format(time.RFC3339),
		TargetAction: target,
		Summary: Summary{
			TotalRepositories:             total,
			RepositoriesScanned:           a.scanned,
			RepositoriesWithDirectUsage:   len(a.directRepos),
			RepositoriesWithIndirectUsage: len(a.indirectRepos),
			TotalDirectUsages:             len(a.directUsages),
			TotalIndirectUsages:           a.totalIndirect,
		},
		DirectUsages:   direct,
		IndirectUsages: indirect,
		Errors: Errors{
			AccessErrors: accessErrors,
			ScanErrors:   scanErrors,
		},
	}
}

func sortUsages(usages []Usage) {
	sort.Slice(usages, func(i, j int) bool {
		if usages[i].Repo != usages[j].Repo {
			return usages[i].Repo < usages[j].Repo
		}
		return usages[i].Workflow < usages[j].Workflow
	})
}

func sortedCopy(arr []string) []string {
	if arr == nil {
		return []string{}
	}
	out := make([]string, len(arr))
	copy(out, arr)
	sort.Strings(out)
	return out
}
