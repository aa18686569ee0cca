package renovate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const dashboardBody = `This issue lists Renovate updates and detected dependencies.

## Rate-Limited

These updates are currently rate-limited. Click on a checkbox below to force their creation now.

 - [ ] <!-- unlimit-branch=renovate/lodash-4.x -->chore(deps): update dependency lodash to v4.17.21 (` + "`4.17.20`" + ` -> ` + "`4.17.21`" + `)
 - [ ] <!-- create-all-rate-limited-prs -->Create all rate-limited PRs at once

## Open

These updates have all been created already. Click a checkbox below to force a retry/rebase of any.

 - [ ] <!-- rebase-branch=renovate/actions-checkout-4.x -->chore(deps): update actions/checkout action to v4

## Detected dependencies

Some dependency tree.
`

func TestParseDashboard(t *testing.T) {
	t.Parallel()
	data := []struct {
		name           string
		body           string
		exp            []PendingUpdate
		expRateLimited bool
	}{
		{
			name: "empty body",
			body: "",
		},
		{
			name: "no actionable entries",
			body: "This repository is up to date.\n\n## Detected dependencies\n",
		},
		{
			name: "rate limited and open updates",
			body: dashboardBody,
			exp: []PendingUpdate{
				{
					Section:  "Rate-Limited",
					Branch:   "renovate/lodash-4.x",
					Title:    "chore(deps): update dependency lodash to v4.17.21 (`4.17.20` -> `4.17.21`)",
					Versions: []string{"4.17.20", "4.17.21"},
				},
				{
					Section: "Open",
					Branch:  "renovate/actions-checkout-4.x",
					Title:   "chore(deps): update actions/checkout action to v4",
				},
			},
			expRateLimited: true,
		},
		{
			name: "open update only is not rate limited",
			body: "## Open\n\n - [ ] <!-- rebase-branch=renovate/foo-1.x -->update foo to v1\n",
			exp: []PendingUpdate{
				{
					Section: "Open",
					Branch:  "renovate/foo-1.x",
					Title:   "update foo to v1",
				},
			},
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			updates, rateLimited := parseDashboard(d.body)
			if diff := cmp.Diff(d.exp, updates); diff != "" {
				t.Fatal(diff)
			}
			if rateLimited != d.expRateLimited {
				t.Fatalf("wanted rateLimited %v, got %v", d.expRateLimited, rateLimited)
			}
		})
	}
}

func TestExtractVersions(t *testing.T) {
	t.Parallel()
	data := []struct {
		name  string
		title string
		exp   []string
	}{
		{
			name:  "no versions",
			title: "update something",
		},
		{
			name:  "unordered versions are sorted",
			title: "update dep (`2.0.0` replaces `1.9.3`)",
			exp:   []string{"1.9.3", "2.0.0"},
		},
		{
			name:  "non version backticks are ignored",
			title: "update `lodash` (`4.17.20` -> `4.17.21`)",
			exp:   []string{"4.17.20", "4.17.21"},
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(d.exp, extractVersions(d.title)); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}
