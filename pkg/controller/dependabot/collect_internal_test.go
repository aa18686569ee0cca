package dependabot

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/orgkit/orgkit/pkg/github"
)

type fakeDependabotService struct {
	// pages maps a cursor to the alerts of that page. The empty cursor is
	// the first page.
	pages map[string][]*github.DependabotAlert
	// next maps a cursor to the cursor of the following page.
	next  map[string]string
	calls []string
}

func (f *fakeDependabotService) ListOrgAlerts(_ context.Context, _ string, opts *github.ListAlertsOptions) ([]*github.DependabotAlert, *github.Response, error) {
	cursor := opts.ListCursorOptions.After
	f.calls = append(f.calls, cursor)
	resp := &github.Response{After: f.next[cursor]}
	return f.pages[cursor], resp, nil
}

func testAlert(repo string, number int, severity, ecosystem string) *github.DependabotAlert {
	return &github.DependabotAlert{
		Number: github.Ptr(number),
		Repository: &github.Repository{
			FullName: github.Ptr(repo),
		},
		SecurityAdvisory: &github.DependabotSecurityAdvisory{
			Severity: github.Ptr(severity),
			GHSAID:   github.Ptr(fmt.Sprintf("GHSA-%04d", number)),
			Summary:  github.Ptr("a vulnerability"),
		},
		Dependency: &github.Dependency{
			Package: &github.VulnerabilityPackage{
				Name:      github.Ptr("some-package"),
				Ecosystem: github.Ptr(ecosystem),
			},
		},
	}
}

func TestController_listAlerts_cursorPagination(t *testing.T) {
	t.Parallel()
	svc := &fakeDependabotService{
		pages: map[string][]*github.DependabotAlert{
			"":        {testAlert("acme/app", 1, "high", "gomod")},
			"cursor1": {testAlert("acme/app", 2, "low", "npm")},
			"cursor2": {testAlert("acme/lib", 7, "critical", "gomod")},
		},
		next: map[string]string{
			"":        "cursor1",
			"cursor1": "cursor2",
		},
	}
	ctrl := New(svc, nil, nil, &Param{Org: "acme"})
	alerts, err := ctrl.listAlerts(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if len(alerts) != 3 {
		t.Fatalf("wanted 3 alerts, got %d", len(alerts))
	}
	if diff := cmp.Diff([]string{"", "cursor1", "cursor2"}, svc.calls); diff != "" {
		t.Fatal(diff)
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()
	created := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	alert := testAlert("acme/app", 5, "critical", "npm")
	alert.HTMLURL = github.Ptr("https://github.com/acme/app/security/dependabot/5")
	alert.SecurityAdvisory.CVEID = github.Ptr("CVE-2024-0001")
	alert.CreatedAt = &github.Timestamp{Time: created}
	exp := Alert{
		Repo:      "acme/app",
		Number:    5,
		Package:   "some-package",
		Ecosystem: "npm",
		Severity:  "critical",
		GHSAID:    "GHSA-0005",
		CVEID:     "CVE-2024-0001",
		Summary:   "a vulnerability",
		URL:       "https://github.com/acme/app/security/dependabot/5",
		CreatedAt: "2024-01-31T12:00:00Z",
	}
	if diff := cmp.Diff(exp, convert(alert)); diff != "" {
		t.Fatal(diff)
	}
}

func TestNew_defaultState(t *testing.T) {
	t.Parallel()
	ctrl := New(&fakeDependabotService{}, nil, nil, &Param{Org: "acme"})
	if ctrl.param.State != "open" {
		t.Fatalf(`wanted the default state "open", got %q`, ctrl.param.State)
	}
}
