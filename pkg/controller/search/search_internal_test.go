package search

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/orgkit/orgkit/pkg/github"
	"github.com/sirupsen/logrus"
)

type searchResponse struct {
	result *github.CodeSearchResult
	err    error
}

type fakeSearchService struct {
	// responses are served in order, one per Code call.
	responses []searchResponse
	calls     int
}

func (f *fakeSearchService) Code(_ context.Context, _ string, _ *github.SearchOptions) (*github.CodeSearchResult, *github.Response, error) {
	if f.calls >= len(f.responses) {
		return nil, nil, errors.New("unexpected call")
	}
	r := f.responses[f.calls]
	f.calls++
	return r.result, nil, r.err
}

func testLogE() *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(logger)
}

func codePage(total, n int) *github.CodeSearchResult {
	results := make([]*github.CodeResult, n)
	for i := range n {
		results[i] = &github.CodeResult{
			Repository: &github.Repository{FullName: github.Ptr("acme/app")},
			Path:       github.Ptr(fmt.Sprintf("file-%03d.yml", i)),
		}
	}
	return &github.CodeSearchResult{
		Total:       github.Ptr(total),
		CodeResults: results,
	}
}

func TestController_searchCode_pagination(t *testing.T) {
	t.Parallel()
	svc := &fakeSearchService{
		responses: []searchResponse{
			{result: codePage(130, perPage)},
			{result: codePage(130, 30)},
		},
	}
	ctrl := New(svc, nil, nil, &Param{Org: "acme", Query: "uses:"})
	total, items, err := ctrl.searchCode(t.Context(), testLogE(), "uses: org:acme")
	if err != nil {
		t.Fatal(err)
	}
	if total != 130 {
		t.Fatalf("wanted total 130, got %d", total)
	}
	if len(items) != 130 {
		t.Fatalf("wanted 130 items, got %d", len(items))
	}
	if svc.calls != 2 {
		t.Fatalf("wanted 2 pages, got %d calls", svc.calls)
	}
}

func TestController_searchCode_maxPages(t *testing.T) {
	t.Parallel()
	svc := &fakeSearchService{
		responses: []searchResponse{
			{result: codePage(1000, perPage)},
			{result: codePage(1000, perPage)},
		},
	}
	ctrl := New(svc, nil, nil, &Param{Org: "acme", Query: "uses:", MaxPages: 2})
	_, items, err := ctrl.searchCode(t.Context(), testLogE(), "uses: org:acme")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2*perPage {
		t.Fatalf("wanted %d items, got %d", 2*perPage, len(items))
	}
	if svc.calls != 2 {
		t.Fatalf("the walk must stop at MaxPages, got %d calls", svc.calls)
	}
}

func TestController_searchCode_rateLimitRetry(t *testing.T) {
	t.Parallel()
	svc := &fakeSearchService{
		responses: []searchResponse{
			{err: &github.RateLimitError{
				Rate: github.Rate{
					Reset: github.Timestamp{Time: time.Now().Add(time.Minute)},
				},
			}},
			{result: codePage(1, 1)},
		},
	}
	ctrl := New(svc, nil, nil, &Param{Org: "acme", Query: "uses:"})
	slept := []time.Duration{}
	ctrl.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	total, items, err := ctrl.searchCode(t.Context(), testLogE(), "uses: org:acme")
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("wanted 1 item after the retry, got total %d, %d items", total, len(items))
	}
	if len(slept) != 1 {
		t.Fatalf("wanted 1 sleep, got %d", len(slept))
	}
	if slept[0] <= 0 {
		t.Fatalf("the wait must extend past the reset time, got %s", slept[0])
	}
	exp := []Item{{Repo: "acme/app", Path: "file-000.yml"}}
	if diff := cmp.Diff(exp, items); diff != "" {
		t.Fatal(diff)
	}
}

func TestController_searchCode_otherErrorsAreFatal(t *testing.T) {
	t.Parallel()
	svc := &fakeSearchService{
		responses: []searchResponse{
			{err: errors.New("boom")},
		},
	}
	ctrl := New(svc, nil, nil, &Param{Org: "acme", Query: "uses:"})
	if _, _, err := ctrl.searchCode(t.Context(), testLogE(), "uses: org:acme"); err == nil {
		t.Fatal("an error must be returned")
	}
}
