package labels

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/orgkit/orgkit/pkg/github"
	"github.com/orgkit/orgkit/pkg/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type fakeLabelsService struct {
	// existing maps "repo/label" to true when CreateLabel must answer 422.
	existing map[string]bool
	// fail maps "repo/label" to a forced error.
	fail    map[string]error
	created []string
	updated []string
}

func (f *fakeLabelsService) CreateLabel(_ context.Context, _, repo string, label *github.Label) (*github.Label, *github.Response, error) {
	key := repo + "/" + label.GetName()
	if err, ok := f.fail[key]; ok {
		return nil, nil, err
	}
	if f.existing[key] {
		return nil, nil, &github.ErrorResponse{
			Response: &http.Response{
				StatusCode: http.StatusUnprocessableEntity,
			},
		}
	}
	f.created = append(f.created, key)
	return label, nil, nil
}

func (f *fakeLabelsService) EditLabel(_ context.Context, _, repo, name string, label *github.Label) (*github.Label, *github.Response, error) {
	f.updated = append(f.updated, repo+"/"+name)
	return label, nil, nil
}

func testLogE() *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(logger)
}

const labelSpec = `labels:
  - name: security
    color: d73a4a
    description: Security related
  - name: maintenance
    color: ededed
repos: [app, lib]
`

func newTestController(svc LabelsService) *Controller {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "labels.yaml", []byte(labelSpec), 0o644)
	return New(svc, fs, report.NewWriter(fs, "out"), &bytes.Buffer{}, &Param{
		Org:          "acme",
		SpecFilePath: "labels.yaml",
	})
}

func TestController_Run(t *testing.T) {
	t.Parallel()
	svc := &fakeLabelsService{
		existing: map[string]bool{
			"app/security": true,
		},
		fail: map[string]error{
			"lib/maintenance": errors.New("forbidden"),
		},
	}
	ctrl := newTestController(svc)
	if err := ctrl.Run(t.Context(), testLogE()); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"app/maintenance", "lib/security"}, svc.created); diff != "" {
		t.Fatal(diff)
	}
	if diff := cmp.Diff([]string{"app/security"}, svc.updated); diff != "" {
		t.Fatal(diff)
	}
}

func TestSpec_Validate(t *testing.T) {
	t.Parallel()
	data := []struct {
		name  string
		spec  *Spec
		isErr bool
	}{
		{
			name:  "no labels",
			spec:  &Spec{Repos: []string{"app"}},
			isErr: true,
		},
		{
			name: "no repos",
			spec: &Spec{
				Labels: []*LabelSpec{{Name: "security"}},
			},
			isErr: true,
		},
		{
			name: "missing name",
			spec: &Spec{
				Labels: []*LabelSpec{{Color: "ededed"}},
				Repos:  []string{"app"},
			},
			isErr: true,
		},
		{
			name: "valid",
			spec: &Spec{
				Labels: []*LabelSpec{{Name: "security"}},
				Repos:  []string{"app"},
			},
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			err := d.spec.Validate()
			if d.isErr {
				if err == nil {
					t.Fatal("an error must be returned")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
		})
	}
}
