// Package issues implements bulk issue creation. It reads a YAML spec file
// describing issues and the repositories to open them in, creates them
// sequentially, and writes a JSON report of what happened.
package issues

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/orgkit/orgkit/pkg/github"
	"github.com/orgkit/orgkit/pkg/report"
	"github.com/spf13/afero"
)

type IssuesService interface {
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
}

type Controller struct {
	issues IssuesService
	fs     afero.Fs
	writer *report.Writer
	stdout io.Writer
	param  *Param
}

type Param struct {
	Org string
	// SpecFilePath points at the YAML file describing the issues.
	SpecFilePath string
}

func New(issues IssuesService, fs afero.Fs, writer *report.Writer, stdout io.Writer, param *Param) *Controller {
	return &Controller{
		issues: issues,
		fs:     fs,
		writer: writer,
		stdout: stdout,
		param:  param,
	}
}

// Spec is the user authored input file.
type Spec struct {
	Issues []*IssueSpec `yaml:"issues"`
}

type IssueSpec struct {
	Title  string   `yaml:"title"`
	Body   string   `yaml:"body"`
	Labels []string `yaml:"labels"`
	// Repos lists repository names within the organization, or
	// owner/repo full names for repositories outside it.
	Repos []string `yaml:"repos"`
}

func (s *Spec) Validate() error {
	if len(s.Issues) == 0 {
		return errors.New("the spec file has no issues")
	}
	for i, issue := range s.Issues {
		if issue.Title == "" {
			return fmt.Errorf("issues[%d]: title is required", i)
		}
		if len(issue.Repos) == 0 {
			return fmt.Errorf("issues[%d]: at least one repository is required", i)
		}
	}
	return nil
}

func (c *Controller) readSpec() (*Spec, error) {
	data, err := afero.ReadFile(c.fs, c.param.SpecFilePath)
	if err != nil {
		return nil, fmt.Errorf("read the issue spec file: %w", err)
	}
	spec := &Spec{}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("parse the issue spec file: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("validate the issue spec file: %w", err)
	}
	return spec, nil
}

// splitRepo resolves a spec repo entry against the default organization.
func splitRepo(org, name string) (string, string) {
	if owner, repo, ok := strings.Cut(name, "/"); ok {
		return owner, repo
	}
	return org, name
}
