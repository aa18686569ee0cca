// Package labels implements bulk label management. It reads a YAML spec of
// labels and target repositories, creates missing labels, updates existing
// ones in place, and writes a JSON report.
package labels

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/orgkit/orgkit/pkg/github"
	"github.com/orgkit/orgkit/pkg/report"
	"github.com/spf13/afero"
)

type LabelsService interface {
	CreateLabel(ctx context.Context, owner, repo string, label *github.Label) (*github.Label, *github.Response, error)
	EditLabel(ctx context.Context, owner, repo, name string, label *github.Label) (*github.Label, *github.Response, error)
}

type Controller struct {
	labels LabelsService
	fs     afero.Fs
	writer *report.Writer
	stdout io.Writer
	param  *Param
}

type Param struct {
	Org          string
	SpecFilePath string
}

func New(labels LabelsService, fs afero.Fs, writer *report.Writer, stdout io.Writer, param *Param) *Controller {
	return &Controller{
		labels: labels,
		fs:     fs,
		writer: writer,
		stdout: stdout,
		param:  param,
	}
}

// Spec is the user authored input file.
type Spec struct {
	Labels []*LabelSpec `yaml:"labels"`
	// Repos lists repository names within the organization.
	Repos []string `yaml:"repos"`
}

type LabelSpec struct {
	Name        string `yaml:"name"`
	Color       string `yaml:"color"`
	Description string `yaml:"description"`
}

func (s *Spec) Validate() error {
	if len(s.Labels) == 0 {
		return errors.New("the spec file has no labels")
	}
	if len(s.Repos) == 0 {
		return errors.New("the spec file has no repositories")
	}
	for i, label := range s.Labels {
		if label.Name == "" {
			return fmt.Errorf("labels[%d]: name is required", i)
		}
	}
	return nil
}

func (c *Controller) readSpec() (*Spec, error) {
	data, err := afero.ReadFile(c.fs, c.param.SpecFilePath)
	if err != nil {
		return nil, fmt.Errorf("read the label spec file: %w", err)
	}
	spec := &Spec{}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("parse the label spec file: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("validate the label spec file: %w", err)
	}
	return spec, nil
}
