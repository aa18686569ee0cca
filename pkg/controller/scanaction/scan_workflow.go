package scanaction

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
	"gopkg.in/yaml.v3"
)

// workflow is the shape of a workflow file the scan depends on. Jobs may
// call a reusable workflow through a top level uses, or run steps that each
// may use an action.
type workflow struct {
	Jobs map[string]*workflowJob `yaml:"jobs"`
}

type workflowJob struct {
	Uses  string          `yaml:"uses"`
	Steps []*workflowStep `yaml:"steps"`
}

type workflowStep struct {
	Uses string `yaml:"uses"`
}

// ScanResult is the outcome for one (repository, workflow file) pair.
type ScanResult struct {
	// Direct is true when the target action is reached, directly or
	// through nested composite actions.
	Direct bool
	// Indirect lists the other remote references encountered, in
	// encounter order without duplicates. They are recorded so operators
	// can audit the indirect dependency surface even when no match
	// occurred.
	Indirect []string
}

// scanWorkflow fetches and parses one workflow file and applies the matcher
// to every job and step. A failure local to this file is logged and yields
// an empty result, so a single bad workflow doesn't abort the repository.
func (c *Controller) scanWorkflow(ctx context.Context, logE *logrus.Entry, owner, repo, path string) *ScanResult {
	result := &ScanResult{}
	file, _, _, err := c.repos.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		logerr.WithError(logE, err).Warn("get a workflow file")
		return result
	}
	if file == nil {
		logE.Warn("the workflow path is not a file")
		return result
	}
	content, err := file.GetContent()
	if err != nil {
		logerr.WithError(logE, err).Warn("decode a workflow file")
		return result
	}
	wf := &workflow{}
	if err := yaml.Unmarshal([]byte(content), wf); err != nil {
		// Malformed YAML means no jobs, not a scan failure.
		logerr.WithError(logE, err).Debug("parse a workflow file")
		return result
	}

	seen := map[string]struct{}{}
	for _, jobID := range sortedJobIDs(wf.Jobs) {
		job := wf.Jobs[jobID]
		if job == nil {
			continue
		}
		if job.Uses != "" && c.matcher.Match(ctx, logE, job.Uses) {
			result.Direct = true
		}
		for _, step := range job.Steps {
			if step == nil || step.Uses == "" {
				continue
			}
			if c.matcher.Match(ctx, logE, step.Uses) {
				result.Direct = true
				continue
			}
			if !isRemoteRef(step.Uses) {
				continue
			}
			if _, ok := seen[step.Uses]; ok {
				continue
			}
			seen[step.Uses] = struct{}{}
			result.Indirect = append(result.Indirect, step.Uses)
		}
	}
	return result
}

// sortedJobIDs fixes the iteration order so two runs against the same
// organization state produce identical reports.
func sortedJobIDs(jobs map[string]*workflowJob) []string {
	ids := make([]string, 0, len(jobs))
	for id := range jobs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
