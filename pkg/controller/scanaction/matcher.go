package scanaction

import (
	"context"
	"strings"

	"github.com/orgkit/orgkit/pkg/github"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
	"gopkg.in/yaml.v3"
)

// maxCompositeDepth bounds composite action expansion. A misconfigured
// action that references itself would otherwise recurse forever.
const maxCompositeDepth = 10

// Matcher decides whether a uses reference reaches the target action,
// directly or through nested composite actions.
type Matcher struct {
	repos  RepositoriesService
	target string
}

func NewMatcher(repos RepositoriesService, target string) *Matcher {
	return &Matcher{
		repos:  repos,
		target: target,
	}
}

// actionDefinition is the shape of action.yml the matcher depends on.
// Only composite actions (runs.using == "composite") are expanded.
type actionDefinition struct {
	Runs struct {
		Using string `yaml:"using"`
		Steps []struct {
			Uses string `yaml:"uses"`
		} `yaml:"steps"`
	} `yaml:"runs"`
}

// Match reports whether uses reaches the target. It never returns an error:
// fetch failures other than 404 are logged and treated as a non-match, so a
// broken action degrades scan completeness instead of aborting the scan.
func (m *Matcher) Match(ctx context.Context, logE *logrus.Entry, uses string) bool {
	return m.match(ctx, logE, uses, 0, map[string]struct{}{})
}

func (m *Matcher) match(ctx context.Context, logE *logrus.Entry, uses string, depth int, visited map[string]struct{}) bool {
	if uses == m.target || strings.HasPrefix(uses, m.target+"@") {
		return true
	}
	if strings.HasPrefix(uses, "docker://") {
		// Docker image actions are never expanded.
		return false
	}
	if !strings.Contains(uses, "/") || strings.HasPrefix(uses, "./") || strings.HasPrefix(uses, "../") {
		// Local actions live in the scanned repository and aren't fetched.
		return false
	}
	if depth >= maxCompositeDepth {
		logE.WithFields(logrus.Fields{
			"uses":  uses,
			"depth": depth,
		}).Warn("composite action expansion depth exceeded")
		return false
	}
	ownerRepo := splitOwnerRepo(uses)
	if ownerRepo == "" {
		return false
	}
	if _, ok := visited[ownerRepo]; ok {
		logE.WithField("action", ownerRepo).Warn("composite action cycle detected")
		return false
	}
	visited[ownerRepo] = struct{}{}
	defer delete(visited, ownerRepo)

	owner, repo, _ := strings.Cut(ownerRepo, "/")
	def, found, err := m.fetchActionDefinition(ctx, owner, repo)
	if err != nil {
		logerr.WithError(logE, err).WithField("action", ownerRepo).Warn("fetch an action definition")
		return false
	}
	if !found || def.Runs.Using != "composite" {
		return false
	}
	for _, step := range def.Runs.Steps {
		if step.Uses == "" {
			continue
		}
		if m.match(ctx, logE, step.Uses, depth+1, visited) {
			return true
		}
	}
	return false
}

// fetchActionDefinition fetches action.yml, then action.yaml, from the
// repository root. Both missing means the reference isn't a composite
// action, which is not an error.
func (m *Matcher) fetchActionDefinition(ctx context.Context, owner, repo string) (*actionDefinition, bool, error) {
	for _, name := range []string{"action.yml", "action.yaml"} {
		file, _, _, err := m.repos.GetContents(ctx, owner, repo, name, nil)
		if err != nil {
			if github.IsNotFound(err) {
				continue
			}
			return nil, false, err
		}
		if file == nil {
			continue
		}
		content, err := file.GetContent()
		if err != nil {
			return nil, false, err
		}
		def := &actionDefinition{}
		if err := yaml.Unmarshal([]byte(content), def); err != nil {
			// Malformed YAML is treated as "not a composite action".
			return &actionDefinition{}, true, nil
		}
		return def, true, nil
	}
	return nil, false, nil
}

// splitOwnerRepo extracts the owner/repo portion of a remote reference,
// dropping any @ref suffix and any subpath.
func splitOwnerRepo(uses string) string {
	ref := uses
	if i := strings.Index(ref, "@"); i >= 0 {
		ref = ref[:i]
	}
	parts := strings.Split(ref, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	return parts[0] + "/" + parts[1]
}

// isRemoteRef reports whether uses points at a marketplace action hosted in
// another repository, as opposed to a local path or a Docker image.
func isRemoteRef(uses string) bool {
	if uses == "" || strings.HasPrefix(uses, "docker://") {
		return false
	}
	if strings.HasPrefix(uses, "./") || strings.HasPrefix(uses, "../") {
		return false
	}
	return strings.Contains(uses, "/")
}
