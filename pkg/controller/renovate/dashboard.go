package renovate

import (
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/go-version"
)

// PendingUpdate is one actionable entry extracted from a dashboard issue
// body.
type PendingUpdate struct {
	// Section is the dashboard section the entry appeared under, such as
	// "Rate-Limited" or "Open".
	Section string `json:"section"`
	// Branch is the Renovate branch name from the checkbox marker.
	Branch string `json:"branch"`
	// Title is the human readable update description.
	Title string `json:"title"`
	// Versions lists version numbers mentioned in the entry, oldest
	// first.
	Versions []string `json:"versions,omitempty"`
}

// checkboxPattern matches Renovate's actionable checkbox lines, e.g.
//
//	- [ ] <!-- unlimit-branch=renovate/lodash-4.x -->chore(deps): update dependency lodash to v4.17.21
//
// Lines without a branch marker (such as "create all" aggregate checkboxes)
// are ignored.
var checkboxPattern = regexp.MustCompile(`^\s*-\s\[[ x]\]\s<!--[^>]*branch=([^\s>]+)[^>]*-->\s*(.*)$`)

var backtickPattern = regexp.MustCompile("`([^`]+)`")

// parseDashboard extracts pending updates from a dashboard issue body and
// reports whether the dashboard is currently rate-limited.
func parseDashboard(body string) ([]PendingUpdate, bool) {
	var updates []PendingUpdate
	rateLimited := false
	section := ""
	for _, line := range strings.Split(body, "\n") {
		if rest, ok := strings.CutPrefix(line, "## "); ok {
			section = strings.TrimSpace(rest)
			continue
		}
		matches := checkboxPattern.FindStringSubmatch(line)
		if matches == nil {
			continue
		}
		if strings.EqualFold(section, "Rate-Limited") {
			rateLimited = true
		}
		updates = append(updates, PendingUpdate{
			Section:  section,
			Branch:   matches[1],
			Title:    strings.TrimSpace(matches[2]),
			Versions: extractVersions(matches[2]),
		})
	}
	return updates, rateLimited
}

// extractVersions pulls backticked tokens that parse as versions out of an
// update title, ordered oldest first so the last element is the target.
func extractVersions(title string) []string {
	var versions version.Collection
	for _, matches := range backtickPattern.FindAllStringSubmatch(title, -1) {
		v, err := version.NewVersion(matches[1])
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	if len(versions) == 0 {
		return nil
	}
	sort.Sort(versions)
	arr := make([]string, len(versions))
	for i, v := range versions {
		arr[i] = v.Original()
	}
	return arr
}
