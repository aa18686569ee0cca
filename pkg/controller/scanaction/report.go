package scanaction

// Usage records one place a reference appeared.
type Usage struct {
	Repo     string `json:"repo"`
	Workflow string `json:"workflow"`
}

// Summary aggregates counts over the whole organization. Repository counts
// are deduplicated by repository, while total counts are per occurrence, so
// a repository with two matching workflow files counts once in
// RepositoriesWithDirectUsage and twice in TotalDirectUsages.
type Summary struct {
	TotalRepositories             int `json:"totalRepositories"`
	RepositoriesScanned           int `json:"repositoriesScanned"`
	RepositoriesWithDirectUsage   int `json:"repositoriesWithDirectUsage"`
	RepositoriesWithIndirectUsage int `json:"repositoriesWithIndirectUsage"`
	TotalDirectUsages             int `json:"totalDirectUsages"`
	TotalIndirectUsages           int `json:"totalIndirectUsages"`
}

// Errors holds the two error buckets of a scan. Access errors are
// repositories whose workflow directory couldn't be listed for a non-404
// reason. Scan errors are repositories that failed during per-repository
// processing.
type Errors struct {
	AccessErrors []string `json:"accessErrors"`
	ScanErrors   []string `json:"scanErrors"`
}

// Report is the JSON document written at the end of a scan.
type Report struct {
	Organization   string             `json:"organization"`
	Timestamp      string             `json:"timestamp"`
	TargetAction   string             `json:"targetAction"`
	Summary        Summary            `json:"summary"`
	DirectUsages   []Usage            `json:"directUsages"`
	IndirectUsages map[string][]Usage `json:"indirectUsages"`
	Errors         Errors             `json:"errors"`
}
