package report_test

import (
	"testing"

	"github.com/orgkit/orgkit/pkg/report"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteJSON(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	w := report.NewWriter(fs, "out/reports")
	p, err := w.WriteJSON("repos.json", map[string]int{"total": 3})
	require.NoError(t, err)
	assert.Equal(t, "out/reports/repos.json", p)
	data, err := afero.ReadFile(fs, p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total": 3}`, string(data))
}

func TestWriter_WriteCSV(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	w := report.NewWriter(fs, "out")
	p, err := w.WriteCSV("repos.csv", []string{"name", "archived"}, [][]string{
		{"app", "false"},
		{"with,comma", "true"},
	})
	require.NoError(t, err)
	data, err := afero.ReadFile(fs, p)
	require.NoError(t, err)
	assert.Equal(t, "name,archived\napp,false\n\"with,comma\",true\n", string(data))
}

func TestWriter_FileName(t *testing.T) {
	t.Parallel()
	w := report.NewWriter(afero.NewMemMapFs(), "out")
	name := w.FileName("dependabot-alerts", "json")
	assert.Regexp(t, `^dependabot-alerts-\d{8}-\d{6}\.json$`, name)
}

func TestWriter_WriteJSON_createsDirectory(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	w := report.NewWriter(fs, "deeply/nested/dir")
	_, err := w.WriteJSON("r.json", []string{})
	require.NoError(t, err)
	ok, err := afero.DirExists(fs, "deeply/nested/dir")
	require.NoError(t, err)
	assert.True(t, ok)
}
