package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/gotypist-stats/internal/model"
	"github.com/verte-zerg/gotypist-stats/internal/stats"
)

const statsLines = `{"text":"hello world","started_at":"2021-03-01T10:00:00.5+02:00","finished_at":"2021-03-01T10:00:30.5+02:00","errors":2,"typos":[{"expected":"o","actual":"p"},{"expected":"w","actual":"q"}],"mode":1,"seconds":30,"cps":0.36,"wpm":4.3,"version":1}
{"text":"future","started_at":"2021-03-03T10:00:00Z","finished_at":"2021-03-03T10:00:10Z","errors":1,"typos":[],"mode":0,"seconds":10,"cps":0.6,"wpm":7.2,"version":2}
`

func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("HOME", dir)
	for _, key := range []string{"GOTYPIST_STATS_FILE", "GOTYPIST_STATS_DB", "GOTYPIST_STATS_COLOR"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeStats(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "typist.stats")
	require.NoError(t, os.WriteFile(path, []byte(statsLines), 0o644))
	return path
}

func TestReportFromStatsFile(t *testing.T) {
	dir := isolateEnv(t)
	path := writeStats(t, dir)

	out, err := execute(t, "--stats-file", path, "--color", "never")
	require.NoError(t, err)
	for _, title := range []string{stats.HitmapTitle, stats.TrainingTimeTitle, stats.TypoRecordTitle, stats.CommonTyposTitle, stats.SpeedProgressTitle} {
		assert.Contains(t, out, "🟄 "+title+" 🟄")
	}
	assert.Contains(t, out, "| Total training time: | 30 seconds |")
	assert.Contains(t, out, "| mode          | slow")
	assert.Contains(t, out, "p instead of o")
	assert.Contains(t, out, "Mar 2021")
	assert.NotContains(t, out, "future")
	assert.True(t, strings.HasPrefix(out, "\n🟄 "+stats.HitmapTitle))
}

func TestReportWithoutRecords(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "empty.stats")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	out, err := execute(t, "--stats-file", path, "--color", "never")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, stats.NoDataContent))
}

func TestReportMissingStatsFile(t *testing.T) {
	dir := isolateEnv(t)
	_, err := execute(t, "--stats-file", filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestImportThenReportFromDB(t *testing.T) {
	dir := isolateEnv(t)
	path := writeStats(t, dir)
	db := filepath.Join(dir, "archive.db")

	out, err := execute(t, "import", "--stats-file", path, "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "Imported 1 new sessions (1 archived)\n", out)

	out, err = execute(t, "import", "--stats-file", path, "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "Imported 0 new sessions (1 archived)\n", out)

	out, err = execute(t, "--from-db", "--db", db, "--stats-file", filepath.Join(dir, "missing"), "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "| was typing    | hello world")
}

func TestConfigFileAndEnvPrecedence(t *testing.T) {
	dir := isolateEnv(t)
	path := writeStats(t, dir)
	cfgPath := filepath.Join(dir, "config", "gotypist-stats", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o755))
	content := "[stats]\nfile = " + `"` + filepath.Join(dir, "missing") + `"` + "\ncolor = \"sometimes\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	_, err := execute(t)
	assert.ErrorContains(t, err, "--color must be one of")

	t.Setenv("GOTYPIST_STATS_COLOR", "never")
	_, err = execute(t)
	assert.Error(t, err)

	t.Setenv("GOTYPIST_STATS_FILE", path)
	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "30 seconds")

	out, err = execute(t, "--stats-file", filepath.Join(dir, "missing"))
	assert.Error(t, err)
	assert.Empty(t, out)
}

func TestValidateConfig(t *testing.T) {
	valid := model.ReportConfig{StatsFile: "stats", DBPath: "db", Color: model.ColorAuto}
	assert.NoError(t, validateConfig(valid))

	bad := valid
	bad.Color = "blue"
	assert.Error(t, validateConfig(bad))

	bad = valid
	bad.StatsFile = ""
	assert.Error(t, validateConfig(bad))

	bad = valid
	bad.FromDB = true
	bad.StatsFile = ""
	assert.NoError(t, validateConfig(bad))
	bad.DBPath = ""
	assert.Error(t, validateConfig(bad))
}
