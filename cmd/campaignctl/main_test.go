package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("REDIS_URL", "")
	require.NoError(t, os.Unsetenv("REDIS_URL"))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportListCheck(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "campaigns.json")
	seedFile := writeFile(t, dir, "seed.yaml", `
- name: Spring Launch
  description: Q2 push
  tasks:
    - name: Tweet
      description: Post about launch
      proof: screenshot
      pointsEarned: 10
      price: 0
- name: Summer
`)

	out, err := run(t, "--data", data, "import", seedFile)
	require.NoError(t, err, out)
	assert.Contains(t, out, "2 campaigns imported")

	out, err = run(t, "--data", data, "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Spring Launch")
	assert.Contains(t, out, "Summer")

	out, err = run(t, "--data", data, "list", "--json")
	require.NoError(t, err, out)
	assert.Contains(t, out, `"campaigns": [`)

	out, err = run(t, "--data", data, "check")
	require.NoError(t, err, out)
	assert.Contains(t, out, "2 campaigns ok")
}

func TestImportDryRunRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "campaigns.json")
	seedFile := writeFile(t, dir, "bad.json", `[{"name":"ok"},{"name":"","tasks":[{"name":"t"}]}]`)

	out, err := run(t, "--data", data, "import", "--dry-run", seedFile)
	require.Error(t, err)
	assert.Contains(t, out, "2 campaigns, 1 invalid")

	_, statErr := os.Stat(data)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCheckReportsProblems(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "campaigns.json", `{"campaigns":[
		{"id":"a","name":"one","description":"","tasks":[]},
		{"id":"a","name":"two","description":"","tasks":[]},
		{"id":"","name":"","description":"","tasks":[]}
	]}`)

	out, err := run(t, "--data", data, "check")
	require.Error(t, err)
	assert.Contains(t, out, "already used")
	assert.Contains(t, out, "missing id")
	assert.Contains(t, out, "name: is required")
}

func TestCheckCorruptFile(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "campaigns.json", `[]`)

	_, err := run(t, "--data", data, "check")
	assert.ErrorContains(t, err, "corrupt")
}

func TestImportRejectsWholeBatch(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "campaigns.json")
	existing := writeFile(t, dir, "existing.json", `{"name":"Existing"}`)
	_, err := run(t, "--data", data, "import", existing)
	require.NoError(t, err)
	before, err := os.ReadFile(data)
	require.NoError(t, err)

	batch := writeFile(t, dir, "batch.json", `[{"name":"first"},{"name":""}]`)
	out, err := run(t, "--data", data, "import", batch)
	require.Error(t, err)
	assert.NotContains(t, out, "imported")
	assert.ErrorContains(t, err, "[1].name")

	after, err := os.ReadFile(data)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))

	out, err = run(t, "--data", data, "list")
	require.NoError(t, err, out)
	assert.NotContains(t, out, "first")
}
