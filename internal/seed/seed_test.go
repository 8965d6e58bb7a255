package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const springYAML = `
name: Spring Launch
description: Q2 push
tasks:
  - name: Tweet
    description: Post about launch
    proof: screenshot
    pointsEarned: 10
    price: "0"
`

func TestDecodeYAML_Shapes(t *testing.T) {
	single, err := DecodeYAML([]byte(springYAML))
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, "Spring Launch", single[0].Name)
	require.Len(t, single[0].Tasks, 1)
	points, err := single[0].Tasks[0].PointsEarned.Float64()
	require.NoError(t, err)
	assert.Equal(t, 10.0, points)
	assert.NoError(t, single[0].Validate())

	list, err := DecodeYAML([]byte("- name: a\n- name: b\n"))
	require.NoError(t, err)
	assert.Len(t, list, 2)

	col, err := DecodeYAML([]byte("campaigns:\n  - name: a\n    tasks: []\n"))
	require.NoError(t, err)
	require.Len(t, col, 1)
	assert.Equal(t, "a", col[0].Name)

	_, err = DecodeYAML([]byte("just a string"))
	assert.Error(t, err)

	_, err = DecodeYAML([]byte(""))
	assert.Error(t, err)
}

func TestDecodeYAML_NonScalarPoints(t *testing.T) {
	_, err := DecodeYAML([]byte("name: a\ntasks:\n  - name: t\n    pointsEarned: [1, 2]\n"))
	assert.Error(t, err)
}

func TestDecodeJSON_Shapes(t *testing.T) {
	single, err := DecodeJSON([]byte(`{"name":"a","tasks":[{"name":"t","description":"d","pointsEarned":"5"}]}`))
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.NoError(t, single[0].Validate())

	list, err := DecodeJSON([]byte(`[{"name":"a"},{"name":"b"}]`))
	require.NoError(t, err)
	assert.Len(t, list, 2)

	col, err := DecodeJSON([]byte(`{"campaigns":[{"id":"x","name":"a"}]}`))
	require.NoError(t, err)
	require.Len(t, col, 1)
	assert.Equal(t, "x", col[0].ID)

	_, err = DecodeJSON([]byte(`  `))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "spring.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(springYAML), 0o644))
	got, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	txtPath := filepath.Join(dir, "spring.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte(springYAML), 0o644))
	_, err = LoadFile(txtPath)
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
