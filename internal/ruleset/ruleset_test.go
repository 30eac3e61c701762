package ruleset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRule(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func TestLoad_RecursivelyFindsYamlAndYmlFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))

	writeRule(t, dir, "one.yaml", "name: one\npattern: foo()\n")
	writeRule(t, sub, "two.yml", "name: two\npattern: bar()\n")
	writeRule(t, dir, "ignored.txt", "not a rule")

	result, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, result.Rules, 2)

	names := []string{result.Rules[0].Name, result.Rules[1].Name}
	assert.ElementsMatch(t, []string{"one", "two"}, names)
}

func TestLoad_SkipAndReport_CollectsErrorsAndContinues(t *testing.T) {
	dir := t.TempDir()
	writeRule(t, dir, "good.yaml", "name: good\npattern: foo()\n")
	writeRule(t, dir, "bad.yaml", "name: bad\n")

	result, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, result.Rules, 1)
	assert.Equal(t, "good", result.Rules[0].Name)
	assert.Len(t, result.Errors, 1)
}

func TestLoad_FailFast_AbortsOnFirstError(t *testing.T) {
	dir := t.TempDir()
	writeRule(t, dir, "good.yaml", "name: good\npattern: foo()\n")
	writeRule(t, dir, "bad.yaml", "name: bad\n")

	_, err := Load(dir, WithPolicy(FailFast))
	require.Error(t, err)
	assert.IsType(t, &LoadError{}, err)
}

func TestLoad_EmptyDirectory_ReturnsNoRules(t *testing.T) {
	result, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, result.Rules)
}
