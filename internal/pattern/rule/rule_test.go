package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ValidRule(t *testing.T) {
	yaml := []byte(`
name: suspicious-http-open
meta:
  severity: high
pattern: foo("bar")
`)
	r, err := Parse("suspicious.yml", yaml)
	require.NoError(t, err)
	assert.Equal(t, "suspicious-http-open", r.Name)
	assert.Equal(t, "high", r.Meta["severity"])
	assert.Equal(t, 1, r.Pattern.Len())
}

func TestParse_MissingPattern(t *testing.T) {
	yaml := []byte(`name: broken`)
	_, err := Parse("broken.yml", yaml)
	require.Error(t, err)
	assert.IsType(t, &MalformedRule{}, err)
}

func TestParse_MissingName(t *testing.T) {
	yaml := []byte(`pattern: foo()`)
	_, err := Parse("broken.yml", yaml)
	require.Error(t, err)
	assert.IsType(t, &MalformedRule{}, err)
}

func TestParse_DefinitionsThreadedIntoParser(t *testing.T) {
	yaml := []byte(`
name: secure-flag
pattern: foo(INTERNET_FLAG_SECURE)
definitions:
  INTERNET_FLAG_SECURE: 8388608
`)
	r, err := Parse("secure.yml", yaml)
	require.NoError(t, err)

	call := r.Pattern.Expand()[0].Calls()[0]
	assert.Equal(t, "INTERNET_FLAG_SECURE", call.Parameters[0].String())
}

func TestParse_InvalidYAML(t *testing.T) {
	yaml := []byte("name: [unterminated")
	_, err := Parse("bad.yml", yaml)
	assert.Error(t, err)
}
