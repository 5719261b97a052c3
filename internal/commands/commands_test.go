package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxsync/internal/taxerr"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestDeclaredList(t *testing.T) {
	out, err := run(t, "declared", "--list")
	require.NoError(t, err)
	assert.Equal(t, "be\nde\nfr\nlu\n", out)
}

func TestDeclaredCountry(t *testing.T) {
	out, err := run(t, "declared", "--country", "fr")
	require.NoError(t, err)
	assert.Contains(t, out, "CLASS")
	assert.Contains(t, out, "(standard)")
	assert.Contains(t, out, "reduced-rate")
	assert.Contains(t, out, "5.5000")
	assert.Contains(t, out, "TVA")
}

func TestDeclaredDefaultCountry(t *testing.T) {
	t.Setenv("SHOP_DEFAULT_COUNTRY", "DE")
	out, err := run(t, "declared")
	require.NoError(t, err)
	assert.Contains(t, out, "19.0000")
	assert.Contains(t, out, "MwSt.")
}

func TestDeclaredMissingCountry(t *testing.T) {
	_, err := run(t, "declared", "--country", "zz")
	assert.ErrorIs(t, err, taxerr.ErrNoDeclaration)
}

func TestResolveRejectsBadRate(t *testing.T) {
	_, err := run(t, "resolve", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rate")
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--env-file", "", "declared"})
	assert.Error(t, cmd.Execute())
}
