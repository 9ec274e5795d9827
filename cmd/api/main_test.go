package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCatalogCommand_List(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog version")
	assert.Contains(t, out, "proceed_rate")
	assert.Contains(t, out, "funnel")
}

func TestCatalogCommand_Describe(t *testing.T) {
	out, err := run(t, "catalog", "hires")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: hires")

	_, err = run(t, "catalog", "fill_rate")
	assert.Error(t, err)
}

func TestServe_RequiresCredentials(t *testing.T) {
	t.Setenv("RECRUITEE_COMPANY_ID", "")
	t.Setenv("RECRUITEE_API_TOKEN", "")

	_, err := run(t, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recruitee.company_id is required")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}
