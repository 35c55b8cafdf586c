package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := NewApp(&stdout, &stderr)
	err := app.Run(context.Background(), append([]string{"xgx-boundary"}, args...))
	return stdout.String(), stderr.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %T: %v", err, err)
	return exitErr.Code
}

func TestRaise_PrintsOriginalAndDuplicate(t *testing.T) {
	out, logs, err := runApp(t, "raise")
	require.NoError(t, err)

	assert.Contains(t, out, "original:  Public Error: FooBar\n")
	assert.Contains(t, out, "duplicate: Public Error: FooBar\n")
	assert.Contains(t, logs, `msg="raised public failure"`)
	assert.Contains(t, logs, "variant=FredBob")
	assert.Contains(t, logs, "cause=FooBar")
	assert.Contains(t, logs, "refs=2")
	assert.Contains(t, logs, "trace_policy=inherit")
}

func TestRaise_Stack(t *testing.T) {
	out, _, err := runApp(t, "raise", "--stack")
	require.NoError(t, err)
	assert.Contains(t, out, "stack:\n")
	assert.Contains(t, out, "origin.Compute")

	out, _, err = runApp(t, "raise", "--stack", "--trace", "omit")
	require.NoError(t, err)
	assert.Contains(t, out, "stack: none\n")
}

func TestRaise_CustomFormatAndDump(t *testing.T) {
	out, _, err := runApp(t, "raise", "--format", "unavailable (%s)", "--dump")
	require.NoError(t, err)
	assert.Contains(t, out, "original:  unavailable (FooBar)\n")
	assert.Contains(t, out, "public.FredBob")
}

func TestRaise_InvalidFlags(t *testing.T) {
	_, _, err := runApp(t, "raise", "--trace", "sometimes")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, exitCode(t, err))

	_, _, err = runApp(t, "raise", "--format", "no verb")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, exitCode(t, err))
}

func TestScenarios_RunsAll(t *testing.T) {
	out, _, err := runApp(t, "scenarios")
	require.NoError(t, err)

	for _, sc := range scenarios {
		assert.Contains(t, out, "# "+sc.Name+": ")
	}
	assert.Equal(t, len(scenarios), strings.Count(out, "duplicate: Public Error: FooBar"))
}

func TestScenarios_Single(t *testing.T) {
	out, logs, err := runApp(t, "--log.format", "json", "scenarios", "--name", "plain", "--stack")
	require.NoError(t, err)

	assert.Contains(t, out, "# plain: ")
	assert.NotContains(t, out, "# traced: ")
	assert.Contains(t, out, "stack: none\n")
	assert.Contains(t, logs, `"scenario":"plain"`)
	assert.Contains(t, logs, `"trace_frames":0`)
}

func TestScenarios_Boundary(t *testing.T) {
	out, _, err := runApp(t, "scenarios", "--name", "boundary", "--stack")
	require.NoError(t, err)
	assert.Contains(t, out, "(*App).report")
}

func TestScenarios_Unknown(t *testing.T) {
	_, _, err := runApp(t, "scenarios", "--name", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, exitCode(t, err))
	assert.Contains(t, err.Error(), `unknown scenario "nope"`)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: \"api: %v\"\nlog:\n  level: warn\n"), 0o600))

	out, logs, err := runApp(t, "--config", path, "raise")
	require.NoError(t, err)
	assert.Contains(t, out, "original:  api: FooBar\n")
	assert.Empty(t, logs, "info logs are filtered at warn")
}

func TestConfigFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trace: sometimes\n"), 0o600))

	_, _, err := runApp(t, "--config", path, "raise")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, exitCode(t, err))

	_, _, err = runApp(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "raise")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, exitCode(t, err))
}

func TestLogLevelFlag(t *testing.T) {
	_, logs, err := runApp(t, "--log.level", "debug", "raise")
	require.NoError(t, err)
	assert.Contains(t, logs, `msg="configuration loaded"`)

	_, _, err = runApp(t, "--log.level", "loud", "raise")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, exitCode(t, err))
}

func TestExitError(t *testing.T) {
	inner := errors.New("boom")
	e := NewExitError(ExitConfigError, "failed", inner)
	assert.Equal(t, "failed: boom", e.Error())
	assert.ErrorIs(t, e, inner)
	assert.Equal(t, "bare", NewExitError(ExitGeneralError, "bare", nil).Error())
}
