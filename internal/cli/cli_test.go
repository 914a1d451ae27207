package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRoot()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	return exitErr.Code
}

func TestRunToStdout(t *testing.T) {
	stdout, _, err := execute(t, "run", filepath.Join("testdata", "divider.net"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "      Freq,    Re(Vin),    Im(Vin),   Re(Vout)"))
	assert.True(t, strings.HasPrefix(lines[1], "        Hz,          V,          V,         mV"))
	// 5 V behind 5 Ohms, 10 Ohms series into 10 Ohms, 1 MOhm shunt
	assert.True(t, strings.HasPrefix(lines[2], " 1.000e+01,  4.000e+00,  0.000e+00,  2.000e+03,"), lines[2])
	assert.True(t, strings.HasSuffix(lines[4], ","))
}

func TestRunToFileWithPlotsAndVerify(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "divider.csv")

	_, stderr, err := execute(t, "run", filepath.Join("testdata", "divider.net"), output,
		"--plot", "1,3", "--workers", "2", "--verify", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Nodal cross-check passed")

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSuffix(string(content), "\n"), "\n"), 5)

	for _, name := range []string{"divider_1.png", "divider_3.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing input", []string{"run"}, 2},
		{"too many args", []string{"run", "a", "b", "c"}, 2},
		{"plot without output", []string{"run", filepath.Join("testdata", "divider.net"), "--plot", "1"}, 2},
		{"bad workers", []string{"run", filepath.Join("testdata", "divider.net"), "--workers", "0"}, 2},
		{"unknown flag", []string{"run", "--nope"}, 2},
		{"bad log level", []string{"run", filepath.Join("testdata", "divider.net"), "--log-level", "loud"}, 2},
		{"no such file", []string{"run", filepath.Join("testdata", "absent.net")}, 1},
		{"singular", []string{"run", filepath.Join("testdata", "singular.net")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.Equal(t, tt.code, exitCode(t, err))
		})
	}
}

type unclosableFile struct {
	bytes.Buffer
}

func (f *unclosableFile) Close() error {
	return errors.New("disk full")
}

func TestRunReportsCloseError(t *testing.T) {
	file := &unclosableFile{}
	orig := createOutput
	createOutput = func(string) (io.WriteCloser, error) { return file, nil }
	t.Cleanup(func() { createOutput = orig })

	_, _, err := execute(t, "run", filepath.Join("testdata", "divider.net"), filepath.Join(t.TempDir(), "divider.csv"))
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, file.String(), "Freq")
}

func TestRunSingularLeavesHeader(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.csv")
	_, _, err := execute(t, "run", filepath.Join("testdata", "singular.net"), output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "singular component")

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSuffix(string(content), "\n"), "\n"), 2)
}

func TestRunWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cascade.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_level: info\nlog_format: json\n"), 0o644))

	_, stderr, err := execute(t, "run", filepath.Join("testdata", "divider.net"), filepath.Join(dir, "o.csv"), "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"Sweep written"`)
}

func TestInspect(t *testing.T) {
	stdout, _, err := execute(t, "inspect", filepath.Join("testdata", "divider.net"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "10.000 Ohms")
	assert.Contains(t, stdout, "1.000 MOhms")
	assert.Contains(t, stdout, "3 points")
	assert.Contains(t, stdout, "Vout")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "cascade dev"))
}
