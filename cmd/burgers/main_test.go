package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/burgers1d/internal/config"
	"github.com/san-kum/burgers1d/internal/storage"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestRunSavesAndLists(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, execute(t, "run", "--data", dir, "--preset", "sine", "--steps", "5"))

	runs, err := storage.New(dir).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 5, runs[0].StepsTaken)
	assert.Equal(t, 16, runs[0].Points)

	require.NoError(t, execute(t, "list", "--data", dir))
	require.NoError(t, execute(t, "export", "--data", dir, runs[0].ID))
	require.NoError(t, execute(t, "export-csv", "--data", dir, runs[0].ID))
	require.NoError(t, execute(t, "export-json", "--data", dir, runs[0].ID))
	require.NoError(t, execute(t, "spectrum", "--data", dir, "--run", runs[0].ID))
}

func TestRunConfigFileAndFlagOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	cfg := config.GetPreset("diffusion")
	cfg.Name = "from-file"
	require.NoError(t, config.Save(path, cfg))

	require.NoError(t, execute(t, "run", "--data", dir, "--config", path, "--nu", "0.02", "--steps", "3"))

	runs, err := storage.New(dir).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "from-file", runs[0].Name)
	assert.Equal(t, 0.02, runs[0].Nu)
	assert.Equal(t, 64, runs[0].Points)
}

func TestRunRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, execute(t, "run", "--data", dir, "--preset", "nope"))
	assert.Error(t, execute(t, "run", "--data", dir, "--points", "2", "--no-save"))
	assert.Error(t, execute(t, "run", "--data", dir, "--integrator", "verlet", "--no-save"))
	assert.Error(t, execute(t, "export", "--data", dir, "missing"))
	assert.Error(t, execute(t, "run", "--data", dir, "--profile", "gpu", "--no-save"))
}

func TestStudyCommands(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, execute(t, "presets"))
	require.NoError(t, execute(t, "compare", "--data", dir, "--steps", "5", "euler", "ssprk3", "rk4", "leapfrog"))
	require.NoError(t, execute(t, "converge", "--points-list", "16,32,64"))
	require.NoError(t, execute(t, "converge", "--temporal", "--time", "0.02", "--points", "32"))
	require.NoError(t, execute(t, "stability", "--preset", "sine", "--dt-list", "0.001,10"))
	require.NoError(t, execute(t, "spectrum", "--preset", "sine", "--steps", "5"))
	require.NoError(t, execute(t, "spectrum", "--preset", "sine", "--steps", "5", "--normalize"))
	assert.Error(t, execute(t, "spectrum", "--initial", "constant", "--steps", "1", "--normalize"))
	require.NoError(t, execute(t, "bench", "--points-list", "64", "--steps", "2", "--workers", "2"))
}

func TestScenarioCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	body := "name: quick\nsteps:\n  - preset: sine\n    save: true\n    params:\n      steps: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	require.NoError(t, execute(t, "scenario", "--data", dir, path))

	runs, err := storage.New(dir).List()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
