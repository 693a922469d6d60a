package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/internal/errors"
	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/scrollsync"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GRIDSYNC_CONFIG", "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestRunSimulation(t *testing.T) {
	coord := scrollsync.New(scrollsync.WithGroup("simulate-test"))
	defer coord.Close()

	var out bytes.Buffer
	sim := simulation{Grids: 3, Columns: 3, Items: 50, Steps: 4, Stride: 1}
	require.NoError(t, runSimulation(&out, coord, sim, slog.New(slog.NewTextHandler(io.Discard, nil))))

	s := out.String()
	assert.Contains(t, s, "grid-0 at (18,0)")
	assert.Contains(t, s, "scroll_to grid-2   (18,0) -> (18,0)")
	assert.Contains(t, s, "grid-1 shrinks to 3 items")
	assert.Contains(t, s, "scroll_to grid-1   (2,0) -> (2,0)")
	assert.Contains(t, s, "grid-0   (0,0) (50 items)")
	assert.Contains(t, s, "leader   (0,0)")

	assert.Equal(t, 0, coord.Registrations())
}

func TestSimulateCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "simulate", "--grids", "2", "--steps", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "grid-0 scrolls")
	assert.NotContains(t, out, "grid-2")
}

func TestSimulateRejectsBadInput(t *testing.T) {
	isolate(t)

	_, err := execute(t, "simulate", "--grids", "1")
	require.Error(t, err)
	assert.Equal(t, "E141", errors.CodeOf(err))

	_, err = execute(t, "simulate", "--steps", "0")
	assert.Equal(t, "E141", errors.CodeOf(err))
}

func TestInvalidLogLevelFlag(t *testing.T) {
	isolate(t)

	_, err := execute(t, "simulate", "--log-level", "loud")
	require.Error(t, err)
	assert.Equal(t, "E101", errors.CodeOf(err))
}

func TestDemoNeedsTerminal(t *testing.T) {
	isolate(t)
	if isTerminal(os.Stdout) {
		t.Skip("stdout is a terminal")
	}

	_, err := execute(t, "demo")
	require.Error(t, err)
	assert.Equal(t, "E140", errors.CodeOf(err))
}
