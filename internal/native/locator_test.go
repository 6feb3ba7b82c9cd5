package native_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systemapi/bridge/internal/native"
)

func writeLib(t *testing.T, dir string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, native.LibraryName())
	require.NoError(t, os.WriteFile(path, []byte("not a real library"), 0o644))
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	return abs
}

// resourcesDir mirrors the platform convention the locator probes.
func resourcesDir(exeDir string) string {
	if runtime.GOOS == "darwin" {
		return filepath.Join(exeDir, "..", "Resources")
	}
	return filepath.Join(exeDir, "resources")
}

func TestLocateNotFound(t *testing.T) {
	l := native.Locator{ExeDir: t.TempDir(), DevDir: t.TempDir()}

	_, err := l.Locate()
	assert.ErrorIs(t, err, native.ErrLibraryNotFound)
}

func TestLocateExeDir(t *testing.T) {
	exeDir := t.TempDir()
	want := writeLib(t, exeDir)

	l := native.Locator{ExeDir: exeDir, DevDir: t.TempDir()}

	got, err := l.Locate()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLocateResourcesDir(t *testing.T) {
	exeDir := filepath.Join(t.TempDir(), "bin")
	require.NoError(t, os.MkdirAll(exeDir, 0o755))
	want := writeLib(t, resourcesDir(exeDir))

	l := native.Locator{ExeDir: exeDir}

	got, err := l.Locate()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLocateDevDirLast(t *testing.T) {
	devDir := t.TempDir()
	want := writeLib(t, devDir)

	l := native.Locator{ExeDir: t.TempDir(), DevDir: devDir}

	got, err := l.Locate()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLocatePrecedence(t *testing.T) {
	// A packaged install must win over a development build.
	exeDir := t.TempDir()
	devDir := t.TempDir()
	wantExe := writeLib(t, exeDir)
	writeLib(t, devDir)

	l := native.Locator{ExeDir: exeDir, DevDir: devDir}

	got, err := l.Locate()
	require.NoError(t, err)
	assert.Equal(t, wantExe, got)

	// An explicit override dir wins over everything.
	overrideDir := t.TempDir()
	wantOverride := writeLib(t, overrideDir)
	l.OverrideDir = overrideDir

	got, err = l.Locate()
	require.NoError(t, err)
	assert.Equal(t, wantOverride, got)
}

func TestCandidatesOrder(t *testing.T) {
	l := native.Locator{
		OverrideDir: "/opt/custom",
		ExeDir:      "/opt/app",
		DevDir:      "../native/build/lib",
	}

	candidates := l.Candidates()
	require.Len(t, candidates, 4)
	assert.Equal(t, filepath.Join("/opt/custom", native.LibraryName()), candidates[0])
	assert.Equal(t, filepath.Join("/opt/app", native.LibraryName()), candidates[1])
	for _, p := range candidates {
		assert.True(t, filepath.IsAbs(p), "candidate %q should be absolute", p)
	}
}
