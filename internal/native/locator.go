package native

import (
	"os"
	"path/filepath"
	"runtime"
)

// LibraryName returns the platform file name of the systemapi library.
func LibraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "systemapi.dll"
	case "darwin":
		return "libsystemapi.dylib"
	default:
		return "libsystemapi.so"
	}
}

// Locator resolves the on-disk location of the systemapi library across
// deployment layouts. Packaged locations are tried before the
// development tree so a stale dev build never shadows a release artifact.
type Locator struct {
	// OverrideDir, when set, is tried before all conventional locations.
	OverrideDir string

	// ExeDir is the directory of the running executable.
	ExeDir string

	// DevDir is the native library's own build output directory,
	// relative to the working directory of a development run.
	DevDir string
}

// NewLocator builds a locator anchored at the running executable.
func NewLocator(overrideDir, devDir string) (Locator, error) {
	exe, err := os.Executable()
	if err != nil {
		return Locator{}, err
	}
	return Locator{
		OverrideDir: overrideDir,
		ExeDir:      filepath.Dir(exe),
		DevDir:      devDir,
	}, nil
}

// Candidates returns the ordered absolute paths that will be probed.
func (l Locator) Candidates() []string {
	name := LibraryName()

	var dirs []string
	if l.OverrideDir != "" {
		dirs = append(dirs, l.OverrideDir)
	}
	if l.ExeDir != "" {
		dirs = append(dirs, l.ExeDir, resourcesDir(l.ExeDir))
	}
	if l.DevDir != "" {
		dirs = append(dirs, l.DevDir)
	}

	paths := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		p := filepath.Join(dir, name)
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		paths = append(paths, p)
	}
	return paths
}

// Locate returns the first candidate that exists on disk, or
// ErrLibraryNotFound when none do. The result is stable for a given
// filesystem state; callers re-run it only for an explicit reload.
func (l Locator) Locate() (string, error) {
	for _, p := range l.Candidates() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", ErrLibraryNotFound
}

// resourcesDir is the platform-conventional resources directory adjacent
// to the executable: app bundle Resources on darwin, a resources folder
// next to the binary elsewhere.
func resourcesDir(exeDir string) string {
	if runtime.GOOS == "darwin" {
		return filepath.Join(exeDir, "..", "Resources")
	}
	return filepath.Join(exeDir, "resources")
}
