package config

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvHome overrides the directory relative runtime paths resolve against.
const EnvHome = EnvPrefix + "HOME"

// RuntimeRoot is where the logs and uploads directories live by default:
// ZENITH_HOME, then the executable's directory, then the working directory.
// Binaries built by `go run` live under the temp dir, so those fall back to
// the working directory.
func RuntimeRoot() string {
	if home := strings.TrimSpace(os.Getenv(EnvHome)); home != "" {
		return filepath.Clean(home)
	}
	if dir, ok := executableDir(); ok && !underTempDir(dir) {
		return dir
	}
	if wd, err := os.Getwd(); err == nil && wd != "" {
		return wd
	}
	return "."
}

// ResolveRuntimePath returns raw when absolute, otherwise raw (or subdir
// when raw is blank) joined onto RuntimeRoot.
func ResolveRuntimePath(raw, subdir string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = subdir
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(RuntimeRoot(), target)
}

func executableDir() (string, bool) {
	exe, err := os.Executable()
	if err != nil || exe == "" {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), true
}

func underTempDir(dir string) bool {
	rel, err := filepath.Rel(realPath(os.TempDir()), realPath(dir))
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func realPath(p string) string {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}
	return filepath.Clean(p)
}
