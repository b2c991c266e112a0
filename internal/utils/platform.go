package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// WindowsExecutableExtensions returns a map of lowercase Windows executable
// extensions (with leading dot), parsed from PATHEXT.
func WindowsExecutableExtensions() map[string]bool {
	exts := map[string]bool{}
	pathext := os.Getenv("PATHEXT")
	if pathext == "" {
		pathext = ".COM;.EXE;.BAT;.CMD"
	}
	for _, ext := range SplitAndTrim(pathext, ";") {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[strings.ToLower(ext)] = true
	}
	return exts
}

// IsExecutable reports whether info describes a file the current platform
// would run. On Windows the extension decides; elsewhere any exec bit does.
func IsExecutable(path string, info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		ext := strings.ToLower(filepath.Ext(path))
		return ext != "" && WindowsExecutableExtensions()[ext]
	}
	return info.Mode().Perm()&0111 != 0
}

// LookupExecutable resolves binary either as a path or through PATH and
// returns the resolved location.
func LookupExecutable(binary string) (string, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return "", fmt.Errorf("no binary configured")
	}

	if info, err := os.Stat(binary); err == nil {
		if info.IsDir() {
			return "", fmt.Errorf("%s is a directory", binary)
		}
		if !IsExecutable(binary, info) {
			return "", fmt.Errorf("%s is not executable", binary)
		}
		return binary, nil
	}

	resolved, err := exec.LookPath(binary)
	if err != nil {
		return "", err
	}
	return resolved, nil
}
