package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// windowsVar matches a %VAR% reference.
var windowsVar = regexp.MustCompile(`%[^%]+%`)

// resolvePath expands environment variables and a leading ~ in p, then
// makes a relative result absolute against root. Empty paths stay empty.
func resolvePath(p, root string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = expandHome(expandVars(p))
	if !filepath.IsAbs(p) && root != "" {
		p = filepath.Join(root, p)
	}
	return filepath.Clean(p)
}

// expandVars replaces $VAR and ${VAR}, plus %VAR% on Windows. Unset
// %VAR% references are kept as written.
func expandVars(p string) string {
	p = os.ExpandEnv(p)
	if runtime.GOOS != "windows" {
		return p
	}
	return windowsVar.ReplaceAllStringFunc(p, func(ref string) string {
		if v, ok := os.LookupEnv(ref[1 : len(ref)-1]); ok {
			return v
		}
		return ref
	})
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !(runtime.GOOS == "windows" && strings.HasPrefix(p, `~\`)) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
