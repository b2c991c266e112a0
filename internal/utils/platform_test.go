package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestWindowsExecutableExtensions(t *testing.T) {
	tests := []struct {
		name     string
		pathext  string
		wantExts []string
	}{
		{name: "default PATHEXT", pathext: "", wantExts: []string{".com", ".exe", ".bat", ".cmd"}},
		{name: "custom PATHEXT", pathext: ".COM;.EXE;.PS1", wantExts: []string{".com", ".exe", ".ps1"}},
		{name: "PATHEXT without dots", pathext: "COM;EXE", wantExts: []string{".com", ".exe"}},
		{name: "spaces around entries", pathext: ".COM; .EXE ; .BAT", wantExts: []string{".com", ".exe", ".bat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PATHEXT", tt.pathext)
			got := WindowsExecutableExtensions()
			for _, ext := range tt.wantExts {
				if !got[ext] {
					t.Errorf("missing extension %q in %v", ext, got)
				}
			}
		})
	}
}

func TestLookupExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exec bit semantics differ on windows")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "hook.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatal(err)
	}
	plain := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(plain, []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("executable path", func(t *testing.T) {
		got, err := LookupExecutable(script)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != script {
			t.Errorf("got %q, want %q", got, script)
		}
	})

	t.Run("non executable path", func(t *testing.T) {
		if _, err := LookupExecutable(plain); err == nil {
			t.Error("expected error for non-executable file")
		}
	})

	t.Run("directory", func(t *testing.T) {
		if _, err := LookupExecutable(dir); err == nil {
			t.Error("expected error for directory")
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := LookupExecutable("  "); err == nil {
			t.Error("expected error for empty binary")
		}
	})

	t.Run("missing from PATH", func(t *testing.T) {
		if _, err := LookupExecutable("todolist-no-such-binary-xyz"); err == nil {
			t.Error("expected error for unknown binary")
		}
	})
}
