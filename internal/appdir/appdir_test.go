package appdir

import (
	"path/filepath"
	"testing"
)

func TestPaths(t *testing.T) {
	if got := DirPath(""); got != Dir {
		t.Errorf("DirPath(\"\") = %q, want %q", got, Dir)
	}
	root := filepath.Join("home", "me", "project")
	if got, want := DirPath(root), filepath.Join(root, ".todolist"); got != want {
		t.Errorf("DirPath = %q, want %q", got, want)
	}
	if got, want := SQLitePath(DirPath(root)), filepath.Join(root, ".todolist", "todolist.db"); got != want {
		t.Errorf("SQLitePath = %q, want %q", got, want)
	}
	if got, want := UserDir("/home/me"), filepath.Join("/home/me", ".todolist"); got != want {
		t.Errorf("UserDir = %q, want %q", got, want)
	}
}
