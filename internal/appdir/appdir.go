// Package appdir provides constants and helpers for the .todolist state directory.
package appdir

import "path/filepath"

const (
	// Dir is the name of the per-project state directory.
	Dir = ".todolist"

	// ConfigFile is the config file name, both in the project root and in the user config dir.
	ConfigFile = "todolist.toml"

	// SQLiteFile is the database file used by the sqlite store backend.
	SQLiteFile = "todolist.db"

	// LogDir is the default log directory, relative to the user's home.
	LogDir = "~/.todolist/logs"
)

// DirPath returns the state directory within workDir.
func DirPath(workDir string) string {
	if workDir == "" {
		workDir = "."
	}
	return filepath.Join(workDir, Dir)
}

// SQLitePath returns the sqlite database path within a data directory.
func SQLitePath(dataDir string) string {
	return filepath.Join(dataDir, SQLiteFile)
}

// UserDir returns the per-user state directory under home.
func UserDir(home string) string {
	return filepath.Join(home, Dir)
}
