package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todolist configuration file
# Values can be overridden by TODOLIST_* environment variables or CLI flags

# Where tasks are stored: file, sqlite, redis or memory
store_backend = "file"

# Directory for the file backend (relative to the working directory)
data_dir = ".todolist"

# Key the task list is saved under
storage_key = "TASKS"

# Database file for the sqlite backend (default: <data_dir>/todolist.db)
# sqlite_path = ".todolist/todolist.db"

# Redis backend
redis_addr = "localhost:6379"
# redis_password = ""
redis_db = 0
redis_prefix = "todolist:"

# Filter shown when the list opens: all, active or completed
default_filter = "all"

# Command run after each saved change; receives <action> <task-id> <key>
# and the task as JSON on stdin. The line is split on whitespace without
# shell quoting, so wrap anything fancier in a script.
# hook_command = "/path/to/hook.sh"

# Log directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.todolist/logs"

# Logging
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
