// Package testutil provides common test helpers for the devboot project.
package testutil

import (
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"testing"
)

// TempConfigFile creates a temporary devboot.toml with the given content
// and returns its path. The file is automatically cleaned up.
func TempConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "devboot.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("TempConfigFile: write failed: %v", err)
	}
	return path
}

// WriteFile writes content to dir/name, creating parent directories, and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("WriteFile: mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: write failed: %v", err)
	}
	return path
}

// ReadFile returns the content of path as a string.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: read failed: %v", err)
	}
	return string(data)
}

// CurrentUser returns the name, uid and gid of the user running the tests.
// Chown to this user succeeds without privileges.
func CurrentUser(t *testing.T) (name string, uid, gid int) {
	t.Helper()

	u, err := user.Current()
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	uid, err = strconv.Atoi(u.Uid)
	if err != nil {
		t.Skipf("CurrentUser: non-numeric uid %q", u.Uid)
	}
	gid, err = strconv.Atoi(u.Gid)
	if err != nil {
		t.Skipf("CurrentUser: non-numeric gid %q", u.Gid)
	}
	return u.Username, uid, gid
}

// ProjectConfig writes a complete devboot.toml whose paths all live under root
// and returns its path. A theme source file is created as well.
func ProjectConfig(t *testing.T, root, userName string) string {
	t.Helper()

	theme := WriteFile(t, root, "src/devboot.zsh-theme", "PROMPT='%~ $ '\n")
	content := `version = 1
user = "` + userName + `"

[history]
dir = "` + filepath.Join(root, "commandhistory") + `"

[shell]
bash_profile = "` + filepath.Join(root, "home", ".bashrc") + `"
profile = "` + filepath.Join(root, "home", ".zshrc") + `"

[[aliases]]
name = "pr"
command = "poetry run"

[theme]
source = "` + theme + `"
dir = "` + filepath.Join(root, "home", ".oh-my-zsh", "custom", "themes") + `"

[packages]
plugins = ["poetry-plugin-export"]
install_args = "--no-root --with dev"
`
	return WriteFile(t, root, "devboot.toml", content)
}
