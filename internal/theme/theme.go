// Package theme installs a custom prompt theme and selects it in the shell profile.
package theme

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/devboot/internal/rcfile"
)

// Ext는 oh-my-zsh 테마 파일 확장자다.
const Ext = ".zsh-theme"

// ErrNoTheme은 테마 원본 파일이 없을 때의 sentinel error다.
var ErrNoTheme = errors.New("theme source not found")

// Name은 테마 파일 경로에서 테마 이름을 추출한다.
func Name(src string) string {
	return strings.TrimSuffix(filepath.Base(src), Ext)
}

// Install은 src를 themesDir로 복사하고 테마 이름을 반환한다.
// 대상 파일이 이미 있으면 임시 파일을 거쳐 교체하고, src 자신이면 복사하지 않는다.
func Install(src, themesDir string) (string, error) {
	in, err := os.Open(src)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("theme.Install: %w: %s", ErrNoTheme, src)
	}
	if err != nil {
		return "", fmt.Errorf("theme.Install: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(themesDir, 0755); err != nil {
		return "", fmt.Errorf("theme.Install: %w", err)
	}

	name := Name(src)
	dst := filepath.Join(themesDir, name+Ext)
	if same, err := sameFile(in, dst); err != nil {
		return "", fmt.Errorf("theme.Install: %w", err)
	} else if same {
		return name, nil
	}

	tmp, err := os.CreateTemp(themesDir, "."+name+"-*")
	if err != nil {
		return "", fmt.Errorf("theme.Install: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return "", fmt.Errorf("theme.Install: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("theme.Install: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return "", fmt.Errorf("theme.Install: %w", err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return "", fmt.Errorf("theme.Install: %w", err)
	}
	return name, nil
}

func sameFile(src *os.File, dst string) (bool, error) {
	dstInfo, err := os.Stat(dst)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	srcInfo, err := src.Stat()
	if err != nil {
		return false, err
	}
	return os.SameFile(srcInfo, dstInfo), nil
}

// Select는 profile의 key 할당을 name으로 바꾼다.
func Select(profile, key, name string) error {
	if err := rcfile.SetAssignment(profile, key, name); err != nil {
		return fmt.Errorf("theme.Select: %w", err)
	}
	return nil
}

// Selected는 profile에서 현재 선택된 테마 이름을 반환한다.
func Selected(profile, key string) (string, bool, error) {
	return rcfile.Assignment(profile, key)
}
