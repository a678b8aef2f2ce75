// Package setup writes the devboot.toml a project checks in next to its
// devcontainer definition, either from the built-in template or from answers
// collected through an interactive form.
package setup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hbjs97/devboot/internal/config"
)

// ErrExists는 설정 파일이 이미 있고 --force가 없을 때의 sentinel error다.
var ErrExists = errors.New("config file already exists")

// Runner는 devboot init의 진입점이다.
type Runner struct {
	CfgPath     string
	Force       bool
	Interactive bool
	FormRunner  FormRunner
	Out         io.Writer
}

// Run은 설정 파일을 생성한다. 생성했으면 true를 반환한다.
func (r *Runner) Run() (bool, error) {
	out := r.Out
	if out == nil {
		out = io.Discard
	}

	if _, err := os.Stat(r.CfgPath); err == nil && !r.Force {
		if !r.Interactive {
			return false, fmt.Errorf("setup.Run: %w: %s (--force로 덮어쓰기)", ErrExists, r.CfgPath)
		}
		ok, err := r.FormRunner.RunConfirm(fmt.Sprintf("%s 파일을 덮어쓰시겠습니까?", r.CfgPath))
		if err != nil {
			return false, err
		}
		if !ok {
			fmt.Fprintln(out, "init이 취소되었습니다.")
			return false, nil
		}
	}

	if !r.Interactive {
		if err := os.MkdirAll(filepath.Dir(r.CfgPath), 0755); err != nil {
			return false, fmt.Errorf("setup.Run: 디렉토리 생성 실패: %w", err)
		}
		if err := os.WriteFile(r.CfgPath, []byte(config.Template), 0644); err != nil {
			return false, fmt.Errorf("setup.Run: 설정 파일 생성 실패: %w", err)
		}
		fmt.Fprintf(out, "설정 파일이 생성되었습니다: %s\n", r.CfgPath)
		return true, nil
	}

	cfg, err := r.collect()
	if err != nil {
		return false, err
	}
	if err := cfg.Validate(); err != nil {
		return false, fmt.Errorf("setup.Run: %w", err)
	}
	if err := config.Save(r.CfgPath, cfg); err != nil {
		return false, err
	}
	fmt.Fprintf(out, "설정 파일이 저장되었습니다: %s\n", r.CfgPath)
	return true, nil
}

func (r *Runner) collect() (*config.Config, error) {
	cfg := config.Default()

	shellName, err := r.FormRunner.RunShellSelect(KnownShells, cfg.Shell.Name)
	if err != nil {
		return nil, err
	}

	defaults := &InitInput{
		User:         cfg.User,
		Shell:        shellName,
		ThemeSource:  ".devcontainer/devboot.zsh-theme",
		AliasName:    "pr",
		AliasCommand: "poetry run",
	}
	input, err := r.FormRunner.RunInitForm(defaults)
	if err != nil {
		return nil, err
	}

	plugins, err := r.FormRunner.RunPluginsSelect(KnownPlugins, []string{"poetry-plugin-export"})
	if err != nil {
		return nil, err
	}

	cfg.User = input.User
	cfg.Shell.Name = shellName
	cfg.Shell.Profile = config.DefaultProfile(shellName)
	cfg.Theme.Source = input.ThemeSource
	cfg.Packages.Plugins = plugins
	cfg.Packages.InstallArgs = input.InstallArgs
	if input.AliasName != "" {
		if input.AliasCommand == "" {
			return nil, fmt.Errorf("setup: alias %s의 명령이 비어 있습니다", input.AliasName)
		}
		cfg.Aliases = []config.Alias{{Name: input.AliasName, Command: input.AliasCommand}}
	}
	return cfg, nil
}
