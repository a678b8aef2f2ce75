// Package pkgmgr drives the project's package manager: plugin installation,
// persistent settings, locking and dependency installation.
package pkgmgr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/shlex"
	"github.com/hbjs97/devboot/internal/cmdexec"
)

// ErrCommand는 패키지 매니저 명령이 실패했을 때의 sentinel error다.
var ErrCommand = errors.New("package manager command failed")

// Manager는 패키지 매니저 동작을 추상화한다.
type Manager interface {
	Name() string
	Version(ctx context.Context) (string, error)
	AddPlugin(ctx context.Context, plugin string) error
	SetConfig(ctx context.Context, key, value string) error
	Lock(ctx context.Context) error
	Install(ctx context.Context) error
}

// Poetry는 poetry CLI 기반 Manager 구현이다.
type Poetry struct {
	Commander cmdexec.Commander
	// ProjectDir가 비어있지 않으면 lock/install에 --directory로 전달된다.
	ProjectDir string
	// InstallArgs는 poetry install에 덧붙일 인자다.
	InstallArgs []string
	// Env는 모든 poetry 호출에 추가되는 환경변수다.
	Env map[string]string
}

var _ Manager = (*Poetry)(nil)

// NewPoetry는 installArgs 문자열을 셸 규칙으로 분리해 Poetry를 생성한다.
func NewPoetry(cmd cmdexec.Commander, projectDir, installArgs string) (*Poetry, error) {
	args, err := shlex.Split(installArgs)
	if err != nil {
		return nil, fmt.Errorf("pkgmgr.NewPoetry: install_args: %w", err)
	}
	return &Poetry{Commander: cmd, ProjectDir: projectDir, InstallArgs: args}, nil
}

// Name은 "poetry"를 반환한다.
func (p *Poetry) Name() string { return "poetry" }

// Version은 poetry --version 출력을 반환한다.
func (p *Poetry) Version(ctx context.Context) (string, error) {
	out, err := p.run(ctx, "--version")
	return strings.TrimSpace(string(out)), err
}

// AddPlugin은 poetry self add로 플러그인을 설치한다.
func (p *Poetry) AddPlugin(ctx context.Context, plugin string) error {
	_, err := p.run(ctx, "self", "add", plugin)
	return err
}

// SetConfig는 poetry config로 전역 설정을 저장한다.
func (p *Poetry) SetConfig(ctx context.Context, key, value string) error {
	_, err := p.run(ctx, "config", key, value)
	return err
}

// Lock은 선언된 의존성으로 lock 파일을 갱신한다.
func (p *Poetry) Lock(ctx context.Context) error {
	_, err := p.run(ctx, p.withDir("lock")...)
	return err
}

// Install은 lock 파일 기준으로 의존성을 설치한다.
func (p *Poetry) Install(ctx context.Context) error {
	args := p.withDir("install")
	args = append(args, p.InstallArgs...)
	_, err := p.run(ctx, args...)
	return err
}

func (p *Poetry) withDir(sub string) []string {
	if p.ProjectDir == "" {
		return []string{sub}
	}
	return []string{sub, "--directory", p.ProjectDir}
}

func (p *Poetry) run(ctx context.Context, args ...string) ([]byte, error) {
	out, err := p.Commander.RunWithEnv(ctx, p.Env, "poetry", args...)
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return out, fmt.Errorf("pkgmgr: %s: %w: %w", cmdexec.CommandLine("poetry", args...), ErrCommand, err)
		}
		return out, fmt.Errorf("pkgmgr: %s: %w: %w\n%s", cmdexec.CommandLine("poetry", args...), ErrCommand, err, msg)
	}
	return out, nil
}
