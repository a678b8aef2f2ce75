package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hbjs97/devboot/internal/config"
	"github.com/hbjs97/devboot/internal/history"
	"github.com/hbjs97/devboot/internal/pkgmgr"
	"github.com/hbjs97/devboot/internal/rcfile"
	"github.com/hbjs97/devboot/internal/shell"
	"github.com/hbjs97/devboot/internal/theme"
)

// 단계 이름. 실행 순서와 같다.
const (
	StepHistoryEnv   = "history-env"
	StepHistoryStore = "history-store"
	StepShellSwitch  = "shell-switch"
	StepAlias        = "alias"
	StepTheme        = "theme"
	StepPackages     = "packages"
)

// ErrSelfSwitch는 bash 프로필에서 bash로 전환하도록 설정됐을 때의 sentinel error다.
// 그대로 두면 대화형 bash가 시작될 때마다 자기 자신을 exec한다.
var ErrSelfSwitch = errors.New("shell switch target is the profile's own shell")

// HistoryBlock은 히스토리 export 블록의 마커 이름이다.
const HistoryBlock = "history"

// SwitchBlock은 셸 전환 스니펫의 마커 이름이다.
func SwitchBlock(target string) string { return "switch " + target }

// AliasBlock은 alias 블록의 마커 이름이다.
func AliasBlock(name string) string { return "alias " + name }

// Deps는 단계들이 사용하는 외부 의존성이다.
type Deps struct {
	Manager     pkgmgr.Manager
	LookupOwner func(name string) (history.Owner, error)
	Out         io.Writer
}

// Build는 cfg로부터 부트스트랩 Sequence를 생성한다.
func Build(cfg *config.Config, deps Deps) *Sequence {
	if deps.LookupOwner == nil {
		deps.LookupOwner = history.LookupOwner
	}
	out := deps.Out
	if out == nil {
		out = io.Discard
	}
	vars := history.Env(cfg.History.PromptCommand, cfg.History.HistFile())

	return &Sequence{
		Out: out,
		Steps: []Step{
			StepFunc{StepHistoryEnv, func(ctx context.Context) error {
				if err := history.Apply(vars); err != nil {
					return err
				}
				_, err := rcfile.EnsureBlock(cfg.Shell.BashProfile, HistoryBlock, shell.Exports(vars))
				return err
			}},
			StepFunc{StepHistoryStore, func(ctx context.Context) error {
				owner, err := deps.LookupOwner(cfg.User)
				if err != nil {
					return err
				}
				return history.EnsureStore(cfg.History.Dir, cfg.History.HistFile(), owner)
			}},
			StepFunc{StepShellSwitch, func(ctx context.Context) error {
				if cfg.Shell.Name == "bash" {
					return fmt.Errorf("bootstrap: %w", ErrSelfSwitch)
				}
				_, err := rcfile.EnsureBlock(cfg.Shell.BashProfile, SwitchBlock(cfg.Shell.Name), shell.SwitchSnippet(cfg.Shell.Name))
				return err
			}},
			StepFunc{StepAlias, func(ctx context.Context) error {
				for _, a := range cfg.Aliases {
					added, err := rcfile.EnsureBlock(cfg.Shell.Profile, AliasBlock(a.Name), shell.AliasLine(cfg.Shell.Name, a.Name, a.Command))
					if err != nil {
						return err
					}
					if !added {
						fmt.Fprintf(out, "  alias %s: 이미 정의됨\n", a.Name)
					}
				}
				return nil
			}},
			StepFunc{StepTheme, func(ctx context.Context) error {
				name, err := theme.Install(cfg.Theme.Source, cfg.Theme.Dir)
				if err != nil {
					return err
				}
				if err := theme.Select(cfg.Shell.Profile, cfg.Theme.Key, name); err != nil {
					return err
				}
				fmt.Fprintf(out, "  %s=%q\n", cfg.Theme.Key, name)
				return nil
			}},
			StepFunc{StepPackages, func(ctx context.Context) error {
				return installPackages(ctx, deps.Manager, cfg.Packages)
			}},
		},
	}
}

func installPackages(ctx context.Context, m pkgmgr.Manager, p config.Packages) error {
	if m == nil {
		return fmt.Errorf("bootstrap.installPackages: 패키지 매니저가 설정되지 않았습니다")
	}
	for _, plugin := range p.Plugins {
		if err := m.AddPlugin(ctx, plugin); err != nil {
			return err
		}
	}
	for _, key := range p.SortedSettings() {
		if err := m.SetConfig(ctx, key, p.Settings[key]); err != nil {
			return err
		}
	}
	if err := m.Lock(ctx); err != nil {
		return err
	}
	return m.Install(ctx)
}
