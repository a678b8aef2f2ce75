package cli

import (
	"io"
	"path/filepath"

	"github.com/hbjs97/devboot/internal/cmdexec"
	"github.com/hbjs97/devboot/internal/history"
	"github.com/hbjs97/devboot/internal/setup"
	"github.com/hbjs97/devboot/internal/shell"
	"github.com/spf13/cobra"
)

// DefaultConfigPath는 --config 기본값이다. 워크스페이스 루트 기준이다.
var DefaultConfigPath = filepath.Join(".devcontainer", "devboot.toml")

// App은 CLI 명령이 공유하는 의존성이다. 테스트에서는 fake를 주입한다.
type App struct {
	Commander   cmdexec.Commander
	CfgPath     string
	Verbose     bool
	Switcher    *shell.Switcher
	FormRunner  setup.FormRunner
	LookupOwner func(name string) (history.Owner, error)
}

// NewRootCmd는 실제 의존성으로 devboot CLI의 루트 명령을 생성한다.
func NewRootCmd() *cobra.Command {
	app := &App{
		Commander:  &cmdexec.RealCommander{},
		CfgPath:    DefaultConfigPath,
		Switcher:   shell.NewSwitcher(),
		FormRunner: &setup.HuhFormRunner{},
	}
	return app.NewRootCmd()
}

// NewRootCmd는 App에 묶인 루트 명령을 생성한다.
func (a *App) NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "devboot",
		Short:        "개발 컨테이너 부트스트랩 도구",
		SilenceUsage: true,
	}

	defaultCfg := a.CfgPath
	if defaultCfg == "" {
		defaultCfg = DefaultConfigPath
	}
	cmd.PersistentFlags().StringVar(&a.CfgPath, "config", defaultCfg, "설정 파일 경로")
	cmd.PersistentFlags().BoolVar(&a.Verbose, "verbose", false, "실행하는 외부 명령 출력")

	cmd.AddCommand(
		a.newRunCmd(),
		a.newDoctorCmd(),
		a.newInitCmd(),
		a.newShellCmd(),
	)
	return cmd
}

// commander는 --verbose일 때 명령줄을 w에 출력하는 Commander를 반환한다.
func (a *App) commander(w io.Writer) cmdexec.Commander {
	if a.Verbose {
		return &cmdexec.EchoCommander{Next: a.Commander, Out: w}
	}
	return a.Commander
}

func (a *App) switcher() *shell.Switcher {
	if a.Switcher == nil {
		a.Switcher = shell.NewSwitcher()
	}
	return a.Switcher
}
