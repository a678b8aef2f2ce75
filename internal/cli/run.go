package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/hbjs97/devboot/internal/bootstrap"
	"github.com/hbjs97/devboot/internal/config"
	"github.com/hbjs97/devboot/internal/pkgmgr"
	"github.com/hbjs97/devboot/internal/shell"
	"github.com/spf13/cobra"
)

func (a *App) newRunCmd() *cobra.Command {
	var skip []string
	var execShell bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "부트스트랩 단계를 순서대로 실행한다",
		Long: fmt.Sprintf("단계: %s, %s, %s, %s, %s, %s\n첫 실패에서 중단하며 롤백하지 않는다.",
			bootstrap.StepHistoryEnv, bootstrap.StepHistoryStore, bootstrap.StepShellSwitch,
			bootstrap.StepAlias, bootstrap.StepTheme, bootstrap.StepPackages),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.runBootstrap(cmd, skip)
			if err != nil {
				return err
			}
			if execShell {
				return a.switchShell(cmd.ErrOrStderr(), cfg.Shell.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "건너뛸 단계 이름 (반복 또는 콤마 구분)")
	cmd.Flags().BoolVar(&execShell, "exec-shell", false, "완료 후 터미널이면 대체 셸로 전환")
	return cmd
}

func (a *App) runBootstrap(cmd *cobra.Command, skip []string) (*config.Config, error) {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(a.CfgPath)
	if err != nil {
		return nil, err
	}

	m, err := a.manager(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	seq := bootstrap.Build(cfg, bootstrap.Deps{
		Manager:     m,
		LookupOwner: a.LookupOwner,
		Out:         out,
	})
	if err := seq.SetSkip(skip); err != nil {
		return nil, err
	}
	if err := seq.Run(cmd.Context()); err != nil {
		return nil, err
	}

	fmt.Fprintln(out, "부트스트랩이 완료되었습니다.")
	return cfg, nil
}

// switchShell은 터미널이 아니면 경고만 출력하고 성공으로 처리한다.
func (a *App) switchShell(stderr io.Writer, name string) error {
	err := a.switcher().Reexec(name)
	if errors.Is(err, shell.ErrNotTerminal) {
		fmt.Fprintf(stderr, "터미널이 아니므로 %s 전환을 건너뜁니다\n", name)
		return nil
	}
	return err
}

func (a *App) manager(cfg *config.Config, w io.Writer) (*pkgmgr.Poetry, error) {
	m, err := pkgmgr.NewPoetry(a.commander(w), cfg.Packages.ProjectDir, cfg.Packages.InstallArgs)
	if err != nil {
		return nil, fmt.Errorf("cli: %w: %w", ErrConfig, err)
	}
	m.Env = cfg.Packages.Env
	return m, nil
}
