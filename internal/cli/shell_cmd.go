package cli

import (
	"github.com/hbjs97/devboot/internal/config"
	"github.com/spf13/cobra"
)

func (a *App) newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell [name]",
		Short: "터미널에 연결된 경우에만 대체 셸로 전환한다",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.switchShell(cmd.ErrOrStderr(), a.shellName(args))
		},
	}
}

// shellName은 인자, 설정 파일, 기본값 순으로 셸 이름을 정한다.
func (a *App) shellName(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	if cfg, err := config.Load(a.CfgPath); err == nil {
		return cfg.Shell.Name
	}
	return config.Default().Shell.Name
}
