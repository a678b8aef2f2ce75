package cli

import (
	"github.com/hbjs97/devboot/internal/setup"
	"github.com/spf13/cobra"
)

func (a *App) newInitCmd() *cobra.Command {
	var force bool
	var interactive bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "devboot.toml 설정 파일을 생성한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive && a.FormRunner == nil {
				a.FormRunner = &setup.HuhFormRunner{}
			}
			r := &setup.Runner{
				CfgPath:     a.CfgPath,
				Force:       force,
				Interactive: interactive,
				FormRunner:  a.FormRunner,
				Out:         cmd.OutOrStdout(),
			}
			_, err := r.Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "기존 설정 파일 덮어쓰기")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "대화형으로 값 입력")
	return cmd
}
