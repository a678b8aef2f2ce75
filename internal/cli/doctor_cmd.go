package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/hbjs97/devboot/internal/config"
	"github.com/hbjs97/devboot/internal/doctor"
	"github.com/spf13/cobra"
)

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "부트스트랩 결과를 진단한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func (a *App) runDoctor(ctx context.Context, out io.Writer) error {
	commander := a.commander(out)

	cfg, err := config.Load(a.CfgPath)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] config: %v\n", err)
		fmt.Fprintln(out, "      Fix: devboot init 실행 또는 설정 파일 확인")
		// Run basic binary checks without config
		def := config.Default()
		printDiagResults(out, doctor.CheckBinaries(ctx, commander, def.Shell.Name))
		if m, merr := a.manager(def, out); merr == nil {
			printDiagResults(out, []doctor.DiagResult{doctor.CheckManager(ctx, m)})
		}
		return fmt.Errorf("cli.doctor: %w", err)
	}

	m, err := a.manager(cfg, out)
	if err != nil {
		return err
	}
	results := doctor.RunAll(ctx, commander, m, cfg, a.LookupOwner)
	printDiagResults(out, results)
	if doctor.Failed(results) {
		return fmt.Errorf("cli.doctor: %w", ErrDiagnosis)
	}
	return nil
}

// printDiagResults는 진단 결과 목록을 출력한다.
func printDiagResults(out io.Writer, results []doctor.DiagResult) {
	for _, r := range results {
		fmt.Fprintf(out, "  [%s] %s: %s\n", statusIcon(r.Status), r.Name, r.Message)
		if r.Fix != "" {
			fmt.Fprintf(out, "      Fix: %s\n", r.Fix)
		}
	}
}

func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return "OK"
	case doctor.StatusWarn:
		return "!!"
	case doctor.StatusFail:
		return "FAIL"
	default:
		return "??"
	}
}
