package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/devboot/internal/bootstrap"
	"github.com/hbjs97/devboot/internal/cmdexec"
	"github.com/hbjs97/devboot/internal/config"
	"github.com/hbjs97/devboot/internal/history"
	"github.com/hbjs97/devboot/internal/pkgmgr"
	"github.com/hbjs97/devboot/internal/rcfile"
	"github.com/hbjs97/devboot/internal/theme"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// Failed는 results 중 StatusFail이 있는지 확인한다.
func Failed(results []DiagResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

// CheckBinaries는 bash와 대체 셸 존재 여부를 확인한다.
func CheckBinaries(ctx context.Context, cmd cmdexec.Commander, shellName string) []DiagResult {
	binaries := []struct {
		name    string
		install string
	}{
		{"bash", "apt-get install bash"},
		{shellName, fmt.Sprintf("apt-get install %s", shellName)},
	}

	var results []DiagResult
	for _, b := range binaries {
		out, err := cmd.Run(ctx, b.name, "--version")
		if err != nil {
			results = append(results, DiagResult{
				Name:    b.name,
				Status:  StatusFail,
				Message: fmt.Sprintf("%s 없음", b.name),
				Fix:     fmt.Sprintf("설치: %s", b.install),
			})
			continue
		}
		results = append(results, DiagResult{
			Name:    b.name,
			Status:  StatusOK,
			Message: firstLine(string(out)),
		})
	}
	return results
}

// CheckManager는 패키지 매니저가 실행 가능한지 m.Version으로 확인한다.
func CheckManager(ctx context.Context, m pkgmgr.Manager) DiagResult {
	res := DiagResult{Name: m.Name()}
	version, err := m.Version(ctx)
	if err != nil {
		res.Status = StatusFail
		res.Message = fmt.Sprintf("%s 실행 실패", m.Name())
		res.Fix = fmt.Sprintf("설치: pipx install %s", m.Name())
		return res
	}
	res.Status = StatusOK
	res.Message = firstLine(version)
	return res
}

// CheckHistoryStore는 히스토리 파일이 존재하고 지정 사용자 소유인지 확인한다.
func CheckHistoryStore(cfg *config.Config, lookup func(string) (history.Owner, error)) DiagResult {
	res := DiagResult{Name: "history_store"}
	path := cfg.History.HistFile()

	owner, err := lookup(cfg.User)
	if err != nil {
		res.Status = StatusFail
		res.Message = fmt.Sprintf("사용자 %s 조회 실패: %v", cfg.User, err)
		res.Fix = fmt.Sprintf("useradd %s", cfg.User)
		return res
	}
	for _, p := range []string{cfg.History.Dir, path} {
		owned, err := history.OwnedBy(p, owner)
		if err != nil {
			res.Status = StatusFail
			res.Message = fmt.Sprintf("%s 없음", p)
			res.Fix = "devboot run 실행"
			return res
		}
		if !owned {
			res.Status = StatusFail
			res.Message = fmt.Sprintf("%s 소유자가 %s가 아님", p, cfg.User)
			res.Fix = fmt.Sprintf("chown %s %s", cfg.User, p)
			return res
		}
	}
	res.Status = StatusOK
	res.Message = fmt.Sprintf("%s (%s 소유)", path, cfg.User)
	return res
}

// CheckBlock은 profile에 devboot 블록이 있는지 확인한다.
func CheckBlock(name, profile, block string) DiagResult {
	found, err := rcfile.HasBlock(profile, block)
	if err != nil {
		return DiagResult{Name: name, Status: StatusFail, Message: err.Error()}
	}
	if !found {
		return DiagResult{
			Name:    name,
			Status:  StatusFail,
			Message: fmt.Sprintf("%s에 %q 블록 없음", profile, block),
			Fix:     "devboot run 실행",
		}
	}
	return DiagResult{Name: name, Status: StatusOK, Message: fmt.Sprintf("%s 설정됨", block)}
}

// CheckTheme은 테마 파일이 설치되어 있고 profile이 그 테마를 선택하는지 확인한다.
func CheckTheme(cfg *config.Config) DiagResult {
	want := theme.Name(cfg.Theme.Source)
	res := DiagResult{Name: "theme"}

	if _, err := os.Stat(filepath.Join(cfg.Theme.Dir, want+theme.Ext)); err != nil {
		res.Status = StatusFail
		res.Message = fmt.Sprintf("테마 파일 %s 없음", want+theme.Ext)
		res.Fix = "devboot run --skip packages 실행"
		return res
	}

	got, found, err := theme.Selected(cfg.Shell.Profile, cfg.Theme.Key)
	switch {
	case err != nil:
		res.Status = StatusFail
		res.Message = err.Error()
	case !found:
		res.Status = StatusFail
		res.Message = fmt.Sprintf("%s에 %s 설정 없음", cfg.Shell.Profile, cfg.Theme.Key)
		res.Fix = "devboot run 실행"
	case got != want:
		res.Status = StatusWarn
		res.Message = fmt.Sprintf("%s=%q (기대값 %q)", cfg.Theme.Key, got, want)
		res.Fix = "devboot run 실행"
	default:
		res.Status = StatusOK
		res.Message = fmt.Sprintf("%s=%q", cfg.Theme.Key, got)
	}
	return res
}

// CheckEnv는 현재 프로세스의 HISTFILE이 설정값과 같은지 확인한다.
// 새 셸에서만 적용되므로 불일치는 경고다.
func CheckEnv(cfg *config.Config) DiagResult {
	got := os.Getenv(history.EnvHistFile)
	want := cfg.History.HistFile()
	if got != want {
		return DiagResult{
			Name:    "env",
			Status:  StatusWarn,
			Message: fmt.Sprintf("HISTFILE=%q (기대값 %q)", got, want),
			Fix:     "새 터미널을 열거나 source " + cfg.Shell.BashProfile,
		}
	}
	return DiagResult{Name: "env", Status: StatusOK, Message: "HISTFILE=" + got}
}

// RunAll은 모든 진단을 실행한다.
func RunAll(ctx context.Context, cmd cmdexec.Commander, m pkgmgr.Manager, cfg *config.Config, lookup func(string) (history.Owner, error)) []DiagResult {
	if lookup == nil {
		lookup = history.LookupOwner
	}
	var results []DiagResult
	results = append(results, CheckBinaries(ctx, cmd, cfg.Shell.Name)...)
	results = append(results, CheckManager(ctx, m))
	results = append(results, CheckHistoryStore(cfg, lookup))
	results = append(results, CheckBlock("history_env", cfg.Shell.BashProfile, bootstrap.HistoryBlock))
	results = append(results, CheckBlock("shell_switch", cfg.Shell.BashProfile, bootstrap.SwitchBlock(cfg.Shell.Name)))
	for _, a := range cfg.Aliases {
		results = append(results, CheckBlock("alias_"+a.Name, cfg.Shell.Profile, bootstrap.AliasBlock(a.Name)))
	}
	results = append(results, CheckTheme(cfg))
	results = append(results, CheckEnv(cfg))
	return results
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
