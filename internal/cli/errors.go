package cli

import (
	"errors"
	"os/exec"

	"github.com/hbjs97/devboot/internal/bootstrap"
	"github.com/hbjs97/devboot/internal/config"
	"github.com/hbjs97/devboot/internal/setup"
)

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	// ErrStepFailed는 부트스트랩 단계가 실패했을 때의 sentinel error다.
	ErrStepFailed = bootstrap.ErrStepFailed
	// ErrUnknownStep은 --skip에 없는 단계가 주어졌을 때의 sentinel error다.
	ErrUnknownStep = bootstrap.ErrUnknownStep
	// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
	ErrConfig = config.ErrConfig
	// ErrExists는 init 대상 설정 파일이 이미 있을 때의 sentinel error다.
	ErrExists = setup.ErrExists
	// ErrToolMissing은 외부 도구 실행 파일을 찾지 못했을 때의 sentinel error다.
	ErrToolMissing = exec.ErrNotFound
)

// ErrDiagnosis는 doctor 진단에 실패 항목이 있을 때의 sentinel error다.
var ErrDiagnosis = errors.New("diagnosis failed")
