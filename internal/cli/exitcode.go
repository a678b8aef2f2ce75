package cli

import (
	"errors"
)

// ExitCode는 devboot의 종료 코드다.
type ExitCode int

const (
	// ExitSuccess는 정상 종료다.
	ExitSuccess ExitCode = 0
	// ExitGeneral는 일반 에러다.
	ExitGeneral ExitCode = 1
	// ExitStepFailed는 부트스트랩 단계 실패다.
	ExitStepFailed ExitCode = 2
	// ExitConfigError는 설정 파일 오류다.
	ExitConfigError ExitCode = 3
	// ExitToolMissing은 외부 도구(poetry 등)를 찾지 못한 경우다.
	ExitToolMissing ExitCode = 4
	// ExitDiagnosis는 doctor 진단 실패다.
	ExitDiagnosis ExitCode = 5
)

// MapExitCode는 sentinel error를 기반으로 적절한 종료 코드를 반환한다.
// 도구 누락은 단계 실패보다 먼저 판정한다.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, ErrToolMissing):
		return ExitToolMissing
	case errors.Is(err, ErrConfig), errors.Is(err, ErrUnknownStep), errors.Is(err, ErrExists):
		return ExitConfigError
	case errors.Is(err, ErrStepFailed):
		return ExitStepFailed
	case errors.Is(err, ErrDiagnosis):
		return ExitDiagnosis
	default:
		return ExitGeneral
	}
}
