// Package bootstrap runs the fixed, ordered list of environment setup steps.
// Steps run once each, in order; the first failure stops the sequence and
// nothing already done is rolled back.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

var (
	// ErrStepFailed는 단계 실행이 실패했을 때의 sentinel error다.
	ErrStepFailed = errors.New("bootstrap step failed")
	// ErrUnknownStep은 --skip에 존재하지 않는 단계 이름이 주어졌을 때의 sentinel error다.
	ErrUnknownStep = errors.New("unknown bootstrap step")
)

// Step은 부트스트랩 단계 하나다.
type Step interface {
	Name() string
	Run(ctx context.Context) error
}

// StepFunc는 함수를 Step으로 감싼다.
type StepFunc struct {
	StepName string
	Fn       func(ctx context.Context) error
}

// Name은 단계 이름을 반환한다.
func (s StepFunc) Name() string { return s.StepName }

// Run은 Fn을 실행한다.
func (s StepFunc) Run(ctx context.Context) error { return s.Fn(ctx) }

// Sequence는 Steps를 순서대로 실행한다.
type Sequence struct {
	Steps []Step
	Skip  map[string]bool
	Out   io.Writer
}

// Names는 단계 이름을 실행 순서대로 반환한다.
func (s *Sequence) Names() []string {
	names := make([]string, 0, len(s.Steps))
	for _, st := range s.Steps {
		names = append(names, st.Name())
	}
	return names
}

// SetSkip은 건너뛸 단계를 지정한다. 없는 이름이 있으면 ErrUnknownStep을 반환한다.
func (s *Sequence) SetSkip(names []string) error {
	known := make(map[string]bool, len(s.Steps))
	for _, n := range s.Names() {
		known[n] = true
	}
	var unknown []string
	skip := make(map[string]bool, len(names))
	for _, n := range names {
		if !known[n] {
			unknown = append(unknown, n)
			continue
		}
		skip[n] = true
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("bootstrap.SetSkip: %w: %s (가능한 값: %s)",
			ErrUnknownStep, strings.Join(unknown, ", "), strings.Join(s.Names(), ", "))
	}
	s.Skip = skip
	return nil
}

// Run은 단계를 순서대로 실행하고 첫 실패에서 중단한다.
func (s *Sequence) Run(ctx context.Context) error {
	out := s.Out
	if out == nil {
		out = io.Discard
	}
	total := len(s.Steps)
	for i, st := range s.Steps {
		if s.Skip[st.Name()] {
			fmt.Fprintf(out, "[%d/%d] %s: 건너뜀\n", i+1, total, st.Name())
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("bootstrap: %s: %w: %w", st.Name(), ErrStepFailed, err)
		}
		fmt.Fprintf(out, "[%d/%d] %s\n", i+1, total, st.Name())
		if err := st.Run(ctx); err != nil {
			return fmt.Errorf("bootstrap: %s: %w: %w", st.Name(), ErrStepFailed, err)
		}
	}
	return nil
}
