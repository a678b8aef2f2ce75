package shell

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/mattn/go-isatty"
)

// ErrNotTerminal은 stdin/stdout이 터미널이 아니어서 셸 전환을 건너뛸 때의 sentinel error다.
var ErrNotTerminal = errors.New("not attached to a terminal")

// Switcher는 현재 프로세스를 대화형 셸로 교체한다.
type Switcher struct {
	// InFd, OutFd는 터미널 여부를 검사할 파일 디스크립터다.
	InFd  uintptr
	OutFd uintptr

	IsTerminal func(fd uintptr) bool
	LookPath   func(file string) (string, error)
	Exec       func(argv0 string, argv []string, envv []string) error
}

// NewSwitcher는 os.Stdin/os.Stdout 기준의 Switcher를 생성한다.
func NewSwitcher() *Switcher {
	return &Switcher{
		InFd:       os.Stdin.Fd(),
		OutFd:      os.Stdout.Fd(),
		IsTerminal: IsTerminal,
		LookPath:   exec.LookPath,
		Exec:       execProcess,
	}
}

// IsTerminal은 fd가 터미널(또는 Cygwin/MSYS pty)인지 확인한다.
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Interactive는 stdin과 stdout이 모두 터미널인지 확인한다.
func (s *Switcher) Interactive() bool {
	return s.IsTerminal(s.InFd) && s.IsTerminal(s.OutFd)
}

// Reexec은 터미널에 연결된 경우 name 셸로 프로세스를 교체한다.
// 성공하면 반환하지 않는다. 터미널이 아니면 즉시 ErrNotTerminal을 반환한다.
func (s *Switcher) Reexec(name string) error {
	if !s.Interactive() {
		return fmt.Errorf("shell.Reexec: %w", ErrNotTerminal)
	}
	path, err := s.LookPath(name)
	if err != nil {
		return fmt.Errorf("shell.Reexec: %w", err)
	}
	if err := s.Exec(path, []string{name, "-l"}, os.Environ()); err != nil {
		return fmt.Errorf("shell.Reexec: %s: %w", path, err)
	}
	return nil
}
