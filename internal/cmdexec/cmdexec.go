// Package cmdexec abstracts external command execution for testability.
// Production code uses the Commander interface; tests inject FakeCommander from testutil.
package cmdexec

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Commander abstracts external command execution.
type Commander interface {
	// Run executes an external command and returns its combined output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// RunWithEnv executes an external command with additional environment variables
	// merged on top of the current process environment.
	RunWithEnv(ctx context.Context, env map[string]string, name string, args ...string) ([]byte, error)
}

// RealCommander executes actual external commands via os/exec.
type RealCommander struct{}

// Run executes the command using os/exec.CommandContext.
func (c *RealCommander) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// RunWithEnv executes the command with additional environment variables.
func (c *RealCommander) RunWithEnv(ctx context.Context, env map[string]string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), mapToEnvSlice(env)...)
	return cmd.CombinedOutput()
}

// EchoCommander는 실행 전에 명령줄을 Out에 출력한 뒤 Next에 위임한다.
// --verbose 플래그에서 사용된다.
type EchoCommander struct {
	Next Commander
	Out  io.Writer
}

// Run은 명령줄을 출력하고 실행한다.
func (c *EchoCommander) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	fmt.Fprintf(c.Out, "$ %s\n", CommandLine(name, args...))
	return c.Next.Run(ctx, name, args...)
}

// RunWithEnv는 추가 환경변수와 명령줄을 출력하고 실행한다.
func (c *EchoCommander) RunWithEnv(ctx context.Context, env map[string]string, name string, args ...string) ([]byte, error) {
	prefix := strings.Join(mapToEnvSlice(env), " ")
	if prefix != "" {
		prefix += " "
	}
	fmt.Fprintf(c.Out, "$ %s%s\n", prefix, CommandLine(name, args...))
	return c.Next.RunWithEnv(ctx, env, name, args...)
}

// CommandLine은 name과 args를 공백으로 이어 붙인다.
func CommandLine(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// mapToEnvSlice converts a map of environment variables to a sorted slice of "KEY=VALUE" strings.
func mapToEnvSlice(env map[string]string) []string {
	if env == nil {
		return nil
	}
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(result)
	return result
}
