package cmdexec

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCommander struct {
	calls []string
}

func (r *recordingCommander) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, CommandLine(name, args...))
	return []byte("ok"), nil
}

func (r *recordingCommander) RunWithEnv(ctx context.Context, _ map[string]string, name string, args ...string) ([]byte, error) {
	return r.Run(ctx, name, args...)
}

func TestMapToEnvSlice_Sorted(t *testing.T) {
	got := mapToEnvSlice(map[string]string{"B": "2", "A": "1"})
	assert.Equal(t, []string{"A=1", "B=2"}, got)
}

func TestMapToEnvSlice_Nil(t *testing.T) {
	assert.Nil(t, mapToEnvSlice(nil))
}

func TestCommandLine(t *testing.T) {
	assert.Equal(t, "poetry", CommandLine("poetry"))
	assert.Equal(t, "poetry lock", CommandLine("poetry", "lock"))
}

func TestEchoCommander_PrintsAndDelegates(t *testing.T) {
	next := &recordingCommander{}
	buf := new(bytes.Buffer)
	c := &EchoCommander{Next: next, Out: buf}

	out, err := c.Run(context.Background(), "poetry", "install")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))
	assert.Equal(t, "$ poetry install\n", buf.String())
	assert.Equal(t, []string{"poetry install"}, next.calls)
}

func TestEchoCommander_RunWithEnv(t *testing.T) {
	next := &recordingCommander{}
	buf := new(bytes.Buffer)
	c := &EchoCommander{Next: next, Out: buf}

	_, err := c.RunWithEnv(context.Background(), map[string]string{"HISTFILE": "/h"}, "zsh", "--version")
	require.NoError(t, err)
	assert.Equal(t, "$ HISTFILE=/h zsh --version\n", buf.String())
}

func TestRealCommander_Run(t *testing.T) {
	c := &RealCommander{}
	out, err := c.Run(context.Background(), "sh", "-c", "echo hi")
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(out))
}

func TestRealCommander_RunWithEnv(t *testing.T) {
	c := &RealCommander{}
	out, err := c.RunWithEnv(context.Background(), map[string]string{"DEVBOOT_X": "42"}, "sh", "-c", "echo $DEVBOOT_X")
	require.NoError(t, err)
	assert.Equal(t, "42\n", string(out))
}
