// Package history persists interactive shell history across container rebuilds
// by pointing HISTFILE at a mounted directory owned by the container user.
package history

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"strconv"
)

const (
	// EnvPromptCommand는 프롬프트마다 실행되는 명령을 담는 환경변수다.
	EnvPromptCommand = "PROMPT_COMMAND"
	// EnvHistFile은 셸 히스토리 파일 경로 환경변수다.
	EnvHistFile = "HISTFILE"
)

// ErrUnknownUser는 소유자로 지정된 사용자를 찾을 수 없을 때의 sentinel error다.
var ErrUnknownUser = errors.New("unknown user")

// Var는 순서가 있는 환경변수 한 쌍이다.
type Var struct {
	Key   string
	Value string
}

// Env는 히스토리 영속화에 필요한 환경변수 쌍을 PROMPT_COMMAND, HISTFILE 순서로 반환한다.
func Env(promptCommand, histFile string) []Var {
	return []Var{
		{Key: EnvPromptCommand, Value: promptCommand},
		{Key: EnvHistFile, Value: histFile},
	}
}

// Apply는 vars를 현재 프로세스 환경에 설정한다.
func Apply(vars []Var) error {
	for _, v := range vars {
		if err := os.Setenv(v.Key, v.Value); err != nil {
			return fmt.Errorf("history.Apply: %s: %w", v.Key, err)
		}
	}
	return nil
}

// Owner는 chown 대상 uid/gid다.
type Owner struct {
	UID int
	GID int
}

// LookupOwner는 사용자 이름으로 uid/gid를 조회한다.
func LookupOwner(name string) (Owner, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return Owner{}, fmt.Errorf("history.LookupOwner: %w: %s: %w", ErrUnknownUser, name, err)
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return Owner{}, fmt.Errorf("history.LookupOwner: uid %q: %w", u.Uid, err)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return Owner{}, fmt.Errorf("history.LookupOwner: gid %q: %w", u.Gid, err)
	}
	return Owner{UID: uid, GID: gid}, nil
}

// EnsureStore는 히스토리 디렉토리와 파일을 만들고 둘 다 owner 소유로 바꾼다.
// 기존 파일 내용은 보존된다.
func EnsureStore(dir, histFile string, owner Owner) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("history.EnsureStore: %w", err)
	}
	f, err := os.OpenFile(histFile, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("history.EnsureStore: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("history.EnsureStore: %w", err)
	}

	for _, p := range []string{dir, histFile} {
		if err := os.Chown(p, owner.UID, owner.GID); err != nil {
			return fmt.Errorf("history.EnsureStore: %w", err)
		}
	}
	return nil
}
