//go:build unix

package history

import (
	"fmt"
	"os"
	"syscall"
)

// OwnedBy는 path의 소유자가 owner와 일치하는지 확인한다.
func OwnedBy(path string, owner Owner) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("history.OwnedBy: %w", err)
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return false, fmt.Errorf("history.OwnedBy: %s: stat 정보를 읽을 수 없습니다", path)
	}
	return int(st.Uid) == owner.UID && int(st.Gid) == owner.GID, nil
}
