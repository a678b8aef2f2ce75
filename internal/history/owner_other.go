//go:build !unix

package history

import (
	"fmt"
	"os"
)

// OwnedBy는 소유권 개념이 없는 플랫폼에서 존재 여부만 확인한다.
func OwnedBy(path string, _ Owner) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, fmt.Errorf("history.OwnedBy: %w", err)
	}
	return true, nil
}
