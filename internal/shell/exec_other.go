//go:build !unix

package shell

import "errors"

func execProcess(string, []string, []string) error {
	return errors.New("process replacement is not supported on this platform")
}
