// Package rcfile edits shell profile files in place so that repeated runs
// leave them unchanged: appends are keyed by a marker comment and assignments
// are rewritten rather than added twice.
package rcfile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// MarkerPrefix는 devboot가 추가한 블록을 식별하는 주석 접두사다.
const MarkerPrefix = "# devboot: "

// Marker는 name에 해당하는 마커 줄을 반환한다.
func Marker(name string) string {
	return MarkerPrefix + name
}

// HasBlock은 path에 name 마커가 있는지 확인한다. 파일이 없으면 false다.
func HasBlock(path, name string) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("rcfile.HasBlock: %w", err)
	}
	return containsLine(data, Marker(name)), nil
}

// EnsureBlock은 name 마커가 없을 때만 마커와 body를 path 끝에 추가한다.
// 추가했으면 true를 반환한다.
func EnsureBlock(path, name, body string) (bool, error) {
	found, err := HasBlock(path, name)
	if err != nil {
		return false, err
	}
	if found {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("rcfile.EnsureBlock: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("rcfile.EnsureBlock: %w", err)
	}
	defer f.Close()

	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	if _, err := fmt.Fprintf(f, "\n%s\n%s", Marker(name), body); err != nil {
		return false, fmt.Errorf("rcfile.EnsureBlock: %w", err)
	}
	return true, nil
}

// Assignment는 path에서 마지막 KEY=value 줄의 값을 따옴표를 벗겨 반환한다.
func Assignment(path, key string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("rcfile.Assignment: %w", err)
	}

	re := assignmentRegex(key)
	var value string
	var found bool
	for _, l := range lines(data) {
		m := re.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		value = strings.Trim(strings.TrimSpace(m[1]), `"'`)
		found = true
	}
	return value, found, nil
}

// SetAssignment는 KEY= 로 시작하는 모든 줄을 KEY="value"로 바꾼다.
// 해당 줄이 없으면 끝에 추가한다. 파일 권한은 유지된다.
func SetAssignment(path, key, value string) error {
	line := fmt.Sprintf("%s=%q", key, value)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("rcfile.SetAssignment: %w", err)
		}
		if err := os.WriteFile(path, []byte(line+"\n"), 0644); err != nil {
			return fmt.Errorf("rcfile.SetAssignment: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("rcfile.SetAssignment: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("rcfile.SetAssignment: %w", err)
	}

	re := assignmentRegex(key)
	parts := strings.SplitAfter(string(data), "\n")
	replaced := false
	for i, l := range parts {
		body := strings.TrimSuffix(l, "\n")
		if !re.MatchString(body) {
			continue
		}
		indent := body[:len(body)-len(strings.TrimLeft(body, " \t"))]
		parts[i] = indent + line + l[len(body):]
		replaced = true
	}
	out := strings.Join(parts, "")
	if !replaced {
		if out != "" && !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		out += line + "\n"
	}
	if out == string(data) {
		return nil
	}

	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return fmt.Errorf("rcfile.SetAssignment: %w", err)
	}
	return nil
}

func assignmentRegex(key string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*` + regexp.QuoteMeta(key) + `=(.*)$`)
}

// lines는 줄 길이 제한 없이 data를 줄 단위로 나눈다. 프로필에는 수십 KiB짜리
// export 줄이 들어 있을 수 있다.
func lines(data []byte) []string {
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func containsLine(data []byte, line string) bool {
	for _, l := range lines(data) {
		if strings.TrimSpace(l) == line {
			return true
		}
	}
	return false
}
