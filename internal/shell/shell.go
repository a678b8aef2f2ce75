package shell

import (
	"fmt"
	"strings"

	"github.com/hbjs97/devboot/internal/history"
)

// Exports는 POSIX export 스니펫을 생성한다. 히스토리 블록은 항상 bash 프로필에 들어간다.
func Exports(vars []history.Var) string {
	var b strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&b, "export %s=%s\n", v.Key, SingleQuote(v.Value))
	}
	return b.String()
}

// AliasLine은 alias 정의 한 줄을 생성한다.
func AliasLine(shellType, name, command string) string {
	switch shellType {
	case "fish":
		return fmt.Sprintf("alias %s %s\n", name, SingleQuote(command))
	default:
		return fmt.Sprintf("alias %s=%s\n", name, SingleQuote(command))
	}
}

// SwitchSnippet은 터미널에 연결된 경우에만 target 셸로 exec하는 스니펫을 반환한다.
// 파이프 입력이나 빌드 컨텍스트에서는 아무것도 하지 않는다.
func SwitchSnippet(target string) string {
	return fmt.Sprintf("if [ -t 0 ] && [ -t 1 ] && command -v %s >/dev/null 2>&1; then\n  exec %s\nfi\n",
		target, target)
}

// SingleQuote는 s를 POSIX 셸의 작은따옴표 문자열로 감싼다.
func SingleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
