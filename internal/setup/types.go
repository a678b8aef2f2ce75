package setup

// InitInput은 대화형 init에서 사용자가 입력하는 값이다.
type InitInput struct {
	User         string
	Shell        string
	ThemeSource  string
	AliasName    string
	AliasCommand string
	InstallArgs  string
}

// KnownShells는 셸 선택지에 표시되는 셸 목록이다.
// 전환 스니펫이 bash 프로필에 들어가므로 bash는 대상이 될 수 없다.
var KnownShells = []string{"zsh", "fish"}

// KnownPlugins는 플러그인 선택지에 표시되는 poetry 플러그인 목록이다.
var KnownPlugins = []string{"poetry-plugin-export", "poetry-dotenv-plugin", "poetry-plugin-up"}

// FormRunner는 TUI 폼 실행을 추상화하는 interface다.
// 프로덕션에서는 huh 기반 구현, 테스트에서는 mock을 사용한다.
type FormRunner interface {
	// RunInitForm은 사용자/테마/alias 입력 폼을 실행한다. defaults 값이 미리 채워진다.
	RunInitForm(defaults *InitInput) (*InitInput, error)

	// RunShellSelect는 대체 셸 선택 UI를 표시한다.
	RunShellSelect(shells []string, current string) (string, error)

	// RunPluginsSelect는 설치할 플러그인 체크리스트를 표시한다.
	RunPluginsSelect(known []string, selected []string) ([]string, error)

	// RunConfirm은 확인 프롬프트를 표시한다.
	RunConfirm(message string) (bool, error)
}
