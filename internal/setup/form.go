package setup

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/huh"
)

// HuhFormRunner는 charmbracelet/huh 기반의 FormRunner 구현이다.
type HuhFormRunner struct{}

var _ FormRunner = (*HuhFormRunner)(nil)

var aliasNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// RunInitForm은 init 입력 폼을 실행한다.
func (h *HuhFormRunner) RunInitForm(defaults *InitInput) (*InitInput, error) {
	input := &InitInput{}
	if defaults != nil {
		*input = *defaults
	}

	aliasValidate := func(s string) error {
		if s == "" {
			return nil
		}
		if !aliasNameRegex.MatchString(s) {
			return fmt.Errorf("영문, 숫자, _, ., -만 사용 가능합니다")
		}
		return nil
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("컨테이너 사용자").Value(&input.User).Validate(huh.ValidateNotEmpty()),
			huh.NewInput().Title("테마 파일").
				Description("워크스페이스 기준 .zsh-theme 경로").
				Value(&input.ThemeSource).
				Validate(huh.ValidateNotEmpty()),
		),
		huh.NewGroup(
			huh.NewInput().Title("alias 이름").Description("비워두면 alias를 만들지 않습니다").
				Value(&input.AliasName).Validate(aliasValidate),
			huh.NewInput().Title("alias 명령").Value(&input.AliasCommand),
			huh.NewInput().Title("poetry install 추가 인자").Value(&input.InstallArgs),
		),
	)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("setup.RunInitForm: %w", err)
	}
	return input, nil
}

// RunShellSelect는 셸 선택 UI를 표시한다.
func (h *HuhFormRunner) RunShellSelect(shells []string, current string) (string, error) {
	selected := current
	options := make([]huh.Option[string], len(shells))
	for i, s := range shells {
		options[i] = huh.NewOption(s, s)
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("터미널에서 전환할 셸을 선택하세요").
			Options(options...).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("setup.RunShellSelect: %w", err)
	}
	return selected, nil
}

// RunPluginsSelect는 플러그인 체크리스트를 표시한다.
func (h *HuhFormRunner) RunPluginsSelect(known []string, selected []string) ([]string, error) {
	chosen := make(map[string]bool, len(selected))
	for _, s := range selected {
		chosen[s] = true
	}
	opts := make([]huh.Option[string], len(known))
	for i, k := range known {
		opts[i] = huh.NewOption(k, k).Selected(chosen[k])
	}

	var result []string
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("설치할 poetry 플러그인").
			Options(opts...).
			Value(&result),
	))
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("setup.RunPluginsSelect: %w", err)
	}
	return result, nil
}

// RunConfirm은 확인 프롬프트를 표시한다.
func (h *HuhFormRunner) RunConfirm(message string) (bool, error) {
	var confirm bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(message).Value(&confirm),
	))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("setup.RunConfirm: %w", err)
	}
	return confirm, nil
}
