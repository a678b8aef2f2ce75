package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
var ErrConfig = errors.New("config error")

// SupportedManagers는 packages.manager에 허용되는 값이다.
var SupportedManagers = []string{"poetry"}

var aliasNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// Config는 devboot.toml의 최상위 구조체다.
type Config struct {
	Version  int      `toml:"version"`
	User     string   `toml:"user"`
	History  History  `toml:"history"`
	Shell    Shell    `toml:"shell"`
	Aliases  []Alias  `toml:"aliases"`
	Theme    Theme    `toml:"theme"`
	Packages Packages `toml:"packages"`
}

// History는 셸 히스토리 영속화 설정이다.
type History struct {
	Dir           string `toml:"dir"`
	File          string `toml:"file"`
	PromptCommand string `toml:"prompt_command"`
}

// Shell은 대체 셸과 프로필 파일 경로다.
type Shell struct {
	// Name은 터미널 세션에서 전환할 셸 이름이다 (예: "zsh").
	Name string `toml:"name"`
	// BashProfile은 히스토리 export와 셸 전환 스니펫이 추가되는 파일이다.
	BashProfile string `toml:"bash_profile"`
	// Profile은 alias와 테마 설정이 들어가는 대체 셸의 프로필이다.
	Profile string `toml:"profile"`
}

// Alias는 프로필에 추가되는 명령 alias 하나다.
type Alias struct {
	Name    string `toml:"name"`
	Command string `toml:"command"`
}

// Theme은 커스텀 프롬프트 테마 설정이다.
type Theme struct {
	Source string `toml:"source"`
	Dir    string `toml:"dir"`
	Key    string `toml:"key"`
}

// Packages는 패키지 매니저 설정이다.
type Packages struct {
	Manager     string            `toml:"manager"`
	Plugins     []string          `toml:"plugins"`
	Settings    map[string]string `toml:"settings"`
	// Env는 패키지 매니저 명령마다 추가로 전달되는 환경변수다.
	Env         map[string]string `toml:"env"`
	InstallArgs string            `toml:"install_args"`
	ProjectDir  string            `toml:"project_dir"`
}

// HistFile은 히스토리 파일의 전체 경로다.
func (h History) HistFile() string {
	return filepath.Join(h.Dir, h.File)
}

// SortedSettings는 Settings 키를 정렬된 순서로 반환한다.
// 실행 순서를 재현 가능하게 유지하기 위해 사용한다.
func (p Packages) SortedSettings() []string {
	keys := make([]string, 0, len(p.Settings))
	for k := range p.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Default는 기본값이 채워진 Config를 반환한다.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load는 devboot.toml을 파싱하여 Config를 반환한다.
// 알 수 없는 키가 있으면 오타로 간주하고 에러를 반환한다.
func Load(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w: %w", ErrConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("config.Load: %w: 알 수 없는 키: %s", ErrConfig, strings.Join(keys, ", "))
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	cfg.ExpandHome(home)
	return &cfg, nil
}

// Save는 Config를 TOML로 path에 기록한다.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".devboot-*.toml")
	if err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		return fmt.Errorf("config.Save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return nil
}

// ExpandHome은 "~/"로 시작하는 경로를 home 기준으로 확장한다.
func (c *Config) ExpandHome(home string) {
	for _, p := range []*string{
		&c.History.Dir,
		&c.Shell.BashProfile,
		&c.Shell.Profile,
		&c.Theme.Source,
		&c.Theme.Dir,
		&c.Packages.ProjectDir,
	} {
		*p = expandPath(*p, home)
	}
}

func expandPath(p, home string) string {
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:])
	}
	return p
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.User == "" {
		c.User = "vscode"
	}
	if c.History.Dir == "" {
		c.History.Dir = "/commandhistory"
	}
	if c.History.File == "" {
		c.History.File = ".bash_history"
	}
	if c.History.PromptCommand == "" {
		c.History.PromptCommand = "history -a"
	}
	if c.Shell.Name == "" {
		c.Shell.Name = "zsh"
	}
	if c.Shell.BashProfile == "" {
		c.Shell.BashProfile = "~/.bashrc"
	}
	if c.Shell.Profile == "" {
		c.Shell.Profile = DefaultProfile(c.Shell.Name)
	}
	if c.Theme.Dir == "" {
		c.Theme.Dir = "~/.oh-my-zsh/custom/themes"
	}
	if c.Theme.Key == "" {
		c.Theme.Key = "ZSH_THEME"
	}
	if c.Packages.Manager == "" {
		c.Packages.Manager = "poetry"
	}
	if c.Packages.Settings == nil {
		c.Packages.Settings = map[string]string{"virtualenvs.in-project": "true"}
	}
}

// DefaultProfile은 셸별 기본 프로필 경로다.
func DefaultProfile(shellName string) string {
	if shellName == "fish" {
		return "~/.config/fish/config.fish"
	}
	return "~/." + shellName + "rc"
}

// Validate는 기본값이 적용된 Config의 값을 검사한다. 오류는 ErrConfig를 감싼다.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("config.Load: %w: 지원하지 않는 version: %d", ErrConfig, c.Version)
	}
	if strings.ContainsAny(c.User, " /:") {
		return fmt.Errorf("config.Load: %w: user 형식이 올바르지 않습니다: %q", ErrConfig, c.User)
	}
	// bash 프로필에 exec bash가 추가되면 대화형 bash가 끝없이 자기 자신을 exec한다.
	if c.Shell.Name == "bash" || c.Shell.Name == "sh" {
		return fmt.Errorf("config.Load: %w: shell.name은 bash 이외의 셸이어야 합니다: %q", ErrConfig, c.Shell.Name)
	}
	if strings.ContainsAny(c.Shell.Name, " /") {
		return fmt.Errorf("config.Load: %w: shell.name 형식이 올바르지 않습니다: %q", ErrConfig, c.Shell.Name)
	}
	if strings.Contains(c.History.File, "/") {
		return fmt.Errorf("config.Load: %w: history.file은 파일 이름이어야 합니다: %q", ErrConfig, c.History.File)
	}
	if c.Theme.Source == "" {
		return fmt.Errorf("config.Load: %w: theme.source 필수", ErrConfig)
	}
	if !supportedManager(c.Packages.Manager) {
		return fmt.Errorf("config.Load: %w: 지원하지 않는 packages.manager: %s", ErrConfig, c.Packages.Manager)
	}
	seen := make(map[string]bool, len(c.Aliases))
	for i, a := range c.Aliases {
		if !aliasNameRegex.MatchString(a.Name) {
			return fmt.Errorf("config.Load: %w: aliases[%d].name 형식이 올바르지 않습니다: %q", ErrConfig, i, a.Name)
		}
		if a.Command == "" {
			return fmt.Errorf("config.Load: %w: aliases[%d].command 필수", ErrConfig, i)
		}
		if seen[a.Name] {
			return fmt.Errorf("config.Load: %w: 중복된 alias: %s", ErrConfig, a.Name)
		}
		seen[a.Name] = true
	}
	return nil
}

func supportedManager(name string) bool {
	for _, m := range SupportedManagers {
		if m == name {
			return true
		}
	}
	return false
}
