package setup

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/devboot/internal/config"
	"github.com/hbjs97/devboot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFormRunner는 테스트용 FormRunner다.
type mockFormRunner struct {
	input     *InitInput
	inputErr  error
	shell     string
	plugins   []string
	confirm   bool
	confirmed int
	defaults  *InitInput
}

func (m *mockFormRunner) RunInitForm(defaults *InitInput) (*InitInput, error) {
	m.defaults = defaults
	if m.inputErr != nil {
		return nil, m.inputErr
	}
	return m.input, nil
}

func (m *mockFormRunner) RunShellSelect(shells []string, current string) (string, error) {
	if m.shell == "" {
		return current, nil
	}
	return m.shell, nil
}

func (m *mockFormRunner) RunPluginsSelect(known []string, selected []string) ([]string, error) {
	if m.plugins == nil {
		return selected, nil
	}
	return m.plugins, nil
}

func (m *mockFormRunner) RunConfirm(message string) (bool, error) {
	m.confirmed++
	return m.confirm, nil
}

func TestRun_WritesTemplate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), ".devcontainer", "devboot.toml")
	buf := new(bytes.Buffer)

	r := &Runner{CfgPath: cfgPath, Out: buf}
	created, err := r.Run()
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, config.Template, testutil.ReadFile(t, cfgPath))
	assert.Contains(t, buf.String(), cfgPath)

	_, err = config.Load(cfgPath)
	require.NoError(t, err)
}

func TestRun_ExistingWithoutForce(t *testing.T) {
	cfgPath := testutil.WriteFile(t, t.TempDir(), "devboot.toml", "existing")

	r := &Runner{CfgPath: cfgPath}
	_, err := r.Run()
	assert.ErrorIs(t, err, ErrExists)
	assert.Equal(t, "existing", testutil.ReadFile(t, cfgPath))
}

func TestRun_ExistingWithForce(t *testing.T) {
	cfgPath := testutil.WriteFile(t, t.TempDir(), "devboot.toml", "existing")

	r := &Runner{CfgPath: cfgPath, Force: true}
	created, err := r.Run()
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, config.Template, testutil.ReadFile(t, cfgPath))
}

func TestRun_Interactive(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfgPath := filepath.Join(t.TempDir(), "devboot.toml")

	form := &mockFormRunner{
		shell: "fish",
		input: &InitInput{
			User:         "builder",
			ThemeSource:  "themes/mine.zsh-theme",
			AliasName:    "ll",
			AliasCommand: "ls -la",
			InstallArgs:  "--no-root",
		},
		plugins: []string{"poetry-dotenv-plugin"},
	}
	r := &Runner{CfgPath: cfgPath, Interactive: true, FormRunner: form}
	created, err := r.Run()
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "fish", form.defaults.Shell)

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "builder", cfg.User)
	assert.Equal(t, "fish", cfg.Shell.Name)
	assert.Equal(t, filepath.Join(home, ".config", "fish", "config.fish"), cfg.Shell.Profile)
	assert.Equal(t, "themes/mine.zsh-theme", cfg.Theme.Source)
	assert.Equal(t, []string{"poetry-dotenv-plugin"}, cfg.Packages.Plugins)
	assert.Equal(t, "--no-root", cfg.Packages.InstallArgs)
	assert.Equal(t, []config.Alias{{Name: "ll", Command: "ls -la"}}, cfg.Aliases)
}

func TestKnownShells_ExcludeBash(t *testing.T) {
	assert.NotContains(t, KnownShells, "bash")
}

func TestRun_InteractiveRejectsBashTarget(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "devboot.toml")

	form := &mockFormRunner{shell: "bash", input: &InitInput{User: "vscode", ThemeSource: "t.zsh-theme"}}
	r := &Runner{CfgPath: cfgPath, Interactive: true, FormRunner: form}
	_, err := r.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfig)
	_, statErr := os.Stat(cfgPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_InteractiveNoAlias(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "devboot.toml")

	form := &mockFormRunner{input: &InitInput{User: "vscode", ThemeSource: "t.zsh-theme"}}
	r := &Runner{CfgPath: cfgPath, Interactive: true, FormRunner: form}
	_, err := r.Run()
	require.NoError(t, err)

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Empty(t, cfg.Aliases)
	assert.Equal(t, "zsh", cfg.Shell.Name)
}

func TestRun_InteractiveAliasWithoutCommand(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "devboot.toml")

	form := &mockFormRunner{input: &InitInput{User: "vscode", ThemeSource: "t", AliasName: "x"}}
	r := &Runner{CfgPath: cfgPath, Interactive: true, FormRunner: form}
	_, err := r.Run()
	require.Error(t, err)
	_, statErr := os.Stat(cfgPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_InteractiveOverwriteDeclined(t *testing.T) {
	cfgPath := testutil.WriteFile(t, t.TempDir(), "devboot.toml", "existing")
	buf := new(bytes.Buffer)

	form := &mockFormRunner{confirm: false}
	r := &Runner{CfgPath: cfgPath, Interactive: true, FormRunner: form, Out: buf}
	created, err := r.Run()
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, form.confirmed)
	assert.Equal(t, "existing", testutil.ReadFile(t, cfgPath))
	assert.Contains(t, buf.String(), "취소")
}

func TestRun_InteractiveFormError(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "devboot.toml")

	form := &mockFormRunner{inputErr: fmt.Errorf("user aborted")}
	r := &Runner{CfgPath: cfgPath, Interactive: true, FormRunner: form}
	_, err := r.Run()
	assert.EqualError(t, err, "user aborted")
}
