package bootstrap_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/devboot/internal/bootstrap"
	"github.com/hbjs97/devboot/internal/config"
	"github.com/hbjs97/devboot/internal/history"
	"github.com/hbjs97/devboot/internal/pkgmgr"
	"github.com/hbjs97/devboot/internal/rcfile"
	"github.com/hbjs97/devboot/internal/testutil"
	"github.com/hbjs97/devboot/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	root  string
	cfg   *config.Config
	fc    *testutil.FakeCommander
	owner history.Owner
	out   *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PROMPT_COMMAND", "")
	t.Setenv("HISTFILE", "")

	name, uid, gid := testutil.CurrentUser(t)
	root := t.TempDir()
	testutil.WriteFile(t, root, "home/.zshrc", "export ZSH=\"$HOME/.oh-my-zsh\"\nZSH_THEME=\"devcontainers\"\nsource $ZSH/oh-my-zsh.sh\n")

	cfg, err := config.Load(testutil.ProjectConfig(t, root, name))
	require.NoError(t, err)

	return &fixture{
		root:  root,
		cfg:   cfg,
		fc:    testutil.NewOKCommander(),
		owner: history.Owner{UID: uid, GID: gid},
		out:   new(bytes.Buffer),
	}
}

func (f *fixture) sequence(t *testing.T) *bootstrap.Sequence {
	t.Helper()
	m, err := pkgmgr.NewPoetry(f.fc, f.cfg.Packages.ProjectDir, f.cfg.Packages.InstallArgs)
	require.NoError(t, err)
	return bootstrap.Build(f.cfg, bootstrap.Deps{Manager: m, Out: f.out})
}

func TestBuild_StepOrder(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, []string{
		bootstrap.StepHistoryEnv,
		bootstrap.StepHistoryStore,
		bootstrap.StepShellSwitch,
		bootstrap.StepAlias,
		bootstrap.StepTheme,
		bootstrap.StepPackages,
	}, f.sequence(t).Names())
}

func TestBuild_RunConfiguresEnvironment(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.sequence(t).Run(context.Background()))

	histFile := f.cfg.History.HistFile()
	assert.Equal(t, "history -a", os.Getenv("PROMPT_COMMAND"))
	assert.Equal(t, histFile, os.Getenv("HISTFILE"))

	owned, err := history.OwnedBy(histFile, f.owner)
	require.NoError(t, err)
	assert.True(t, owned)

	bashrc := testutil.ReadFile(t, f.cfg.Shell.BashProfile)
	assert.Contains(t, bashrc, "export HISTFILE='"+histFile+"'")
	assert.Contains(t, bashrc, "exec zsh")

	zshrc := testutil.ReadFile(t, f.cfg.Shell.Profile)
	assert.Contains(t, zshrc, "alias pr='poetry run'")

	selected, found, err := theme.Selected(f.cfg.Shell.Profile, "ZSH_THEME")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "devboot", selected)
	assert.FileExists(t, filepath.Join(f.cfg.Theme.Dir, "devboot.zsh-theme"))

	assert.Equal(t, []string{
		"poetry self add poetry-plugin-export",
		"poetry config virtualenvs.in-project true",
		"poetry lock",
		"poetry install --no-root --with dev",
	}, f.fc.Calls)
}

func TestBuild_HistoryExportsPrecedeShellSwitch(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sequence(t).Run(context.Background()))

	bashrc := testutil.ReadFile(t, f.cfg.Shell.BashProfile)
	histAt := bytes.Index([]byte(bashrc), []byte(rcfile.Marker(bootstrap.HistoryBlock)))
	switchAt := bytes.Index([]byte(bashrc), []byte(rcfile.Marker(bootstrap.SwitchBlock("zsh"))))
	require.GreaterOrEqual(t, histAt, 0)
	require.GreaterOrEqual(t, switchAt, 0)
	assert.Less(t, histAt, switchAt)
}

func TestBuild_SecondRunLeavesProfilesUnchanged(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sequence(t).Run(context.Background()))
	bashrc := testutil.ReadFile(t, f.cfg.Shell.BashProfile)
	zshrc := testutil.ReadFile(t, f.cfg.Shell.Profile)

	require.NoError(t, f.sequence(t).Run(context.Background()))

	assert.Equal(t, bashrc, testutil.ReadFile(t, f.cfg.Shell.BashProfile))
	assert.Equal(t, zshrc, testutil.ReadFile(t, f.cfg.Shell.Profile))
	assert.Contains(t, f.out.String(), "alias pr: 이미 정의됨")
}

func TestBuild_PackageFailureAbortsAfterEarlierSteps(t *testing.T) {
	f := newFixture(t)
	f.fc.Register("poetry lock", "Because no versions of foo match...", fmt.Errorf("exit status 1"))

	err := f.sequence(t).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, bootstrap.ErrStepFailed)
	assert.ErrorIs(t, err, pkgmgr.ErrCommand)
	assert.Contains(t, err.Error(), bootstrap.StepPackages)
	assert.False(t, f.fc.Called("poetry install"))
	assert.FileExists(t, filepath.Join(f.cfg.Theme.Dir, "devboot.zsh-theme"))
}

func TestBuild_UnknownUserFailsHistoryStore(t *testing.T) {
	f := newFixture(t)
	f.cfg.User = "devboot-no-such-user-4242"

	err := f.sequence(t).Run(context.Background())
	assert.ErrorIs(t, err, history.ErrUnknownUser)
	assert.Contains(t, err.Error(), bootstrap.StepHistoryStore)
	assert.Empty(t, f.fc.Calls)
}

func TestBuild_SkipPackages(t *testing.T) {
	f := newFixture(t)
	seq := f.sequence(t)
	require.NoError(t, seq.SetSkip([]string{bootstrap.StepPackages}))

	require.NoError(t, seq.Run(context.Background()))
	assert.Empty(t, f.fc.Calls)
}

func TestBuild_MissingThemeSource(t *testing.T) {
	f := newFixture(t)
	f.cfg.Theme.Source = filepath.Join(f.root, "missing.zsh-theme")

	err := f.sequence(t).Run(context.Background())
	assert.ErrorIs(t, err, theme.ErrNoTheme)
	assert.Empty(t, f.fc.Calls)
}

func TestBuild_NilManager(t *testing.T) {
	f := newFixture(t)
	seq := bootstrap.Build(f.cfg, bootstrap.Deps{})

	err := seq.Run(context.Background())
	assert.ErrorIs(t, err, bootstrap.ErrStepFailed)
}

func TestBuild_ShellSwitchRefusesBash(t *testing.T) {
	f := newFixture(t)
	f.cfg.Shell.Name = "bash"
	seq := f.sequence(t)
	require.NoError(t, seq.SetSkip([]string{bootstrap.StepPackages}))

	err := seq.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, bootstrap.ErrSelfSwitch)
	assert.Contains(t, err.Error(), bootstrap.StepShellSwitch)

	found, err := rcfile.HasBlock(f.cfg.Shell.BashProfile, bootstrap.SwitchBlock("bash"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.NotContains(t, testutil.ReadFile(t, f.cfg.Shell.BashProfile), "exec bash")
}
