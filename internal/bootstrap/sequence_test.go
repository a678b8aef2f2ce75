package bootstrap_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/hbjs97/devboot/internal/bootstrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recorder(calls *[]string, name string, err error) bootstrap.Step {
	return bootstrap.StepFunc{StepName: name, Fn: func(context.Context) error {
		*calls = append(*calls, name)
		return err
	}}
}

func TestSequence_RunsInOrder(t *testing.T) {
	var calls []string
	buf := new(bytes.Buffer)
	seq := &bootstrap.Sequence{
		Out:   buf,
		Steps: []bootstrap.Step{recorder(&calls, "a", nil), recorder(&calls, "b", nil), recorder(&calls, "c", nil)},
	}

	require.NoError(t, seq.Run(context.Background()))
	assert.Equal(t, []string{"a", "b", "c"}, calls)
	assert.Equal(t, "[1/3] a\n[2/3] b\n[3/3] c\n", buf.String())
}

func TestSequence_StopsAtFirstFailure(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	seq := &bootstrap.Sequence{
		Steps: []bootstrap.Step{recorder(&calls, "a", nil), recorder(&calls, "b", boom), recorder(&calls, "c", nil)},
	}

	err := seq.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, bootstrap.ErrStepFailed)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "b")
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestSequence_Skip(t *testing.T) {
	var calls []string
	buf := new(bytes.Buffer)
	seq := &bootstrap.Sequence{
		Out:   buf,
		Steps: []bootstrap.Step{recorder(&calls, "a", nil), recorder(&calls, "b", nil)},
	}
	require.NoError(t, seq.SetSkip([]string{"a"}))

	require.NoError(t, seq.Run(context.Background()))
	assert.Equal(t, []string{"b"}, calls)
	assert.Contains(t, buf.String(), "[1/2] a: 건너뜀")
}

func TestSequence_SkipUnknown(t *testing.T) {
	seq := &bootstrap.Sequence{Steps: []bootstrap.Step{recorder(new([]string), "a", nil)}}

	err := seq.SetSkip([]string{"zz", "a"})
	assert.ErrorIs(t, err, bootstrap.ErrUnknownStep)
	assert.Contains(t, err.Error(), "zz")
}

func TestSequence_CanceledContext(t *testing.T) {
	var calls []string
	seq := &bootstrap.Sequence{Steps: []bootstrap.Step{recorder(&calls, "a", nil)}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := seq.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, bootstrap.ErrStepFailed)
	assert.Empty(t, calls)
}
