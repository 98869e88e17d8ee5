package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_RunsStepsInOrder(t *testing.T) {
	var calls []ExecutionStep

	op := Operation[int, int, int, string]{
		Name: "double",
		Validate: func(_ context.Context, in int) error {
			calls = append(calls, StepValidate)
			return nil
		},
		Perform: func(_ context.Context, in int) (int, error) {
			calls = append(calls, StepPerform)
			return in * 2, nil
		},
		Verify: func(_ context.Context, _ int, performed int) (int, error) {
			calls = append(calls, StepVerify)
			return performed + 1, nil
		},
		Archive: func(_ context.Context, _ int, verified int) error {
			calls = append(calls, StepArchive)
			return nil
		},
		Respond: func(_ context.Context, _ int, verified int) (string, error) {
			calls = append(calls, StepRespond)
			if verified == 7 {
				return "seven", nil
			}
			return "other", nil
		},
	}

	out, err := Execute(context.Background(), NewExecutor(discardLogger()), op, 3)
	require.NoError(t, err)

	assert.Equal(t, "seven", out)
	assert.Equal(t, []ExecutionStep{StepValidate, StepPerform, StepVerify, StepArchive, StepRespond}, calls)
}

func TestExecute_StopsAtFailedStep(t *testing.T) {
	cause := errors.New("nope")
	archived := false

	op := Operation[int, int, int, int]{
		Name:    "failing",
		Perform: func(_ context.Context, in int) (int, error) { return in, nil },
		Verify:  func(context.Context, int, int) (int, error) { return 0, cause },
		Archive: func(context.Context, int, int) error {
			archived = true
			return nil
		},
	}

	out, err := Execute(context.Background(), NewExecutor(discardLogger()), op, 1)
	require.ErrorIs(t, err, cause)
	assert.Zero(t, out)
	assert.False(t, archived)
	assert.EqualError(t, err, "verify failed: nope")

	step, ok := FailedStep(err)
	require.True(t, ok)
	assert.Equal(t, StepVerify, step)
}

func TestExecute_NilStepsAreSkipped(t *testing.T) {
	out, err := Execute(context.Background(), NewExecutor(nil), Operation[int, int, int, int]{Name: "empty"}, 1)
	require.NoError(t, err)
	assert.Zero(t, out)
}

func TestFailedStep_OtherErrors(t *testing.T) {
	_, ok := FailedStep(errors.New("plain"))
	assert.False(t, ok)
}
