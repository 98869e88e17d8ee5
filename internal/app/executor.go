package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/idiom-catalog/internal/platform/logging"
)

const instrumentationName = "github.com/jsamuelsen/idiom-catalog/internal/app"

// Operations that change state run as Validate → Perform → Verify → Archive
// → Respond. Nothing is persisted before Verify succeeds, and nothing is
// returned to the caller before Archive succeeds.

// ExecutionStep names one step of an Operation.
type ExecutionStep string

// Steps in execution order.
const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError records the step an Operation failed in.
type ExecutionError struct {
	Step  ExecutionStep
	Cause error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Cause)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// FailedStep returns the step recorded in err, if any.
func FailedStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}

// Operation describes a state-changing use case. Nil steps are skipped, and
// a skipped step yields the zero value of its output type.
type Operation[I, P, V, O any] struct {
	Name string

	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (P, error)
	Verify   func(ctx context.Context, input I, performed P) (V, error)
	Archive  func(ctx context.Context, input I, verified V) error
	Respond  func(ctx context.Context, input I, verified V) (O, error)
}

// Executor runs Operations with step logging and one span per operation.
type Executor struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// NewExecutor returns an Executor logging to logger when the context
// carries no logger of its own.
func NewExecutor(logger *slog.Logger) *Executor {
	return &Executor{logger: logger, tracer: otel.Tracer(instrumentationName)}
}

// Execute runs op against input.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (out O, err error) {
	ctx, span := exec.tracer.Start(ctx, op.Name)
	logger := logging.FromContextOr(ctx, exec.logger).With(slog.String("operation", op.Name))
	start := time.Now()

	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	run := func(step ExecutionStep, fn func() error) error {
		span.AddEvent(string(step))
		logger.DebugContext(ctx, "step started", slog.String("step", string(step)))

		if stepErr := fn(); stepErr != nil {
			logger.WarnContext(ctx, "step failed", slog.String("step", string(step)), slog.Any("error", stepErr))
			return &ExecutionError{Step: step, Cause: stepErr}
		}

		return nil
	}

	var (
		performed P
		verified  V
	)

	steps := []struct {
		step ExecutionStep
		fn   func() error
	}{
		{StepValidate, func() error {
			if op.Validate == nil {
				return nil
			}
			return op.Validate(ctx, input)
		}},
		{StepPerform, func() (stepErr error) {
			if op.Perform != nil {
				performed, stepErr = op.Perform(ctx, input)
			}
			return stepErr
		}},
		{StepVerify, func() (stepErr error) {
			if op.Verify != nil {
				verified, stepErr = op.Verify(ctx, input, performed)
			}
			return stepErr
		}},
		{StepArchive, func() error {
			if op.Archive == nil {
				return nil
			}
			return op.Archive(ctx, input, verified)
		}},
		{StepRespond, func() (stepErr error) {
			if op.Respond != nil {
				out, stepErr = op.Respond(ctx, input, verified)
			}
			return stepErr
		}},
	}

	for _, s := range steps {
		if err = run(s.step, s.fn); err != nil {
			var zero O
			return zero, err
		}
	}

	logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return out, nil
}
