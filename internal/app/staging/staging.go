// Package staging runs a sequence of write actions as a unit: actions run in
// the order they were added, and when one fails the ones that already ran
// are rolled back in reverse order.
package staging

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrAlreadyCommitted is returned by Add and Commit after a Commit attempt.
var ErrAlreadyCommitted = errors.New("plan already committed")

// Action is one staged write.
type Action interface {
	Execute(ctx context.Context) error
	// Rollback undoes Execute. Actions that cannot be undone return nil.
	Rollback(ctx context.Context) error
	Description() string
}

// Func adapts plain functions into an Action. A nil Undo never fails.
type Func struct {
	Name string
	Do   func(ctx context.Context) error
	Undo func(ctx context.Context) error
}

// Execute implements Action.
func (f Func) Execute(ctx context.Context) error { return f.Do(ctx) }

// Rollback implements Action.
func (f Func) Rollback(ctx context.Context) error {
	if f.Undo == nil {
		return nil
	}

	return f.Undo(ctx)
}

// Description implements Action.
func (f Func) Description() string { return f.Name }

// Plan collects actions until Commit.
type Plan struct {
	mu        sync.Mutex
	actions   []Action
	committed bool
}

// Add stages an action.
func (p *Plan) Add(action Action) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.committed {
		return ErrAlreadyCommitted
	}

	p.actions = append(p.actions, action)

	return nil
}

// Len returns the number of staged actions.
func (p *Plan) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.actions)
}

// Commit executes the staged actions. A Plan can be committed once, whether
// or not the attempt succeeds. The returned error joins the failure with any
// rollback errors.
func (p *Plan) Commit(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.committed {
		return ErrAlreadyCommitted
	}

	p.committed = true

	for i, action := range p.actions {
		if err := action.Execute(ctx); err != nil {
			errs := []error{fmt.Errorf("action %q failed: %w", action.Description(), err)}

			for j := i - 1; j >= 0; j-- {
				if rbErr := p.actions[j].Rollback(ctx); rbErr != nil {
					errs = append(errs, fmt.Errorf("rolling back %q: %w", p.actions[j].Description(), rbErr))
				}
			}

			return errors.Join(errs...)
		}
	}

	return nil
}
