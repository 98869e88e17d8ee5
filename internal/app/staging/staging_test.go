package staging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	log []string
}

func (r *recorder) action(name string, fail, failUndo bool) Func {
	return Func{
		Name: name,
		Do: func(context.Context) error {
			r.log = append(r.log, "do "+name)
			if fail {
				return errors.New(name + " broke")
			}
			return nil
		},
		Undo: func(context.Context) error {
			r.log = append(r.log, "undo "+name)
			if failUndo {
				return errors.New(name + " stuck")
			}
			return nil
		},
	}
}

func TestPlan_CommitInOrder(t *testing.T) {
	var r recorder
	var p Plan

	require.NoError(t, p.Add(r.action("swap", false, false)))
	require.NoError(t, p.Add(r.action("snapshot", false, false)))
	assert.Equal(t, 2, p.Len())

	require.NoError(t, p.Commit(context.Background()))
	assert.Equal(t, []string{"do swap", "do snapshot"}, r.log)
}

func TestPlan_RollsBackOnFailure(t *testing.T) {
	var r recorder
	var p Plan

	require.NoError(t, p.Add(r.action("swap", false, false)))
	require.NoError(t, p.Add(r.action("sqlite", false, true)))
	require.NoError(t, p.Add(r.action("file", true, false)))
	require.NoError(t, p.Add(r.action("never", false, false)))

	err := p.Commit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `action "file" failed: file broke`)
	assert.Contains(t, err.Error(), `rolling back "sqlite": sqlite stuck`)

	assert.Equal(t, []string{"do swap", "do sqlite", "do file", "undo sqlite", "undo swap"}, r.log)
}

func TestPlan_CommitOnce(t *testing.T) {
	var p Plan

	require.NoError(t, p.Commit(context.Background()))
	require.ErrorIs(t, p.Commit(context.Background()), ErrAlreadyCommitted)
	require.ErrorIs(t, p.Add(Func{Name: "late"}), ErrAlreadyCommitted)
}

func TestFunc_NilUndo(t *testing.T) {
	f := Func{Name: "noop", Do: func(context.Context) error { return nil }}

	assert.NoError(t, f.Rollback(context.Background()))
	assert.Equal(t, "noop", f.Description())
}
