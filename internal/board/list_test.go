package board

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/jonathan/jobboard/internal/status"
	"github.com/jonathan/jobboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAppList(commit Commit[status.ApplicationStatus], logger *log.Logger) *List[types.Application, status.ApplicationStatus] {
	return NewList("test", status.Machine[status.ApplicationStatus](status.ApplicationMachine{}), applicationAdapter, commit, logger)
}

func fetchApps(apps ...types.Application) Fetch[types.Application] {
	return func(context.Context) ([]types.Application, error) { return apps, nil }
}

func TestList_LoadFailureEmptiesAndLogs(t *testing.T) {
	var buf bytes.Buffer
	l := newAppList(nil, log.New(&buf, "", 0))
	require.NoError(t, l.Load(context.Background(), fetchApps(types.Application{ID: "1"})))
	assert.Equal(t, 1, l.Len())

	boom := errors.New("connection refused")
	err := l.Load(context.Background(), func(context.Context) ([]types.Application, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, l.Len())
	assert.Contains(t, buf.String(), "[board] test: load failed: connection refused")
}

func TestList_LateLoadDoesNotMutate(t *testing.T) {
	l := newAppList(nil, nil)
	require.NoError(t, l.Load(context.Background(), fetchApps(types.Application{ID: "1"})))

	ctx, cancel := context.WithCancel(context.Background())
	err := l.Load(ctx, func(context.Context) ([]types.Application, error) {
		cancel()
		return []types.Application{{ID: "2"}, {ID: "3"}}, nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, types.ID("1"), items[0].ID)
}

func TestList_TransitionOnlyAfterConfirmation(t *testing.T) {
	failing := errors.New("500")
	commitErr := failing
	l := newAppList(func(context.Context, types.ID, status.ApplicationStatus, string) error { return commitErr }, nil)
	require.NoError(t, l.Load(context.Background(), fetchApps(types.Application{ID: "1", Status: "pending"})))

	_, err := l.Transition(context.Background(), "1", status.ActionShortlist, "")
	assert.ErrorIs(t, err, failing)
	got, _ := l.Get("1")
	assert.Equal(t, "pending", got.Status)

	commitErr = nil
	to, err := l.Transition(context.Background(), "1", status.ActionShortlist, "See you Monday")
	require.NoError(t, err)
	assert.Equal(t, status.ApplicationShortlisted, to)
	got, _ = l.Get("1")
	assert.Equal(t, "shortlisted", got.Status)
	assert.Equal(t, "See you Monday", got.ResponseMessage)
}

func TestList_TransitionAfterCancelDoesNotMutate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := newAppList(func(context.Context, types.ID, status.ApplicationStatus, string) error {
		cancel()
		return nil
	}, nil)
	require.NoError(t, l.Load(context.Background(), fetchApps(types.Application{ID: "1", Status: "pending"})))

	_, err := l.Transition(ctx, "1", status.ActionReject, "")
	assert.ErrorIs(t, err, context.Canceled)
	got, _ := l.Get("1")
	assert.Equal(t, "pending", got.Status)
}

func TestList_InvalidTransitionMakesNoCall(t *testing.T) {
	calls := 0
	l := newAppList(func(context.Context, types.ID, status.ApplicationStatus, string) error {
		calls++
		return nil
	}, nil)
	require.NoError(t, l.Load(context.Background(), fetchApps(types.Application{ID: "1", Status: "hired"})))

	_, err := l.Transition(context.Background(), "1", status.ActionShortlist, "")
	var invalid *status.InvalidTransitionError
	assert.ErrorAs(t, err, &invalid)

	_, err = l.Transition(context.Background(), "missing", status.ActionShortlist, "")
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Zero(t, calls)
}

func TestList_ReadOnly(t *testing.T) {
	l := NewList[types.Application, status.ApplicationStatus]("ro", nil, applicationAdapter, nil, nil)
	require.NoError(t, l.Load(context.Background(), fetchApps(types.Application{ID: "1", Status: "pending"})))

	_, err := l.Transition(context.Background(), "1", status.ActionShortlist, "")
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.Nil(t, l.Actions("1"))
}

func TestList_ItemsIsACopy(t *testing.T) {
	l := newAppList(nil, nil)
	require.NoError(t, l.Load(context.Background(), fetchApps(types.Application{ID: "1", Status: "pending"})))

	items := l.Items()
	items[0].Status = "hired"
	got, _ := l.Get("1")
	assert.Equal(t, "pending", got.Status)
}
