// Package board holds the status boards: employer application review,
// job seeker tracker, admin moderation and employer job management.
// All of them are a List of entities with a status machine.
package board

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jonathan/jobboard/internal/status"
	"github.com/jonathan/jobboard/internal/types"
)

var (
	// ErrItemNotFound is returned for an id that is not on the board.
	ErrItemNotFound = errors.New("item not found on board")
	// ErrReadOnly is returned when transitioning an item on a read-only board.
	ErrReadOnly = errors.New("board is read-only")
	// ErrNotConfirmed is returned when an irreversible action was not confirmed.
	ErrNotConfirmed = errors.New("action not confirmed")
)

// Adapter tells a List how to read and update its entity type.
type Adapter[T any, S ~string] struct {
	ID         func(T) types.ID
	Status     func(T) S
	WithStatus func(item T, to S, note string) T
}

// Fetch loads the items of a board.
type Fetch[T any] func(ctx context.Context) ([]T, error)

// Commit persists a status change on the server.
type Commit[S ~string] func(ctx context.Context, id types.ID, to S, note string) error

// List is an entity list whose items move through a status machine.
// Local state changes only after the server confirms, and never once the
// caller's context is done.
type List[T any, S ~string] struct {
	name    string
	machine status.Machine[S]
	adapter Adapter[T, S]
	commit  Commit[S]
	logger  *log.Logger

	mu    sync.RWMutex
	items []T
}

// NewList creates a list. machine and commit may be nil for a read-only list.
func NewList[T any, S ~string](name string, machine status.Machine[S], adapter Adapter[T, S], commit Commit[S], logger *log.Logger) *List[T, S] {
	if logger == nil {
		logger = log.Default()
	}
	return &List[T, S]{name: name, machine: machine, adapter: adapter, commit: commit, logger: logger}
}

// Load replaces the items with a fresh fetch. A failed fetch empties the list.
func (l *List[T, S]) Load(ctx context.Context, fetch Fetch[T]) error {
	items, err := fetch(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		l.logger.Printf("[board] %s: load failed: %v", l.name, err)
		l.mu.Lock()
		l.items = nil
		l.mu.Unlock()
		return err
	}

	l.mu.Lock()
	l.items = append([]T(nil), items...)
	l.mu.Unlock()
	return nil
}

// Items returns a copy of the current items.
func (l *List[T, S]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *List[T, S]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Get returns the item with the given id.
func (l *List[T, S]) Get(id types.ID) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.index(id); i >= 0 {
		return l.items[i], true
	}
	var zero T
	return zero, false
}

func (l *List[T, S]) index(id types.ID) int {
	for i, item := range l.items {
		if l.adapter.ID(item) == id {
			return i
		}
	}
	return -1
}

// Actions lists what can be done to the item right now.
func (l *List[T, S]) Actions(id types.ID) []status.Action {
	item, ok := l.Get(id)
	if !ok || l.machine == nil {
		return nil
	}
	return l.machine.Actions(l.adapter.Status(item))
}

// Plan checks a transition without performing it.
func (l *List[T, S]) Plan(id types.ID, action status.Action, note string) (S, error) {
	if l.machine == nil || l.commit == nil {
		return "", ErrReadOnly
	}
	item, ok := l.Get(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return l.machine.Next(l.adapter.Status(item), action, note)
}

// Transition applies action to the item, persists it and, once the server
// confirms, updates that item and no other.
func (l *List[T, S]) Transition(ctx context.Context, id types.ID, action status.Action, note string) (S, error) {
	to, err := l.Plan(id, action, note)
	if err != nil {
		return to, err
	}

	if err := l.commit(ctx, id, to, note); err != nil {
		l.logger.Printf("[board] %s: %s on %s failed: %v", l.name, action, id, err)
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.index(id); i >= 0 {
		l.items[i] = l.adapter.WithStatus(l.items[i], to, note)
	}
	return to, nil
}

// Remove deletes the item on the server and then drops it from the list.
func (l *List[T, S]) Remove(ctx context.Context, id types.ID, del func(context.Context, types.ID) error) error {
	if _, ok := l.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if err := del(ctx, id); err != nil {
		l.logger.Printf("[board] %s: delete %s failed: %v", l.name, id, err)
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.index(id); i >= 0 {
		l.items = append(l.items[:i:i], l.items[i+1:]...)
	}
	return nil
}

// Option configures a board.
type Option func(*options)

type options struct {
	logger       *log.Logger
	now          func() time.Time
	paymentCheck bool
}

func newOptions(opts []Option) *options {
	o := &options{logger: log.Default(), now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets where boards log fetch and update failures.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock replaces time.Now, for highlight expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithPaymentCheck makes the moderation board check payment before approving.
func WithPaymentCheck(enabled bool) Option {
	return func(o *options) { o.paymentCheck = enabled }
}

// Confirm asks the user to confirm an irreversible action.
type Confirm func(prompt string) bool
