package session

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrUnknownCommand is returned when invoking a name nothing was registered for
var ErrUnknownCommand = errors.New("unknown command")

// Empty is the payload and result of commands that take or return nothing
type Empty struct{}

type handler func(ctx context.Context, payload any) (any, error)

// Table maps command and event names to handlers. Handlers are registered
// once at startup and invoked one at a time; Table is not safe for
// concurrent use.
type Table struct {
	handlers map[string]handler
}

// NewTable returns an empty table
func NewTable() *Table {
	return &Table{handlers: make(map[string]handler)}
}

// Handle registers fn under name, replacing any earlier handler
func Handle[In, Out any](t *Table, name string, fn func(context.Context, In) (Out, error)) {
	t.handlers[name] = func(ctx context.Context, payload any) (any, error) {
		in, ok := payload.(In)
		if !ok {
			var want In
			return nil, fmt.Errorf("%s: payload is %T, want %T", name, payload, want)
		}
		return fn(ctx, in)
	}
}

// Invoke runs the handler registered under name. The result is returned
// alongside any error, since some handlers succeed in memory and still
// report a persistence failure.
func Invoke[In, Out any](ctx context.Context, t *Table, name string, in In) (Out, error) {
	var zero Out
	h, ok := t.handlers[name]
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	res, err := h(ctx, in)
	out, ok := res.(Out)
	if !ok && res != nil {
		return zero, fmt.Errorf("%s: result is %T, want %T", name, res, zero)
	}
	return out, err
}

// Has reports whether name is registered
func (t *Table) Has(name string) bool {
	_, ok := t.handlers[name]
	return ok
}

// Names lists the registered names, sorted
func (t *Table) Names() []string {
	return slices.Sorted(maps.Keys(t.handlers))
}
