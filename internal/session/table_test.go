package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableInvoke(t *testing.T) {
	tbl := NewTable()
	Handle(tbl, "echo", func(_ context.Context, in string) (int, error) {
		return len(in), nil
	})

	n, err := Invoke[string, int](context.Background(), tbl, "echo", "four")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.True(t, tbl.Has("echo"))
	assert.Equal(t, []string{"echo"}, tbl.Names())
}

func TestTableUnknownName(t *testing.T) {
	tbl := NewTable()
	_, err := Invoke[Empty, Empty](context.Background(), tbl, "nope", Empty{})
	require.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, err.Error(), "nope")
}

func TestTablePayloadMismatch(t *testing.T) {
	tbl := NewTable()
	Handle(tbl, "echo", func(_ context.Context, in string) (int, error) {
		return len(in), nil
	})

	_, err := Invoke[int, int](context.Background(), tbl, "echo", 3)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "payload is int"), err.Error())

	_, err = Invoke[string, string](context.Background(), tbl, "echo", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "result is int")
}

func TestTableReturnsResultWithError(t *testing.T) {
	tbl := NewTable()
	boom := errors.New("boom")
	Handle(tbl, "partial", func(_ context.Context, _ Empty) (string, error) {
		return "kept", boom
	})

	out, err := Invoke[Empty, string](context.Background(), tbl, "partial", Empty{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "kept", out)
}

func TestTableCanceledContext(t *testing.T) {
	tbl := NewTable()
	called := false
	Handle(tbl, "x", func(_ context.Context, _ Empty) (Empty, error) {
		called = true
		return Empty{}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Invoke[Empty, Empty](ctx, tbl, "x", Empty{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
