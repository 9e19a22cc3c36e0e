package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresAddr(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{Addr: " "})
	require.Error(t, err)

	_, err = NewClient(Config{Addr: "localhost:6379", DB: -1})
	require.Error(t, err)
}

func TestPing(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := MustNew(Config{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, Ping(context.Background(), client))

	mr.Close()
	require.Error(t, Ping(context.Background(), client))
}
