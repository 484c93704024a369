package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quiz-portal/internal/config"
	"quiz-portal/pkg/storage"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: DriverMemory, Namespace: "demo"}}
	b, err := Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer b.Close()

	ctx := context.Background()
	require.NoError(t, b.Store("demo").Set(ctx, "k", "v"))

	got, err := b.Store("demo").Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	_, err = b.Store("other").Get(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, DriverMemory, b.Driver())
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "sqlite"}}, zap.NewNop())
	assert.Error(t, err)
}
