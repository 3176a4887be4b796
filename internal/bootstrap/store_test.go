package bootstrap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/violett-api/internal/bootstrap"
	"github.com/jhoicas/violett-api/internal/infrastructure/memory"
	"github.com/jhoicas/violett-api/pkg/config"
	"github.com/jhoicas/violett-api/pkg/logger"
)

func TestOpenStore_Memoria(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreMemory}}
	store, closeFn, err := bootstrap.OpenStore(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &memory.Store{}, store)
}

func TestOpenStore_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "mongo"}}
	_, _, err := bootstrap.OpenStore(context.Background(), cfg, logger.Nop())
	assert.ErrorContains(t, err, "mongo")
}
