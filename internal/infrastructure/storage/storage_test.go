package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockledger/internal/config"
	"stockledger/pkg/logger"
)

func TestOpen_JSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	ctx := context.Background()

	opened, err := Open(ctx, config.StoreConfig{Driver: config.DriverJSON, DataDir: dir}, logger.Nop())
	require.NoError(t, err)
	defer opened.Close()

	_, err = os.Stat(filepath.Join(dir, "products.json"))
	require.NoError(t, err)
	assert.NoError(t, opened.Ping(ctx))

	products, err := opened.Repo.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "sqlite"}, logger.Nop())
	assert.Error(t, err)
}
