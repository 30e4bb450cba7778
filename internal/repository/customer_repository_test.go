package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/recommend-gateway/internal/db/dbtest"
	appErrors "github.com/unclebandit/recommend-gateway/internal/errors"
)

func TestCustomerRepository_GetProductCode(t *testing.T) {
	store := dbtest.NewStore(map[string]string{
		"1": "BNDF",
		"2": "ETFF",
	})
	sqlDB := store.DB()
	defer sqlDB.Close()

	repo := &CustomerRepository{DB: sqlDB}

	rec, err := repo.GetProductCode(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "2", rec.CustomerID)
	assert.Equal(t, "ETFF", rec.ProductCode)
	assert.Equal(t, 1, store.Queries())
	assert.Equal(t, 0, sqlDB.Stats().InUse, "connection must be released")
}

func TestCustomerRepository_GetProductCode_NotFound(t *testing.T) {
	store := dbtest.NewStore(map[string]string{"1": "BNDF"})
	sqlDB := store.DB()
	defer sqlDB.Close()

	repo := &CustomerRepository{DB: sqlDB}

	rec, err := repo.GetProductCode(context.Background(), "404")
	require.Error(t, err)
	assert.Nil(t, rec)

	var notFound *appErrors.ErrCustomerNotFound
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "404", notFound.CustomerID)
	assert.Equal(t, 0, sqlDB.Stats().InUse)
}

func TestCustomerRepository_GetProductCode_QueryError(t *testing.T) {
	boom := errors.New("disk I/O error")
	store := dbtest.NewStore(nil)
	store.QueryErr = boom
	sqlDB := store.DB()
	defer sqlDB.Close()

	repo := &CustomerRepository{DB: sqlDB}

	_, err := repo.GetProductCode(context.Background(), "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, sqlDB.Stats().InUse)
}

func TestCustomerRepository_GetProductCode_ClosedDB(t *testing.T) {
	sqlDB := dbtest.NewStore(nil).DB()
	require.NoError(t, sqlDB.Close())

	repo := &CustomerRepository{DB: sqlDB}
	_, err := repo.GetProductCode(context.Background(), "1")
	assert.Error(t, err)
}

func TestCustomerRepository_Ping(t *testing.T) {
	store := dbtest.NewStore(nil)
	sqlDB := store.DB()
	defer sqlDB.Close()

	repo := &CustomerRepository{DB: sqlDB}
	assert.NoError(t, repo.Ping(context.Background()))

	store.PingErr = errors.New("connection refused")
	assert.Error(t, repo.Ping(context.Background()))
}
