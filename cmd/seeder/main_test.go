package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecer struct {
	queries []string
	err     error
}

func (f *fakeExecer) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.queries = append(f.queries, query)
	return nil, nil
}

func writeSeed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSeed_ExecutesFilesInOrder(t *testing.T) {
	first := writeSeed(t, "a.sql", "CREATE TABLE t (id TEXT);")
	second := writeSeed(t, "b.sql", "INSERT INTO t VALUES ('1');")
	db := &fakeExecer{}

	require.NoError(t, seed(context.Background(), db, []string{first, second}, zerolog.Nop()))
	assert.Equal(t, []string{"CREATE TABLE t (id TEXT);", "INSERT INTO t VALUES ('1');"}, db.queries)
}

func TestSeed_MissingFile(t *testing.T) {
	db := &fakeExecer{}

	err := seed(context.Background(), db, []string{filepath.Join(t.TempDir(), "missing.sql")}, zerolog.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, db.queries)
}

func TestSeed_ExecError(t *testing.T) {
	file := writeSeed(t, "a.sql", "SELECT 1;")
	execErr := errors.New("relation does not exist")

	err := seed(context.Background(), &fakeExecer{err: execErr}, []string{file}, zerolog.Nop())
	assert.ErrorIs(t, err, execErr)
}

func TestSeedFile_DefinesProductCodeTable(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", seedFiles[0]))
	require.NoError(t, err)
	assert.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS cm_cust_product_code")
	assert.Contains(t, string(content), "('1', 'BNDF')")
}
