package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:metadatarepo?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
DELETE FROM metadata;
`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyLastUser, []byte("alice")))

	got, err := repo.Get(ctx, KeyLastUser)
	require.NoError(t, err)
	require.Equal(t, []byte("alice"), got)
}

func TestGet_AbsentIsNil(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	got, err := repo.Get(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSet_Overwrites(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyLastUser, []byte("alice")))
	require.NoError(t, repo.Set(ctx, KeyLastUser, []byte("bob")))

	got, err := repo.Get(ctx, KeyLastUser)
	require.NoError(t, err)
	require.Equal(t, []byte("bob"), got)
}

func TestDelete(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyTokenCipher, []byte{0x01, 0x02}))
	require.NoError(t, repo.Delete(ctx, KeyTokenCipher))

	got, err := repo.Get(ctx, KeyTokenCipher)
	require.NoError(t, err)
	require.Nil(t, got)

	// deleting a missing key is not an error
	require.NoError(t, repo.Delete(ctx, KeyTokenCipher))
}

func TestClear(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyTokenCipher, []byte("c")))
	require.NoError(t, repo.Set(ctx, KeyTokenNonce, []byte("n")))
	require.NoError(t, repo.Set(ctx, KeyTokenSalt, []byte("s")))
	require.NoError(t, repo.Clear(ctx))

	for _, key := range []string{KeyTokenCipher, KeyTokenNonce, KeyTokenSalt} {
		got, err := repo.Get(ctx, key)
		require.NoError(t, err)
		require.Nil(t, got)
	}
}
