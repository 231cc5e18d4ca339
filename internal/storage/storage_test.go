package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBackends builds one instance of every Store implementation, backed by
// throwaway resources cleaned up with the test.
func newBackends(t *testing.T) map[string]Store {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { rdb.Close() })

	fs, err := NewFile(t.TempDir())
	require.NoError(t, err)

	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"file":   fs,
		"redis":  rdb,
		"sqlite": sq,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, st := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Get(ctx, KeyPosts)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, st.Set(ctx, KeyPosts, []byte(`[{"id":"1"}]`)))
			b, err := st.Get(ctx, KeyPosts)
			require.NoError(t, err)
			assert.Equal(t, []byte(`[{"id":"1"}]`), b)

			// Overwrite replaces the snapshot wholesale.
			require.NoError(t, st.Set(ctx, KeyPosts, []byte(`[]`)))
			b, err = st.Get(ctx, KeyPosts)
			require.NoError(t, err)
			assert.Equal(t, []byte(`[]`), b)

			require.NoError(t, st.Delete(ctx, KeyPosts))
			_, err = st.Get(ctx, KeyPosts)
			assert.ErrorIs(t, err, ErrNotFound)

			// Deleting an absent key is not an error.
			assert.NoError(t, st.Delete(ctx, KeyPosts))
		})
	}
}

func TestStoreKeysAreIndependent(t *testing.T) {
	ctx := context.Background()

	for name, st := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.Set(ctx, KeyUser, []byte(`{"id":"1"}`)))
			require.NoError(t, st.Set(ctx, KeyFollows, []byte(`[]`)))

			require.NoError(t, st.Delete(ctx, KeyUser))

			b, err := st.Get(ctx, KeyFollows)
			require.NoError(t, err)
			assert.Equal(t, []byte(`[]`), b)
		})
	}
}

func TestGetJSONSetJSON(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := NewMemory()

	type record struct {
		ID    string   `json:"id"`
		Likes []string `json:"likes"`
	}

	var out record
	found, err := GetJSON(ctx, st, KeyPosts, &out)
	require.NoError(t, err)
	assert.False(t, found)

	in := record{ID: "1", Likes: []string{"2"}}
	require.NoError(t, SetJSON(ctx, st, KeyPosts, in))

	found, err = GetJSON(ctx, st, KeyPosts, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestGetJSONMalformedSnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := NewMemory()
	require.NoError(t, st.Set(ctx, KeyUser, []byte(`{not json`)))

	var out map[string]any
	_, err := GetJSON(ctx, st, KeyUser, &out)
	assert.Error(t, err)
}

func TestFileAtomicWriteLeavesNoTempFiles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	st, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, st.Set(ctx, KeyStories, []byte(`[]`)))
	require.NoError(t, st.Set(ctx, KeyStories, []byte(`[{"id":"s1"}]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, KeyStories+".json", entries[0].Name())
}

func TestRedisKeysAreNamespaced(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr := miniredis.RunT(t)
	st := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer st.Close()

	require.NoError(t, st.Set(ctx, KeyUser, []byte(`{}`)))
	assert.True(t, mr.Exists("chatterverse:"+KeyUser))
}

func TestSQLiteUpsertKeepsSingleRow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st, err := OpenSQLite(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Set(ctx, KeyPosts, []byte(`[]`)))
	require.NoError(t, st.Set(ctx, KeyPosts, []byte(`[{"id":"1"}]`)))

	var count int64
	require.NoError(t, st.db.Model(&Snapshot{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	b, err := st.Get(ctx, KeyPosts)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), b)
}
