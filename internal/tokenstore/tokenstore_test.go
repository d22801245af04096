package tokenstore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeContract(t *testing.T, s Store) {
	t.Helper()

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("b", "2"))
	require.NoError(t, s.Set("a", "3"))

	v, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	require.NoError(t, s.Delete("a"))
	_, err = s.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete("a"), ErrNotFound)

	v, err = s.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	storeContract(t, NewFileStore(filepath.Join(t.TempDir(), "nested", "tokens.json")))
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, NewFileStore(path).Set(TokenKey, "abc"))

	v, err := NewFileStore(path).Get(TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Get(TokenKey)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing token store")
}

func TestTokens(t *testing.T) {
	tokens := NewTokens(NewMemoryStore())

	tok, err := tokens.Token()
	require.NoError(t, err)
	assert.Empty(t, tok)
	assert.False(t, tokens.Authenticated())
	require.NoError(t, tokens.ClearToken(), "clearing an absent token is fine")

	require.NoError(t, tokens.SetToken("secret"))
	assert.True(t, tokens.Authenticated())
	tok, err = tokens.Token()
	require.NoError(t, err)
	assert.Equal(t, "secret", tok)

	require.NoError(t, tokens.ClearToken())
	assert.False(t, tokens.Authenticated())
}
