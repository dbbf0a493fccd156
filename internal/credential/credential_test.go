package credential

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	tok, err := Static("abc").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)
}

func TestEnv(t *testing.T) {
	t.Setenv("PORTAL_TEST_TOKEN", "  from-env \n")
	tok, err := Env("PORTAL_TEST_TOKEN").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-env", tok)

	tok, err = Env("").Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")

	tok, err := File(path).Token(context.Background())
	require.NoError(t, err, "missing file means no credential")
	assert.Empty(t, tok)

	require.NoError(t, os.WriteFile(path, []byte("file-token\n"), 0o600))
	tok, err = File(path).Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "file-token", tok)

	_, err = File(dir).Token(context.Background())
	assert.Error(t, err, "a directory is not a token file")
}

func TestKeyringRoundTrip(t *testing.T) {
	k := NewKeyringFrom(keyring.NewArrayKeyring(nil))

	tok, err := k.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, k.Set("ring-token"))
	tok, err = k.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ring-token", tok)

	require.NoError(t, k.Clear())
	require.NoError(t, k.Clear(), "clearing twice is fine")
	tok, err = k.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestKeyringOpenErrorIsSticky(t *testing.T) {
	calls := 0
	boom := errors.New("no backend")
	k := &Keyring{open: func() (keyring.Keyring, error) {
		calls++
		return nil, boom
	}}
	_, err := k.Token(context.Background())
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, k.Set("x"), boom)
	assert.Equal(t, 1, calls)
}

func TestNew(t *testing.T) {
	p, err := New(Options{Source: SourceEnv, EnvVar: "X"})
	require.NoError(t, err)
	assert.Equal(t, Env("X"), p)

	p, err = New(Options{Source: "FILE", FilePath: "/tmp/t"})
	require.NoError(t, err)
	assert.Equal(t, File("/tmp/t"), p)

	p, err = New(Options{Source: SourceNone})
	require.NoError(t, err)
	assert.Equal(t, Static(""), p)

	p, err = New(Options{Source: SourceKeyring})
	require.NoError(t, err)
	assert.IsType(t, &Keyring{}, p)

	_, err = New(Options{Source: "vault"})
	assert.ErrorIs(t, err, ErrUnknownSource)
}
