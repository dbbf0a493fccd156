package main

import (
	"context"
	"strings"
	"testing"

	"github.com/99designs/keyring"
	"github.com/cristianoliveira/portal-notify/internal/credential"
	"github.com/cristianoliveira/portal-notify/internal/devserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryKeyring() (*credential.Keyring, keyringOpener) {
	ring := credential.NewKeyringFrom(keyring.NewArrayKeyring(nil))
	return ring, func() *credential.Keyring { return ring }
}

func TestTokenSetAndClear(t *testing.T) {
	ring, open := memoryKeyring()

	_, err := execute(t, NewTokenCmd(open), "set", "  abc123 ")
	require.NoError(t, err)
	tok, err := ring.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok)

	_, err = execute(t, NewTokenCmd(open), "clear")
	require.NoError(t, err)
	tok, err = ring.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestTokenSetFromStdin(t *testing.T) {
	ring, open := memoryKeyring()
	c := NewTokenCmd(open)
	c.SetIn(strings.NewReader("from-stdin\n"))
	c.SetArgs([]string{"set"})
	c.SilenceErrors = true

	require.NoError(t, c.Execute())
	tok, err := ring.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-stdin", tok)
}

func TestTokenSetRejectsEmpty(t *testing.T) {
	_, open := memoryKeyring()
	_, err := execute(t, NewTokenCmd(open), "set", "   ")
	assert.Error(t, err)
}

func TestTokenIssue(t *testing.T) {
	_, open := memoryKeyring()

	out, err := execute(t, NewTokenCmd(open), "issue", "--secret", "s3cret", "--subject", "alice")
	require.NoError(t, err)
	claims, err := devserver.ParseToken("s3cret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
}

func TestTokenIssueStore(t *testing.T) {
	ring, open := memoryKeyring()

	out, err := execute(t, NewTokenCmd(open), "issue", "--secret", "s3cret", "--store")
	require.NoError(t, err)
	assert.Empty(t, out)
	tok, err := ring.Token(context.Background())
	require.NoError(t, err)
	_, err = devserver.ParseToken("s3cret", tok)
	assert.NoError(t, err)
}

func TestTokenIssueWithoutSecret(t *testing.T) {
	_, open := memoryKeyring()
	_, err := execute(t, NewTokenCmd(open), "issue")
	assert.ErrorContains(t, err, "no secret")
}
