// Package credential supplies the bearer token attached to portal requests.
package credential

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cristianoliveira/portal-notify/internal/ports"
)

// Source names where the token is read from.
type Source string

const (
	SourceKeyring Source = "keyring"
	SourceEnv     Source = "env"
	SourceFile    Source = "file"
	SourceNone    Source = "none"
)

// ErrUnknownSource is returned by New for an unsupported source name.
var ErrUnknownSource = errors.New("unknown token source")

// Options configures New.
type Options struct {
	Source     Source
	EnvVar     string
	FilePath   string
	KeyringDir string
}

// New returns the provider selected by opts.Source.
func New(opts Options) (ports.CredentialProvider, error) {
	switch Source(strings.ToLower(string(opts.Source))) {
	case SourceKeyring:
		return NewKeyring(opts.KeyringDir), nil
	case SourceEnv:
		return Env(opts.EnvVar), nil
	case SourceFile:
		return File(opts.FilePath), nil
	case SourceNone, "":
		return Static(""), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, opts.Source)
	}
}

// Static always returns the same token.
type Static string

// Token implements ports.CredentialProvider.
func (s Static) Token(context.Context) (string, error) {
	return string(s), nil
}

// Env reads the token from the named environment variable on every call.
type Env string

// Token implements ports.CredentialProvider. An unset variable yields "".
func (e Env) Token(context.Context) (string, error) {
	if e == "" {
		return "", nil
	}
	return strings.TrimSpace(os.Getenv(string(e))), nil
}

// File reads the token from a file on every call, so rotating the file takes
// effect without a restart.
type File string

// Token implements ports.CredentialProvider. A missing file yields "".
func (f File) Token(context.Context) (string, error) {
	if f == "" {
		return "", nil
	}
	data, err := os.ReadFile(string(f))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading token file %s: %w", f, err)
	}
	return strings.TrimSpace(string(data)), nil
}
