package credential

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/99designs/keyring"
)

const (
	serviceName = "portal-notify"
	tokenKey    = "portal-token"
)

// Keyring reads the token from the OS keyring. The keyring is opened lazily
// on first use.
type Keyring struct {
	open func() (keyring.Keyring, error)

	once sync.Once
	ring keyring.Keyring
	err  error
}

// NewKeyring returns a provider over the system keyring. fileDir is used by
// the encrypted-file backend when no native backend is available.
func NewKeyring(fileDir string) *Keyring {
	return &Keyring{open: func() (keyring.Keyring, error) {
		return openKeyring(fileDir)
	}}
}

// NewKeyringFrom wraps an already opened keyring.
func NewKeyringFrom(ring keyring.Keyring) *Keyring {
	return &Keyring{open: func() (keyring.Keyring, error) { return ring, nil }}
}

func openKeyring(fileDir string) (keyring.Keyring, error) {
	if fileDir == "" {
		fileDir = "~/.config/portal-notify/credentials"
	}
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt("portal-notify-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

func (k *Keyring) openOnce() (keyring.Keyring, error) {
	k.once.Do(func() {
		k.ring, k.err = k.open()
	})
	return k.ring, k.err
}

// Token implements ports.CredentialProvider. A missing entry yields "".
func (k *Keyring) Token(context.Context) (string, error) {
	ring, err := k.openOnce()
	if err != nil {
		return "", err
	}
	item, err := ring.Get(tokenKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", tokenKey, err)
	}
	return string(item.Data), nil
}

// Set stores token in the keyring.
func (k *Keyring) Set(token string) error {
	ring, err := k.openOnce()
	if err != nil {
		return err
	}
	if err := ring.Set(keyring.Item{
		Key:   tokenKey,
		Data:  []byte(token),
		Label: "portal-notify API token",
	}); err != nil {
		return fmt.Errorf("setting credential %q: %w", tokenKey, err)
	}
	return nil
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (k *Keyring) Clear() error {
	ring, err := k.openOnce()
	if err != nil {
		return err
	}
	err = ring.Remove(tokenKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", tokenKey, err)
	}
	return nil
}
