package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/cristianoliveira/portal-notify/internal/config"
	"github.com/cristianoliveira/portal-notify/internal/credential"
	"github.com/cristianoliveira/portal-notify/internal/logging"
	"github.com/cristianoliveira/portal-notify/internal/mockgen"
	"github.com/cristianoliveira/portal-notify/internal/ports"
	"github.com/cristianoliveira/portal-notify/internal/store"
	"github.com/cristianoliveira/portal-notify/internal/transport"
)

// storeOpener builds a fresh, uninitialized store. interval overrides the
// configured refresh period when positive. The caller must Teardown it.
type storeOpener func(interval time.Duration) (*store.Store, error)

// keyringOpener returns the keyring-backed credential store.
type keyringOpener func() *credential.Keyring

func keyringDir() string {
	return filepath.Join(config.Get("config_dir", ""), "credentials")
}

func defaultKeyring() *credential.Keyring {
	return credential.NewKeyring(keyringDir())
}

func newCredentials() (ports.CredentialProvider, error) {
	creds, err := credential.New(credential.Options{
		Source:     credential.Source(config.Get("token_source", string(credential.SourceKeyring))),
		EnvVar:     config.Get("token_env", "PORTAL_TOKEN"),
		FilePath:   config.Get("token_file", ""),
		KeyringDir: keyringDir(),
	})
	if err != nil {
		return nil, fmt.Errorf("credentials: %w", err)
	}
	return creds, nil
}

func newTransport(log logging.Logger) (*transport.Client, error) {
	creds, err := newCredentials()
	if err != nil {
		return nil, err
	}
	return transport.New(transport.Options{
		BaseURL:     config.Get("api_base_url", "http://localhost:3001/api"),
		Credentials: creds,
		Timeout:     config.GetDuration("request_timeout", transport.DefaultTimeout),
		Logger:      log,
	}), nil
}

// fallbackGenerator honors mock_fallback: without it a failed fetch leaves
// an empty list.
func fallbackGenerator(cfg ports.ConfigProvider) ports.FallbackGenerator {
	if cfg.GetConfigBool("mock_fallback", true) {
		return mockgen.New()
	}
	return mockgen.Noop{}
}

func defaultStoreOpener(interval time.Duration) (*store.Store, error) {
	log := logging.GetGlobal()
	client, err := newTransport(log)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = config.RefreshInterval()
	}
	return openStore(client, fallbackGenerator(config.Provider{}), interval, log)
}

// openStore builds the store; it tags log with its component itself.
func openStore(tr ports.NotificationTransport, fallback ports.FallbackGenerator, interval time.Duration, log logging.Logger) (*store.Store, error) {
	return store.New(store.Options{
		Transport: tr,
		Fallback:  fallback,
		Interval:  interval,
		Logger:    log,
	})
}
