package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config location at a fresh temp dir and clears
// PORTAL_NOTIFY_* variables inherited from the environment.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	for _, env := range os.Environ() {
		key, _, _ := strings.Cut(env, "=")
		if strings.HasPrefix(key, EnvPrefix) {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmpDir, "state"))
	return tmpDir
}

func TestLoadAndGet(t *testing.T) {
	isolate(t)
	Load()

	require.Equal(t, "default", Get("missing", "default"))
	require.Equal(t, "http://localhost:3001/api", Get("api_base_url", ""))
	require.Equal(t, 300000, GetInt("refresh_interval_ms", 0))
	require.Equal(t, 5*time.Minute, RefreshInterval())
	require.True(t, GetBool("mock_fallback", false))
	require.Equal(t, "keyring", Get("token_source", ""))
	require.Equal(t, 30*time.Second, GetDuration("request_timeout", 0))
}

func TestDirsFollowXDG(t *testing.T) {
	tmpDir := isolate(t)
	Load()

	require.Equal(t, filepath.Join(tmpDir, "config", "portal-notify"), Get("config_dir", ""))
	require.Equal(t, filepath.Join(tmpDir, "state", "portal-notify"), Get("state_dir", ""))
	require.Equal(t, filepath.Join(tmpDir, "state", "portal-notify", "devserver.db"), Get("serve_db_path", ""))
	require.Equal(t, filepath.Join(tmpDir, "config", "portal-notify", "hooks"), Get("hooks_dir", ""))
}

func TestEnvOverridesFileOverridesDefaults(t *testing.T) {
	tmpDir := isolate(t)
	path := filepath.Join(tmpDir, "custom.toml")
	content := `
api_base_url = "https://portal.example.com/api/"
list_limit = 20
refresh_interval_ms = 60000
mock_fallback = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("PORTAL_NOTIFY_CONFIG_PATH", path)
	t.Setenv("PORTAL_NOTIFY_LIST_LIMIT", "7")

	Load()

	assert.Equal(t, "https://portal.example.com/api", Get("api_base_url", ""), "trailing slash is trimmed")
	assert.Equal(t, 7, GetInt("list_limit", 0), "env wins over file")
	assert.Equal(t, time.Minute, RefreshInterval())
	assert.False(t, GetBool("mock_fallback", true))
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("PORTAL_NOTIFY_REFRESH_INTERVAL_MS", "-5")
	t.Setenv("PORTAL_NOTIFY_TOKEN_SOURCE", "vault")
	t.Setenv("PORTAL_NOTIFY_REQUEST_TIMEOUT", "soon")
	t.Setenv("PORTAL_NOTIFY_API_BASE_URL", "localhost:3001")
	t.Setenv("PORTAL_NOTIFY_MOCK_FALLBACK", "maybe")
	t.Setenv("PORTAL_NOTIFY_HOOKS_FAILURE_MODE", "explode")
	t.Setenv("PORTAL_NOTIFY_HOOKS_TIMEOUT", "later")

	Load()

	assert.Equal(t, 300000, GetInt("refresh_interval_ms", 0))
	assert.Equal(t, "keyring", Get("token_source", ""))
	assert.Equal(t, "30s", Get("request_timeout", ""))
	assert.Equal(t, "http://localhost:3001/api", Get("api_base_url", ""))
	assert.True(t, GetBool("mock_fallback", false))
	assert.Equal(t, "warn", Get("hooks_failure_mode", ""))
	assert.Equal(t, "10s", Get("hooks_timeout", ""))
}

func TestBoolNormalization(t *testing.T) {
	isolate(t)
	t.Setenv("PORTAL_NOTIFY_SERVE_SEED", "off")
	t.Setenv("PORTAL_NOTIFY_DEBUG", "YES")

	Load()

	assert.Equal(t, "false", Get("serve_seed", ""))
	assert.Equal(t, "true", Get("debug", ""))
}

func TestSampleConfigCreated(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv("PORTAL_NOTIFY_SERVE_JWT_SECRET", "s3cret")
	Load()

	samplePath := filepath.Join(tmpDir, "config", "portal-notify", "config.toml")
	data, err := os.ReadFile(samplePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# portal-notify configuration")
	assert.Contains(t, string(data), "api_base_url")
	assert.NotContains(t, string(data), "serve_jwt_secret")
	assert.NotContains(t, string(data), "s3cret")
}

func TestProviderReadsLoadedConfig(t *testing.T) {
	isolate(t)
	t.Setenv("PORTAL_NOTIFY_TOKEN_ENV", "MY_TOKEN")
	Load()

	var p Provider
	assert.Equal(t, "MY_TOKEN", p.GetConfigString("token_env", ""))
	assert.True(t, p.GetConfigBool("mock_fallback", false))
	assert.True(t, p.GetConfigBool("unknown_key", true))
}

func TestValidators(t *testing.T) {
	allowed := map[string]bool{"a": true, "b": true}
	got, err := EnumValidator(allowed)("k", "B", "a")
	require.NoError(t, err)
	assert.Equal(t, "b", got)

	got, err = DurationValidator(true)("k", "", "10s")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = DurationValidator(false)("k", "90s", "10s")
	require.NoError(t, err)
	assert.Equal(t, "1m30s", got)

	got, err = URLValidator()("k", "ftp://x", "http://d")
	require.NoError(t, err)
	assert.Equal(t, "http://d", got)

	assert.Equal(t, "a, b", allowedValues(allowed))
}

func TestRegisterValidatorPanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		RegisterValidator("list_limit", PositiveIntValidator())
	})
}
