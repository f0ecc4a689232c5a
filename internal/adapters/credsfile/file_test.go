package credsfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/udns-tools/udnscan/internal/domain"
)

func newTestFile(t *testing.T, content string) *File {
	t.Helper()

	path := filepath.Join(t.TempDir(), "credentials.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := viper.New()
	cfg.Set("credentials.path", path)

	file, err := NewFile(cfg)
	require.NoError(t, err)
	return file
}

func TestLoadTokenProfile(t *testing.T) {
	t.Parallel()

	file := newTestFile(t, `
version = 1

[profiles.default]
token = "bearer-abc"
`)

	creds, err := file.Load("default")
	require.NoError(t, err)
	assert.Equal(t, domain.Credentials{Token: "bearer-abc"}, creds)
}

func TestLoadPasswordProfile(t *testing.T) {
	t.Parallel()

	file := newTestFile(t, `
[profiles.reseller]
username = "alice"
password = "s3cret"
`)

	creds, err := file.Load("reseller")
	require.NoError(t, err)
	assert.Equal(t, domain.Credentials{Username: "alice", Password: "s3cret"}, creds)
}

func TestLoadUnknownProfileIsConfigError(t *testing.T) {
	t.Parallel()

	file := newTestFile(t, `
[profiles.default]
token = "bearer-abc"
`)

	_, err := file.Load("staging")
	require.Error(t, err)

	var configErr *domain.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, err.Error(), `profile "staging" not found`)
}

func TestLoadMissingFileIsConfigError(t *testing.T) {
	t.Parallel()

	cfg := viper.New()
	cfg.Set("credentials.path", filepath.Join(t.TempDir(), "nope.toml"))

	file, err := NewFile(cfg)
	require.NoError(t, err)

	_, err = file.Load("default")
	require.Error(t, err)

	var configErr *domain.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoadRejectsNewerSchemaVersion(t *testing.T) {
	t.Parallel()

	file := newTestFile(t, `
version = 2

[profiles.default]
token = "bearer-abc"
`)

	_, err := file.Load("default")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported credentials schema version 2")
}
