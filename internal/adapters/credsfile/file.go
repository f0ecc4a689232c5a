// Package credsfile loads named credential profiles from a TOML file so
// credentials don't have to be typed on every run. The file is read-only to
// the tool; nothing is ever written back.
package credsfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/udns-tools/udnscan/internal/domain"
)

const (
	credentialsPathKey = "credentials.path"
	configDirName      = ".config/udnscan"
	credentialsName    = "credentials.toml"
)

type File struct {
	path string
}

// NewFile resolves the credentials file location. The default is
// ~/.config/udnscan/credentials.toml; UDNSCAN_CREDENTIALS_PATH overrides it
// through the supplied viper instance.
func NewFile(cfg *viper.Viper) (*File, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetDefault(credentialsPathKey, filepath.Join(homeDir, configDirName, credentialsName))

	path, err := homedir.Expand(cfg.GetString(credentialsPathKey))
	if err != nil {
		return nil, fmt.Errorf("resolve credentials path: %w", err)
	}

	return &File{path: path}, nil
}

// Load returns the named profile's credentials. A missing file or unknown
// profile is a configuration problem, reported before any network call.
func (f *File) Load(name string) (domain.Credentials, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Credentials{}, &domain.ConfigError{Reason: fmt.Sprintf("credentials file %s does not exist", f.path)}
		}
		return domain.Credentials{}, fmt.Errorf("read credentials file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.Credentials{}, fmt.Errorf("decode credentials file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return domain.Credentials{}, err
	}
	file.applyDefaults()

	profile, ok := file.Profiles[name]
	if !ok {
		return domain.Credentials{}, &domain.ConfigError{Reason: fmt.Sprintf("profile %q not found in %s", name, f.path)}
	}

	return domain.Credentials{
		Username: profile.Username,
		Password: profile.Password,
		Token:    profile.Token,
	}, nil
}
