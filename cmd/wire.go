package cmd

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/viper"
	"github.com/udns-tools/udnscan/internal/adapters/credsfile"
	"github.com/udns-tools/udnscan/internal/adapters/ultradns"
	"github.com/udns-tools/udnscan/internal/ports"
)

type app struct {
	api   ports.Client
	creds *credsfile.File
	cfg   *viper.Viper
}

func wireApp() (*app, error) {
	cfg := viper.New()
	cfg.SetEnvPrefix("UDNSCAN")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	cfg.SetDefault("base_url", ultradns.DefaultBaseURL)

	creds, err := credsfile.NewFile(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire credentials file: %w", err)
	}

	return &app{
		api: &ultradns.Client{
			BaseURL:    cfg.GetString("base_url"),
			HTTPClient: http.DefaultClient,
		},
		creds: creds,
		cfg:   cfg,
	}, nil
}
