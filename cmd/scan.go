package cmd

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/udns-tools/udnscan/internal/adapters/render"
	"github.com/udns-tools/udnscan/internal/application"
	"github.com/udns-tools/udnscan/internal/domain"
)

type scanOptions struct {
	username   string
	password   string
	token      string
	profile    string
	outputFile string
	format     string
	verbose    bool
}

func runScan(cmd *cobra.Command, app *app, opts scanOptions) error {
	log.SetOutput(cmd.ErrOrStderr())
	if opts.verbose {
		log.SetLevel(log.DebugLevel)
	}

	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	creds, err := resolveCredentials(app, opts)
	if err != nil {
		return err
	}
	if err := creds.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	session, err := authenticate(ctx, app, creds)
	if err != nil {
		return err
	}

	records, err := scanWithProgress(ctx, cmd.ErrOrStderr(), app, session)
	if err != nil {
		return err
	}

	content, err := render.Report(records, format)
	if err != nil {
		return err
	}

	return render.Write(content, opts.outputFile, cmd.OutOrStdout())
}

// resolveCredentials picks the credential source: explicit flags win, then a
// named profile, then the UDNSCAN_USERNAME / UDNSCAN_PASSWORD / UDNSCAN_TOKEN
// environment. Validation happens at the caller, before any network call.
func resolveCredentials(app *app, opts scanOptions) (domain.Credentials, error) {
	creds := domain.Credentials{
		Username: opts.username,
		Password: opts.password,
		Token:    opts.token,
	}
	if creds.HasToken() || creds.HasPair() {
		return creds, nil
	}

	if opts.profile != "" {
		return app.creds.Load(opts.profile)
	}

	return domain.Credentials{
		Username: app.cfg.GetString("username"),
		Password: app.cfg.GetString("password"),
		Token:    app.cfg.GetString("token"),
	}, nil
}

func authenticate(ctx context.Context, app *app, creds domain.Credentials) (domain.Session, error) {
	// A supplied token is used as-is, without a validation call.
	if creds.HasToken() {
		return domain.Session(creds.Token), nil
	}

	return app.api.Login(ctx, creds.Username, creds.Password)
}

func scanWithProgress(ctx context.Context, progressOut io.Writer, app *app, session domain.Session) ([]domain.PoolRecord, error) {
	var records []domain.PoolRecord

	scan := func(ctx context.Context, observe func(application.Progress)) error {
		result, err := application.NewScanner(app.api, observe).Scan(ctx, session)
		if err != nil {
			return err
		}
		records = result
		return nil
	}

	if err := runScanSpinner(ctx, progressOut, scan); err != nil {
		return nil, err
	}

	return records, nil
}
