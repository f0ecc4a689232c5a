package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var opts scanOptions

	rootCmd := &cobra.Command{
		Use:           "udnscan",
		Short:         "Scan UltraDNS sub-accounts for traffic-management pools",
		Long:          "udnscan authenticates against the UltraDNS management API, walks every sub-account's DNS zones, and reports the traffic-management pools it finds as JSON or CSV.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runScan(cmd, app, opts)
	}

	rootCmd.Flags().StringVar(&opts.username, "username", "", "Username for authentication")
	rootCmd.Flags().StringVar(&opts.password, "password", "", "Password for authentication")
	rootCmd.Flags().StringVar(&opts.token, "token", "", "Pre-obtained bearer token (mutually exclusive with --username/--password)")
	rootCmd.Flags().StringVar(&opts.profile, "profile", "", "Named profile from the credentials file, used when no credential flags are given")
	rootCmd.Flags().StringVar(&opts.outputFile, "output-file", "", "Output file name. If not provided, prints to terminal")
	rootCmd.Flags().StringVar(&opts.format, "format", "json", "Output format: json or csv")
	rootCmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Log every fetched API page")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
