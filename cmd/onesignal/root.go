package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/onesignal/pkg/logger"
	"github.com/dmitrymomot/onesignal/pkg/onesignal"
)

// Version is set via ldflags at build time.
var Version = "dev"

type rootOptions struct {
	envFile  string
	verbose  bool
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "onesignal",
		Short: "Send notifications and export players via the OneSignal REST API",
		Long: `onesignal builds push, email and SMS notifications from YAML or JSON attribute
files and sends them to OneSignal. Credentials come from the environment
(ONESIGNAL_APP_ID, ONESIGNAL_REST_API_KEY) or a .env file.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := logger.ParseLevel(opts.logLevel); err != nil {
				return err
			}
			cmd.SetContext(logger.ContextWithAttrs(cmd.Context(), slog.String("command", cmd.Name())))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "path to a .env file (default ./.env if present)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug output including request and response bodies")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	cmd.AddCommand(newSendCmd(opts), newExportCmd(opts))
	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level, _ := logger.ParseLevel(o.logLevel)
	return logger.New(
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithTextFormatter(),
		logger.WithLevel(level),
		logger.WithVerbose(o.verbose),
	)
}

func (o *rootOptions) envFiles() []string {
	if o.envFile == "" {
		return nil
	}
	return []string{o.envFile}
}

func (o *rootOptions) client(cmd *cobra.Command) (*onesignal.Client, *slog.Logger, error) {
	cfg, err := onesignal.LoadConfig(o.envFiles()...)
	if err != nil {
		return nil, nil, err
	}
	if o.verbose {
		cfg.Debug = true
	}

	log := o.logger(cmd)
	client, err := onesignal.NewFromConfig(cfg, onesignal.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	return client, log, nil
}
