// Package cli implements the routectl commands.
package cli

import (
	"context"

	"github.com/anoideaopen/pluginhost/core/logger"
	"github.com/anoideaopen/pluginhost/core/telemetry"
	"github.com/anoideaopen/pluginhost/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel     string
	logFormat    string
	otlpEndpoint string
	otlpCACerts  string

	log      *logrus.Entry
	shutdown func(context.Context) error
}

// NewRootCmd creates the routectl command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "routectl",
		Short:         "Inspect and validate plugin routing configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l := logger.New(opts.logLevel, opts.logFormat)
			l.SetOutput(cmd.ErrOrStderr())
			opts.log = l.WithField("module", "routectl")

			opts.shutdown = telemetry.InstallTraceProvider(&telemetry.CollectorEndpoint{
				Endpoint: opts.otlpEndpoint,
				CACerts:  opts.otlpCACerts,
			}, version.ServiceName())

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.shutdown == nil {
				return nil
			}

			return opts.shutdown(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "warning", "logging level (trace, debug, info, warning, error)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "logging format (text, json)")
	flags.StringVar(&opts.otlpEndpoint, "otlp-endpoint", "", "OTLP/HTTP collector host:port, tracing is disabled when empty")
	flags.StringVar(&opts.otlpCACerts, "otlp-ca-certs", "", "base64 encoded PEM CA certificates of the collector")

	cmd.AddCommand(
		newValidateCmd(opts),
		newPlanCmd(opts),
		newVersionCmd(),
	)

	return cmd
}
