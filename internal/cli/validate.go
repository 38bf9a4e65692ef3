package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/anoideaopen/pluginhost/core/config"
	"github.com/anoideaopen/pluginhost/core/telemetry"
	"github.com/spf13/cobra"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	var (
		path           string
		checkPluginDir bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the extensibility configuration and check its routing invariants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			_, span := telemetry.Tracer(nil).Start(cmd.Context(), "routectl.validate")
			defer func() {
				telemetry.EndSpan(span, err)
			}()

			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			if err = cfg.Validate(); err != nil {
				root.log.WithError(err).WithField("config", path).Debug("validation failed")
				return err
			}

			if checkPluginDir {
				dir, err := cfg.PluginPath(filepath.Dir(path))
				if err != nil {
					return err
				}
				root.log.WithField("pluginDirectory", dir).Info("plugin directory resolved")
			}

			names := cfg.ContractNames()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "configuration is valid: %d contract(s) [%s]\n",
				len(names), strings.Join(names, ", "))

			return err
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "path to the extensibility configuration (json, yaml, toml, xml)")
	cmd.Flags().BoolVar(&checkPluginDir, "check-plugin-dir", false, "require the plugin directory to exist")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
