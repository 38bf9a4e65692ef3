package cli

import (
	"github.com/anoideaopen/pluginhost/version"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := version.Summary()
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(info)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
