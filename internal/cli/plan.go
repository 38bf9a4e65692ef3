package cli

import (
	"slices"

	"github.com/anoideaopen/pluginhost/core/config"
	"github.com/anoideaopen/pluginhost/core/routing"
	"github.com/anoideaopen/pluginhost/core/routing/mux"
	"github.com/anoideaopen/pluginhost/core/telemetry"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Plan is the routing plan of a contract as printed by the plan command.
type Plan struct {
	Contract string        `yaml:"contract"`
	Primary  string        `yaml:"primary"`
	Methods  []MethodRoute `yaml:"methods"`
}

// MethodRoute is the owner of one contract method.
type MethodRoute struct {
	Method  string `yaml:"method"`
	Plugin  string `yaml:"plugin"`
	Primary bool   `yaml:"primary,omitempty"`
}

func newPlanCmd(root *rootOptions) *cobra.Command {
	var (
		path     string
		contract string
		methods  []string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the method to plugin assignment of a contract",
		Long: "Print the method to plugin assignment of a contract.\n\n" +
			"Without --methods only the claimed methods are listed; every other method is served by the primary plugin.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			_, span := telemetry.Tracer(nil).Start(cmd.Context(), "routectl.plan")
			defer func() {
				telemetry.EndSpan(span, err)
			}()
			span.SetAttributes(telemetry.Contract(contract))

			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			contractCfg, err := cfg.Contract(contract)
			if err != nil {
				return err
			}

			plan, err := BuildPlan(contractCfg, methods)
			if err != nil {
				return err
			}
			root.log.WithField("contract", contract).Debugf("planned %d method(s)", len(plan.Methods))

			out, err := yaml.Marshal(plan)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "path to the extensibility configuration (json, yaml, toml, xml)")
	cmd.Flags().StringVar(&contract, "contract", "", "name of the segmented contract")
	cmd.Flags().StringSliceVar(&methods, "methods", nil, "methods declared by the contract")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("contract")

	return cmd
}

// BuildPlan computes the routing plan of the contract configuration for the given
// method set. An empty method set stands for the claimed methods only.
func BuildPlan(cfg config.Contract, methods []string) (Plan, error) {
	if len(methods) == 0 {
		for _, p := range cfg.RoutablePlugins {
			methods = append(methods, p.MethodClaims...)
		}
	}

	declared := slices.Clone(methods)
	slices.Sort(declared)
	declared = slices.Compact(declared)

	assignments, err := mux.Plan(cfg, routing.Contract{Name: cfg.Name, Methods: declared})
	if err != nil {
		return Plan{}, err
	}

	primary, err := cfg.PrimaryPlugin()
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{
		Contract: cfg.Name,
		Primary:  primary.ID.String(),
		Methods:  make([]MethodRoute, 0, len(declared)),
	}
	for _, method := range declared {
		id := assignments[method]
		plan.Methods = append(plan.Methods, MethodRoute{
			Method:  method,
			Plugin:  id.String(),
			Primary: id == primary.ID,
		})
	}

	return plan, nil
}
