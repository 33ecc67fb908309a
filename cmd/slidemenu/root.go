package main

import (
	"github.com/spf13/cobra"

	"github.com/mchmarny/slidemenu/pkg/config"
)

type rootOptions struct {
	cfgFile     string
	menu        string
	inline      bool
	metricsPort int
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "slidemenu",
		Short: "Sliding multi-level navigation menu for the terminal",
		Long: `slidemenu shows a menu definition as a stack of panels that slide
sideways as you move between levels. The menu opens in a drawer over the
page, or sits inline beside it with --inline.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, o)
		},
	}

	cmd.PersistentFlags().StringVar(&o.cfgFile, "config", config.DefaultPath, "config file path")
	cmd.Flags().StringVar(&o.menu, "menu", "", "menu definition file (overrides config)")
	cmd.Flags().BoolVar(&o.inline, "inline", false, "show the menu inline instead of in a drawer")
	cmd.Flags().IntVar(&o.metricsPort, "metrics-port", 0, "serve /metrics, /healthz and /menu on this port")

	cmd.AddCommand(newValidateCmd(o), newVersionCmd())

	return cmd
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig(cmd *cobra.Command, o *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("menu") {
		cfg.Menu = o.menu
	}
	if flags.Changed("inline") && o.inline {
		cfg.Mode = "inline"
	}
	if flags.Changed("metrics-port") {
		cfg.MetricsPort = o.metricsPort
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
