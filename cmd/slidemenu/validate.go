package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mchmarny/slidemenu/pkg/menu"
	"github.com/mchmarny/slidemenu/pkg/schedule"
	"github.com/mchmarny/slidemenu/pkg/slider"
)

// errDroppedPanels fails strict validation.
var errDroppedPanels = errors.New("menu has panels that cannot be shown")

func newValidateCmd(o *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [menu]",
		Short: "Check a menu definition and list the panels it would drop",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			} else {
				cfg, err := loadConfig(cmd, o)
				if err != nil {
					return err
				}
				path = cfg.Menu
			}
			return validate(cmd, path, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any panel is dropped")

	return cmd
}

// validate assembles the panel tree without a terminal.
func validate(cmd *cobra.Command, path string, strict bool) error {
	m, err := menu.Load(path)
	if err != nil {
		return err
	}

	var dropped []error
	s, err := slider.New(m.SliderConfig(slider.ModeDrawer, nil),
		slider.WithScheduler(schedule.NewManual(time.Now())),
		slider.WithReporter(func(err error) { dropped = append(dropped, err) }))
	if err != nil {
		return fmt.Errorf("building menu %s: %w", path, err)
	}
	defer s.Destroy()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d panels, %d dropped, active %q\n",
		path, len(s.Tree().Panels), len(dropped), s.Active().ID)
	for _, err := range dropped {
		fmt.Fprintf(out, "  dropped: %v\n", err)
	}

	if strict && len(dropped) > 0 {
		return fmt.Errorf("%w: %d", errDroppedPanels, len(dropped))
	}
	return nil
}
