package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kyaoi/mdslides/internal/deck"
	"github.com/kyaoi/mdslides/internal/replay"
	"github.com/kyaoi/mdslides/internal/slides"
)

func newReplayCmd(opts *rootOptions) *cobra.Command {
	var (
		scriptPath string
		minSwipe   float64
	)
	cmd := &cobra.Command{
		Use:   "replay --script events.yaml [deck.md | deck-dir]",
		Short: "Drive the slide controller from a scripted event list",
		Long: `replay feeds a YAML list of input events to the slide controller on
virtual time and prints the navigation state after every step. No terminal
UI is started.

Example script:

  steps:
    - event: key
      key: End
    - event: key
      key: Home
    - after: 800ms
      event: wait`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if scriptPath == "" {
				return fmt.Errorf("--script is required")
			}
			cfg, closeLog, err := setup(opts)
			if err != nil {
				return err
			}
			defer closeLog()

			target := ""
			if len(args) == 1 {
				target = args[0]
			}
			d, err := deck.Load(target)
			if err != nil {
				return err
			}
			script, err := replay.LoadScript(scriptPath)
			if err != nil {
				return err
			}
			// Replay uses the controller's own gesture threshold, not the
			// terminal-row one from the config.
			ctrlCfg := cfg.Navigation.Controller()
			ctrlCfg.MinSwipeDistance = minSwipe
			_, err = replay.Run(d.Slides, ctrlCfg, script, cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().StringVar(&scriptPath, "script", "", "YAML event script")
	cmd.Flags().Float64Var(&minSwipe, "min-swipe", slides.DefaultMinSwipeDistance, "minimum swipe distance in script units")
	return cmd
}
