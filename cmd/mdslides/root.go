package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kyaoi/mdslides/internal/app"
	"github.com/kyaoi/mdslides/internal/config"
	"github.com/kyaoi/mdslides/pkg/logging"
)

type rootOptions struct {
	configPath string
	theme      string
	autoPlay   bool
	tag        string
	include    []string
	noWatch    bool
	logLevel   string
	logFile    string
}

var rootOpts rootOptions

var rootCmd = newRootCmd(&rootOpts)

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdslides [deck.md | deck-dir]",
		Short: "Present Markdown slide decks in the terminal",
		Long: `mdslides presents a Markdown deck one full-screen slide at a time.

Slides are separated by lines containing only "---". Navigate with the
arrow keys, page keys, space, the mouse wheel or a vertical drag. Without a
deck argument the built-in nuclear fusion presentation is shown.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := setup(opts)
			if err != nil {
				return err
			}
			defer closeLog()

			target := ""
			if len(args) == 1 {
				target = args[0]
			}
			return app.Run(app.Options{
				Target:   target,
				Tag:      opts.tag,
				Include:  opts.include,
				Config:   cfg,
				Theme:    opts.theme,
				AutoPlay: opts.autoPlay,
				Watch:    !opts.noWatch,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (layered over ~/.config/mdslides/config.yaml and .mdslides/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "color theme: dark or light")
	cmd.Flags().BoolVar(&opts.autoPlay, "autoplay", false, "start with auto-play enabled")
	cmd.Flags().StringVar(&opts.tag, "tag", "", "only present files whose front matter lists this tag")
	cmd.Flags().StringSliceVar(&opts.include, "include", nil, "for directory decks, only present files matching these glob patterns (** allowed)")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "do not reload the deck when it changes on disk")

	cmd.AddCommand(newReplayCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// setup loads the configuration, applies flag overrides and initialises
// logging. The returned func closes the log file.
func setup(opts *rootOptions) (config.Config, func(), error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return config.Config{}, nil, err
	}

	var out io.Writer = io.Discard
	closeLog := func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return config.Config{}, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeLog = func() { _ = f.Close() }
	}
	logging.Init(level, out)
	return cfg, closeLog, nil
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mdslides version %s\n" .Version}}`)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
