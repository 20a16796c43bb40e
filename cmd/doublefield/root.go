package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	doublefield "github.com/goliatone/go-doublefield"
	"github.com/goliatone/go-doublefield/pkg/display"
	"github.com/goliatone/go-doublefield/pkg/formatter"
)

type rootOptions struct {
	configPath string
	output     string
	logLevel   string
	locale     string

	logger *zap.SugaredLogger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop().Sugar()}

	cmd := &cobra.Command{
		Use:          "doublefield",
		Short:        "Configure and render double field displays",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.output {
			case outputTable, outputJSON:
			default:
				return fmt.Errorf("unsupported --output %q (want table|json)", opts.output)
			}
			logger, err := newLogger(opts.logLevel)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "display configuration file or directory (YAML/JSON)")
	flags.StringVar(&opts.output, "output", outputTable, "output format (table|json)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	flags.StringVar(&opts.locale, "locale", "", "locale passed to the translator")

	cmd.AddCommand(newFormattersCmd(opts))
	cmd.AddCommand(newDisplaysCmd(opts))
	cmd.AddCommand(newSummaryCmd(opts))
	cmd.AddCommand(newRenderCmd(opts))
	cmd.AddCommand(newConfigureCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	return cmd
}

func (o *rootOptions) formatters() *formatter.Registry {
	return doublefield.NewFormatterRegistry(
		formatter.WithLogger(o.logger),
		formatter.WithLocale(o.locale),
	)
}

// displays loads --config. A missing file yields an empty store so configure
// can create it.
func (o *rootOptions) displays(registry *formatter.Registry) (*display.Store, error) {
	if o.configPath == "" {
		return display.NewStore(registry), nil
	}
	if _, err := os.Stat(o.configPath); errors.Is(err, fs.ErrNotExist) {
		o.logger.Debugw("display config missing, starting empty", "path", o.configPath)
		return display.NewStore(registry), nil
	}
	store, err := doublefield.LoadDisplaysFromPath(o.configPath, registry)
	if err != nil {
		return nil, err
	}
	o.logger.Debugw("loaded displays", "path", o.configPath, "count", len(store.Keys()))
	return store, nil
}
