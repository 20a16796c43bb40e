package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-doublefield/pkg/formatters/details"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var (
		formatterID string
		sets        []string
	)
	cmd := &cobra.Command{
		Use:   "summary [display-key]",
		Short: "Print the settings summary of a display or of explicit settings",
		Long: "Print the settings summary shown to administrators. With a display key\n" +
			"(entity.bundle.field[.view_mode]) the settings come from --config,\n" +
			"otherwise from repeated --set key=value flags.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			}
			f, err := resolveFormatter(opts, opts.formatters(), key, formatterID, sets)
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), opts.output, f.SettingsSummary())
		},
	}
	cmd.Flags().StringVar(&formatterID, "formatter", details.ID, "formatter id")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "setting as key=value; dotted keys address subfields (first.prefix=Q:)")
	return cmd
}
