package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-doublefield/pkg/display"
)

func newFormattersCmd(opts *rootOptions) *cobra.Command {
	var fieldType string
	cmd := &cobra.Command{
		Use:   "formatters",
		Short: "List registered formatters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := opts.formatters()
			defs := registry.List()
			if fieldType != "" {
				defs = registry.ForFieldType(fieldType)
			}
			return printOutput(cmd.OutOrStdout(), opts.output, defs)
		},
	}
	cmd.Flags().StringVar(&fieldType, "field-type", "", "only list formatters applicable to this field type")
	return cmd
}

func newDisplaysCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "displays",
		Short: "List displays from --config with their settings summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := opts.formatters()
			store, err := opts.displays(registry)
			if err != nil {
				return err
			}
			rows := []displayRow{}
			for _, key := range store.Keys() {
				rows = append(rows, newDisplayRow(store, key))
			}
			return printOutput(cmd.OutOrStdout(), opts.output, rows)
		},
	}
}

func newDisplayRow(store *display.Store, key display.Key) displayRow {
	d, _ := store.Get(key)
	row := displayRow{
		Key:       key.String(),
		Formatter: d.Formatter,
		Settings:  d.Settings,
		Source:    d.Source,
	}
	if f, err := store.Formatter(key, nil); err == nil {
		row.Summary = f.SettingsSummary()
	}
	return row
}
