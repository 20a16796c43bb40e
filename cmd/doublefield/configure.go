package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-doublefield/pkg/display"
	"github.com/goliatone/go-doublefield/pkg/field"
	"github.com/goliatone/go-doublefield/pkg/formatter"
	"github.com/goliatone/go-doublefield/pkg/prompt"
)

// newDriver is swapped in tests.
var newDriver = prompt.NewSurveyDriver

func newConfigureCmd(opts *rootOptions) *cobra.Command {
	var (
		formatterID string
		writePath   string
	)
	cmd := &cobra.Command{
		Use:   "configure <display-key>",
		Short: "Interactively edit the formatter settings of a display",
		Long: "Walk the formatter settings form for a display and save the result.\n" +
			"The updated configuration is written to --write, or --config when it\n" +
			"names a file, or stdout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := display.ParseKey(args[0])
			if err != nil {
				return err
			}
			registry := opts.formatters()
			store, err := opts.displays(registry)
			if err != nil {
				return err
			}
			driver := newDriver()

			current, exists := store.Get(key)
			id := formatterID
			if id == "" && exists {
				id = current.Formatter
			}
			if id == "" {
				if id, err = chooseFormatter(cmd, driver, registry); err != nil {
					return err
				}
			}
			f, err := registry.Get(id)
			if err != nil {
				return err
			}
			if exists && current.Formatter == id {
				f = f.WithSettings(current.Settings)
			}

			values, err := prompt.Fill(cmd.Context(), driver, f.SettingsForm(&formatter.FormState{Values: f.Settings()}))
			if err != nil {
				if errors.Is(err, prompt.ErrAborted) {
					return errors.New("configure aborted")
				}
				return err
			}
			if err := store.Set(display.Display{Key: key, Formatter: id, Settings: values}); err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := store.Save(&buf); err != nil {
				return err
			}
			target := writePath
			if target == "" && opts.configPath != "" && isFile(opts.configPath) {
				target = opts.configPath
			}
			if target == "" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write displays: %w", err)
			}

			bound := f.WithSettings(values)
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s to %s\n", key, target)
			for _, line := range bound.SettingsSummary() {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&formatterID, "formatter", "", "formatter id (prompted when the field type has several)")
	cmd.Flags().StringVar(&writePath, "write", "", "file to write the updated configuration to")
	return cmd
}

func chooseFormatter(cmd *cobra.Command, driver prompt.Driver, registry *formatter.Registry) (string, error) {
	defs := registry.ForFieldType(field.TypeDoubleField)
	switch len(defs) {
	case 0:
		return "", fmt.Errorf("no formatter for field type %q: %w", field.TypeDoubleField, formatter.ErrFormatterNotFound)
	case 1:
		return defs[0].ID, nil
	}
	labels := make([]string, len(defs))
	for i, def := range defs {
		labels[i] = fmt.Sprintf("%s (%s)", def.Label, def.ID)
	}
	idx, err := driver.Select(cmd.Context(), prompt.SelectConfig{Message: "Formatter", Options: labels})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(defs) {
		return "", fmt.Errorf("invalid formatter choice %d", idx)
	}
	return defs[idx].ID, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return true
	}
	return err == nil && !info.IsDir()
}
