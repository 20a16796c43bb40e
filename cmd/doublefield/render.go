package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-doublefield/pkg/field"
	"github.com/goliatone/go-doublefield/pkg/formatters/details"
	"github.com/goliatone/go-doublefield/pkg/orchestrator"
	"github.com/goliatone/go-doublefield/pkg/render"
	"github.com/goliatone/go-doublefield/pkg/renderers/html"
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		formatterID string
		sets        []string
		itemsPath   string
		rendererID  string
		outPath     string
	)
	cmd := &cobra.Command{
		Use:   "render [display-key]",
		Short: "Render field items through a formatter",
		Long: "Render a JSON list of items ([{\"first\": \"...\", \"second\": \"...\"}]) read\n" +
			"from --items (or stdin with -) using a stored display or --formatter/--set.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readItems(cmd.InOrStdin(), itemsPath)
			if err != nil {
				return err
			}

			var key string
			if len(args) == 1 {
				key = args[0]
			}
			registry := opts.formatters()
			f, err := resolveFormatter(opts, registry, key, formatterID, sets)
			if err != nil {
				return err
			}

			orch := orchestrator.New(
				orchestrator.WithFormatters(registry),
				orchestrator.WithLogger(opts.logger),
			)
			res, err := orch.Generate(cmd.Context(), orchestrator.Request{
				Formatter:     f.Definition().ID,
				Settings:      f.Settings(),
				Items:         items,
				Renderer:      rendererID,
				RenderOptions: render.RenderOptions{Locale: opts.locale},
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outPath != "" {
				if err := os.WriteFile(outPath, res.Output, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				_, err = fmt.Fprintf(cmd.ErrOrStderr(), "Rendered %d item(s) to %s\n", res.Elements.Len(), outPath)
				return err
			}
			_, err = fmt.Fprintln(out, string(res.Output))
			return err
		},
	}
	cmd.Flags().StringVar(&formatterID, "formatter", details.ID, "formatter id")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "setting as key=value; dotted keys address subfields")
	cmd.Flags().StringVar(&itemsPath, "items", "-", "items JSON file, - for stdin")
	cmd.Flags().StringVar(&rendererID, "renderer", html.Name, "renderer (html|json)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (stdout if empty)")
	return cmd
}

func readItems(stdin io.Reader, path string) (field.ItemList, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	var items []field.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return field.NewItemList(items...), nil
}
