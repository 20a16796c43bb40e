package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/goliatone/go-doublefield/pkg/formatter"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

type displayRow struct {
	Key       string         `json:"key"`
	Formatter string         `json:"formatter"`
	Summary   []string       `json:"summary"`
	Settings  map[string]any `json:"settings,omitempty"`
	Source    string         `json:"source,omitempty"`
}

// printOutput prints data in either JSON or table format.
func printOutput(w io.Writer, format string, v any) error {
	if format == outputJSON {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	switch x := v.(type) {
	case []formatter.Definition:
		tw := tablewriter.NewWriter(w)
		tw.SetHeader([]string{"ID", "Label", "Field types"})
		for _, def := range x {
			tw.Append([]string{def.ID, def.Label, strings.Join(def.FieldTypes, ",")})
		}
		tw.Render()
	case []displayRow:
		tw := tablewriter.NewWriter(w)
		tw.SetHeader([]string{"Display", "Formatter", "Summary"})
		tw.SetAutoWrapText(false)
		for _, row := range x {
			tw.Append([]string{row.Key, row.Formatter, strings.Join(row.Summary, "; ")})
		}
		tw.Render()
	case []string:
		for _, line := range x {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	return nil
}
