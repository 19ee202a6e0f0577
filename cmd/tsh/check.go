package main

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/cstpack"
	"github.com/reoring/cstpack/timesheet"
)

type checkResult struct {
	OK      bool                                  `json:"ok"`
	Weeks   int                                   `json:"weeks,omitempty"`
	Packing *cstpack.PackingError[timesheet.Rule] `json:"packing_error,omitempty"`
	Syntax  *syntaxJSON                           `json:"syntax_error,omitempty"`
	Message string                                `json:"message,omitempty"`
}

type syntaxJSON struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

func newCheckCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Parse and pack a timesheet, reporting the first problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Format
			}
			if format != "text" && format != "json" {
				return fmt.Errorf("unsupported format %q", format)
			}
			src, err := readFile(args[0])
			if err != nil {
				return err
			}
			sheet, perr := timesheet.Parse(src)
			res := result(sheet, perr)
			a.log.Debug("checked timesheet", "file", args[0], "ok", res.OK)

			out := cmd.OutOrStdout()
			if format == "json" {
				b, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
			} else if res.OK {
				fmt.Fprintf(out, "ok: %d week(s)\n", res.Weeks)
			} else {
				fmt.Fprintln(out, perr)
			}
			if !res.OK {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	return cmd
}

func result(sheet timesheet.Weeks, err error) checkResult {
	if err == nil {
		return checkResult{OK: true, Weeks: len(sheet)}
	}
	if pe, ok := cstpack.AsPackingError[timesheet.Rule](err); ok {
		return checkResult{Packing: pe}
	}
	var serr *timesheet.SyntaxError
	if errors.As(err, &serr) {
		return checkResult{Syntax: &syntaxJSON{Line: serr.Pos.Line, Column: serr.Pos.Column, Message: serr.Message}}
	}
	return checkResult{Message: err.Error()}
}
