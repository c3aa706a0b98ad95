package main

import (
	"fmt"
	"io"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/validation"
)

func printValidationReport(out io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(out, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintf(out, "  [%s] %s\n", e.Level, e.Message)
			if e.Path != "" {
				fmt.Fprintf(out, "    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Fprintf(out, "    expected: %s\n", e.Expected)
			}
			for _, s := range e.Suggestions {
				fmt.Fprintf(out, "    * %s\n", s)
			}
		}
		fmt.Fprintln(out)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(out, "WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Fprintf(out, "  [%s] %s\n", w.Level, w.Message)
			if w.Path != "" {
				fmt.Fprintf(out, "    -> %s = %v\n", w.Path, w.ActualValue)
			}
			if w.Expected != "" {
				fmt.Fprintf(out, "    expected: %s\n", w.Expected)
			}
			for _, s := range w.Suggestions {
				fmt.Fprintf(out, "    * %s\n", s)
			}
		}
		fmt.Fprintln(out)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(out, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(out, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(out)
	}

	if r.Valid {
		fmt.Fprintf(out, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(out, "Result: INVALID (%s)\n", r.Summary)
	}
}
