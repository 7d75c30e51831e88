// Package text provides plain text output without colors or styling
package text

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/latte/pkg/commands"
	"github.com/arthur-debert/latte/pkg/ui/report"
)

// Renderer writes reports as plain lines, suitable for pipes and logs
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders a command result
func (r *Renderer) RenderResult(res *commands.Result) error {
	rep := report.FromResult(res)

	for _, w := range rep.Warnings {
		if err := r.RenderWarning(w); err != nil {
			return err
		}
	}
	if rep.Success != "" {
		if _, err := fmt.Fprintf(r.output, "%s: %s\n", report.LabelSuccess, rep.Success); err != nil {
			return err
		}
	}
	if rep.Table != nil && len(rep.Table.Rows) > 0 {
		tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(rep.Table.Headers, "\t"))
		for _, row := range rep.Table.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	for _, f := range rep.Fields {
		if _, err := fmt.Fprintf(r.output, "%s: %s\n", f.Key, f.Value); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders err as an ERROR line
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "%s: %s\n", report.LabelError, report.ErrorText(err))
	return werr
}

// RenderWarning renders msg as a WARNING line
func (r *Renderer) RenderWarning(msg string) error {
	_, err := fmt.Fprintf(r.output, "%s: %s\n", report.LabelWarning, msg)
	return err
}

// RenderMessage writes msg
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
