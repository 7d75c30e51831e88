// Package terminal provides rich terminal output with colors and tables
package terminal

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/latte/pkg/commands"
	"github.com/arthur-debert/latte/pkg/ui/report"
	"github.com/arthur-debert/latte/pkg/ui/styles"
)

// Renderer draws status lines with lipgloss and tables with pterm
type Renderer struct {
	output io.Writer
	styles styles.Registry
}

// New creates a new terminal renderer writing to w
func New(w io.Writer) (*Renderer, error) {
	return NewWithStyles(w, styles.Default(lipgloss.NewRenderer(w)))
}

// NewWithStyles creates a terminal renderer using reg
func NewWithStyles(w io.Writer, reg styles.Registry) (*Renderer, error) {
	return &Renderer{output: w, styles: reg}, nil
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
		if err := r.status("Success", report.LabelSuccess, rep.Success); err != nil {
			return err
		}
	}
	if rep.Table != nil {
		if err := r.table(res.Command, rep.Table); err != nil {
			return err
		}
	}
	for _, f := range rep.Fields {
		if _, err := fmt.Fprintln(r.output, r.styles.Render("Key", f.Key)+" "+f.Value); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders err as an ERROR status line
func (r *Renderer) RenderError(err error) error {
	return r.status("Error", report.LabelError, report.ErrorText(err))
}

// RenderWarning renders msg as a WARNING status line
func (r *Renderer) RenderWarning(msg string) error {
	return r.status("Warning", report.LabelWarning, msg)
}

// RenderMessage writes msg unstyled
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) status(style, label, msg string) error {
	_, err := fmt.Fprintf(r.output, "%s: %s\n", r.styles.Render(style, label), msg)
	return err
}

func (r *Renderer) table(cmd commands.CommandType, t *report.Table) error {
	if len(t.Rows) == 0 {
		return nil
	}

	data := pterm.TableData{t.Headers}
	for _, row := range t.Rows {
		styled := make([]string, len(row))
		copy(styled, row)
		if cmd == commands.CommandListRepos {
			styled[0] = r.styles.Render("Nickname", row[0])
			styled[1] = r.styles.Render("URL", row[1])
		} else {
			styled[0] = r.styles.Render("Package", row[0])
		}
		data = append(data, styled)
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, out)
	return err
}
