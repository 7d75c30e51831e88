// Package ui renders command results in one of three formats: rich
// terminal output, plain text and JSON.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/latte/pkg/commands"
	"github.com/arthur-debert/latte/pkg/ui/json"
	"github.com/arthur-debert/latte/pkg/ui/terminal"
	"github.com/arthur-debert/latte/pkg/ui/text"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderResult renders the outcome of a command
	RenderResult(res *commands.Result) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderWarning renders a warning status line
	RenderWarning(msg string) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// Auto picks terminal or text output from the capabilities of output.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
