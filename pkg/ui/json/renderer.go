// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/latte/pkg/commands"
	"github.com/arthur-debert/latte/pkg/errors"
	"github.com/arthur-debert/latte/pkg/ui/report"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) (*Renderer, error) {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}, nil
}

// RenderResult renders the command result as JSON
func (r *Renderer) RenderResult(res *commands.Result) error {
	return r.encoder.Encode(res)
}

// RenderError renders an error as JSON, with its code and details
func (r *Renderer) RenderError(err error) error {
	errorObj := map[string]interface{}{
		"error": report.ErrorText(err),
		"code":  errors.GetErrorCode(err),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		errorObj["details"] = details
	}
	return r.encoder.Encode(errorObj)
}

// RenderWarning renders a warning as JSON
func (r *Renderer) RenderWarning(msg string) error {
	return r.encoder.Encode(map[string]string{"warning": msg})
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
