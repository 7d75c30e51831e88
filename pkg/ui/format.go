package ui

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/latte/pkg/errors"
)

// Format is an output format
type Format int

const (
	// FormatAuto picks FormatTerminal or FormatText from the output
	FormatAuto Format = iota
	// FormatTerminal renders colored status lines and tables
	FormatTerminal
	// FormatText renders plain lines
	FormatText
	// FormatJSON renders one JSON document per result
	FormatJSON
)

// Formats lists the accepted values of the --format flag
var Formats = []string{"auto", "term", "text", "json"}

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a --format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format %q, expected one of %s", s, strings.Join(Formats, ", "))
	}
}

// Choose resolves the format requested on the command line. noColor turns
// a terminal request, explicit or detected, into plain text.
func Choose(requested string, noColor bool, output *os.File) (Format, error) {
	format, err := ParseFormat(requested)
	if err != nil {
		return format, err
	}
	if format == FormatAuto {
		format = DetectFormat(output)
	}
	if noColor && format == FormatTerminal {
		format = FormatText
	}
	return format, nil
}

// DetectFormat picks terminal output for colour-capable terminals and plain
// text for everything else, including when NO_COLOR is set
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	if output == nil || !isTerminal(output) {
		return FormatText
	}
	if termenv.NewOutput(output).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
