// Package output formats admin command output for the terminal.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer writes status lines, colored when the terminal allows it.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter writes to out and err. Colors follow fatih/color's terminal
// detection, which honours NO_COLOR.
func NewPrinter(out, err io.Writer) *Printer {
	return &Printer{out: out, err: err, useColors: !color.NoColor && os.Getenv("TERM") != "dumb"}
}

func (p *Printer) Info(format string, args ...any) {
	if p.useColors {
		color.New(color.FgCyan).Fprintf(p.out, format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Success(format string, args ...any) {
	if p.useColors {
		color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, "✓ "+format+"\n", args...)
}

func (p *Printer) Warning(format string, args ...any) {
	if p.useColors {
		color.New(color.FgYellow).Fprintf(p.err, "⚠ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.err, "⚠ "+format+"\n", args...)
}

// Status renders an applied/pending marker.
func (p *Printer) Status(applied bool) string {
	if applied {
		if p.useColors {
			return color.GreenString("applied")
		}
		return "applied"
	}
	if p.useColors {
		return color.YellowString("pending")
	}
	return "pending"
}
