// Package output handles formatting and displaying CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ramarlina/lqa-cli/pkg/api"
)

// Format represents the output format type.
type Format int

const (
	FormatHuman Format = iota
	FormatJSON
	FormatRaw
)

// Printer handles output formatting. It is also the CLI's failure notifier.
type Printer struct {
	mu        sync.Mutex
	writer    io.Writer
	errWriter io.Writer
	format    Format
	quiet     bool
	noANSI    bool
}

// New creates a new output printer.
func New(format Format, quiet, noANSI bool) *Printer {
	return NewWithWriters(os.Stdout, os.Stderr, format, quiet, noANSI)
}

// NewWithWriters creates a printer that writes to out and errOut.
func NewWithWriters(out, errOut io.Writer, format Format, quiet, noANSI bool) *Printer {
	return &Printer{
		writer:    out,
		errWriter: errOut,
		format:    format,
		quiet:     quiet,
		noANSI:    noANSI,
	}
}

// Success prints a success response.
func (p *Printer) Success(result interface{}) error {
	switch p.format {
	case FormatJSON:
		return p.printJSON(p.writer, api.Envelope[interface{}]{
			Code: api.CodeOK,
			Data: result,
		})
	case FormatRaw:
		p.write(p.writer, "%v\n", result)
		return nil
	default:
		if !p.quiet {
			p.write(p.writer, "%v\n", result)
		}
		return nil
	}
}

// Envelope prints a server envelope as received.
func (p *Printer) Envelope(env any) error {
	return p.printJSON(p.writer, env)
}

// Error prints a local error, one that did not come back from the server.
func (p *Printer) Error(err error) error {
	switch p.format {
	case FormatJSON:
		p.printJSON(p.errWriter, map[string]string{"error": err.Error()})
	default:
		p.write(p.errWriter, "error: %v\n", err)
	}
	return err
}

// Notify surfaces a failure message reported by the API client.
func (p *Printer) Notify(message string) {
	switch p.format {
	case FormatJSON:
		p.printJSON(p.errWriter, map[string]string{"error": message})
	default:
		p.write(p.errWriter, "error: %s\n", message)
	}
}

// Print prints arbitrary data.
func (p *Printer) Print(format string, args ...interface{}) {
	p.Printf(format, args...)
}

// Printf prints formatted data.
func (p *Printer) Printf(format string, args ...interface{}) {
	if p.quiet && p.format != FormatJSON {
		return
	}
	p.write(p.writer, format, args...)
}

// Println prints a line of arbitrary data.
func (p *Printer) Println(args ...interface{}) {
	if p.quiet && p.format != FormatJSON {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.writer, args...)
}

// Table prints data in table format (only in human mode).
func (p *Printer) Table(headers []string, rows [][]string) error {
	if p.format != FormatHuman {
		return nil
	}

	if len(headers) == 0 || len(rows) == 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = displayWidth(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && displayWidth(cell) > widths[i] {
				widths[i] = displayWidth(cell)
			}
		}
	}

	for i, h := range headers {
		fmt.Fprint(p.writer, pad(h, widths[i]))
	}
	fmt.Fprintln(p.writer)

	for i := range headers {
		for j := 0; j < widths[i]; j++ {
			fmt.Fprint(p.writer, "-")
		}
		fmt.Fprint(p.writer, "  ")
	}
	fmt.Fprintln(p.writer)

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				fmt.Fprint(p.writer, pad(cell, widths[i]))
			}
		}
		fmt.Fprintln(p.writer)
	}

	return nil
}

// displayWidth counts runes; CJK titles would otherwise break alignment by
// byte length.
func displayWidth(s string) int {
	return len([]rune(s))
}

func pad(s string, width int) string {
	n := width - displayWidth(s)
	if n < 0 {
		n = 0
	}
	return s + fmt.Sprintf("%*s", n+2, "")
}

func (p *Printer) write(w io.Writer, format string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(w, format, args...)
}

// printJSON marshals and prints JSON output.
func (p *Printer) printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	p.write(w, "%s\n", data)
	return nil
}

// IsJSON returns true if the output format is JSON.
func (p *Printer) IsJSON() bool {
	return p.format == FormatJSON
}

// IsRaw returns true if the output format is raw.
func (p *Printer) IsRaw() bool {
	return p.format == FormatRaw
}

// IsQuiet returns true if quiet mode is enabled.
func (p *Printer) IsQuiet() bool {
	return p.quiet
}
