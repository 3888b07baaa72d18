// Package render prints boards, details and job listings for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/jobboard/internal/status"
)

const (
	// boxWidth is the width of printed boxes
	boxWidth = 72
	// maxRelatedJobs is how many related jobs a job page lists
	maxRelatedJobs = 3
)

var ansiColors = map[string]string{
	"yellow": "33",
	"blue":   "34",
	"green":  "32",
	"red":    "31",
	"purple": "35",
	"orange": "93",
	"gray":   "90",
}

// Printer writes formatted output.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter creates a Printer that writes to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// SetColor turns ANSI colors for status badges on or off.
func (p *Printer) SetColor(on bool) {
	p.color = on
}

// Badge renders a status style as "icon Label".
func (p *Printer) Badge(s status.Style) string {
	badge := s.Icon + " " + s.Label
	if code, ok := ansiColors[s.Color]; ok && p.color {
		return "\x1b[" + code + "m" + badge + "\x1b[0m"
	}
	return badge
}

// Linef writes one line.
//
//nolint:errcheck // writing to the terminal; errors are not recoverable
func (p *Printer) Linef(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// printBox prints a titled box. Long lines are wrapped, not cut.
//
//nolint:errcheck // writing to the terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, part := range wrap(line, inner) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(part, inner))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s to width characters. fmt's %-*s counts bytes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(stripANSI(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// wrap breaks line at spaces so no part exceeds width characters.
// Words longer than width are split.
func wrap(line string, width int) []string {
	if utf8.RuneCountInString(stripANSI(line)) <= width {
		return []string{line}
	}

	indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
	var parts []string
	var cur []rune
	for _, word := range strings.Fields(line) {
		w := []rune(word)
		for len(w) > width-len(indent) {
			if len(cur) > 0 {
				parts = append(parts, indent+string(cur))
				cur = nil
			}
			cut := width - len(indent)
			parts = append(parts, indent+string(w[:cut]))
			w = w[cut:]
		}
		switch {
		case len(cur) == 0:
			cur = w
		case len(indent)+len(cur)+1+len(w) <= width:
			cur = append(append(cur, ' '), w...)
		default:
			parts = append(parts, indent+string(cur))
			cur = w
		}
	}
	if len(cur) > 0 {
		parts = append(parts, indent+string(cur))
	}
	return parts
}

func stripANSI(s string) string {
	if !strings.Contains(s, "\x1b[") {
		return s
	}
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && r == 'm':
			inEscape = false
		case !inEscape:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
