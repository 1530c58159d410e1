package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.render(fmt.Sprintf(format, a...))
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// noColor returns true if color output should be disabled.
func noColor() bool {
	// https://no-color.org/
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

var (
	// Code formats runnable commands and Lua snippets.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats file paths.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Flag formats CLI flags like --strict.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	// Algorithm formats digest, cipher and key type names.
	Algorithm = Formatter{color.New(color.FgCyan), "'", "'"}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	Info    = Formatter{color.New(color.FgCyan), "", ""}

	// Muted formats secondary text such as field labels.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)

// Verdict renders the outcome of a signature check.
func Verdict(valid bool) string {
	if valid {
		return Success.Sprint("✓") + " signature valid"
	}
	return Error.Sprint("✗") + " signature invalid"
}

// Field is one labelled line of Fields output.
type Field struct {
	Label string
	Value string
}

// Fields renders label/value pairs with the values aligned.
func Fields(fields []Field) string {
	width := 0
	for _, f := range fields {
		if len(f.Label) > width {
			width = len(f.Label)
		}
	}

	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f.Label)
		b.WriteString(":")
		b.WriteString(strings.Repeat(" ", width-len(f.Label)+1))
		b.WriteString(f.Value)
		b.WriteString("\n")
	}
	return b.String()
}
