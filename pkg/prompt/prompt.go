// Package prompt implements the question transport used by the setup flow
// and the plugin wizard.
//
// Two question shapes exist: a choice among an ordered list of options,
// rendered as a 1-based numbered menu, and free-text input with an optional
// suggested default. Invalid input is never an error; the prompter warns and
// asks again until it gets an answer it can use. The only failure mode is
// the underlying reader ending or breaking.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// Prompter asks questions on an output writer and reads answers line by line
// from an input reader.
type Prompter struct {
	scanner *bufio.Scanner
	output  io.Writer
	warn    pterm.PrefixPrinter
}

// Config configures a Prompter.
type Config struct {
	Input  io.Reader
	Output io.Writer
}

// NewPrompter creates a Prompter. A nil config uses stdin and stdout.
func NewPrompter(config *Config) *Prompter {
	if config == nil {
		config = &Config{}
	}
	in := config.Input
	if in == nil {
		in = os.Stdin
	}
	out := config.Output
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		scanner: bufio.NewScanner(in),
		output:  out,
		warn:    *pterm.Warning.WithWriter(out),
	}
}

// AskChoice presents message followed by a numbered list of options and
// returns the chosen option. It re-prompts, without limit, until the answer
// parses as an integer within [1, len(options)].
func (p *Prompter) AskChoice(message string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("choice %q has no options", message)
	}

	fmt.Fprintln(p.output, pterm.Cyan(message))
	for i, option := range options {
		fmt.Fprintf(p.output, "  %d) %s\n", i+1, option)
	}

	for {
		fmt.Fprintf(p.output, "Select 1-%d: ", len(options))
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		index, convErr := strconv.Atoi(line)
		if convErr != nil || index < 1 || index > len(options) {
			p.warn.Printfln("Please enter a number between 1 and %d", len(options))
			continue
		}
		return options[index-1], nil
	}
}

// AskInput asks for free-text input. When def is non-empty it is shown as a
// suggestion and substituted for an empty answer; otherwise an empty answer
// yields the empty string. The answer is trimmed of surrounding whitespace,
// how an empty result is interpreted is up to the caller.
func (p *Prompter) AskInput(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.output, "%s [default: %s]: ", pterm.Cyan(label), def)
	} else {
		fmt.Fprintf(p.output, "%s: ", pterm.Cyan(label))
	}

	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Confirm asks a Yes/No choice and maps the answer to a bool.
func (p *Prompter) Confirm(message string) (bool, error) {
	answer, err := p.AskChoice(message, []string{"Yes", "No"})
	if err != nil {
		return false, err
	}
	return answer == "Yes", nil
}

// Warnf prints a warning on the prompter's output. Flows use it for
// semantic rejections (duplicate names and the like) that re-prompt rather
// than fail.
func (p *Prompter) Warnf(format string, args ...any) {
	p.warn.Printfln(format, args...)
}

// Output returns the writer the prompter prints to, so callers can render
// summaries alongside the questions.
func (p *Prompter) Output() io.Writer {
	return p.output
}

func (p *Prompter) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", fmt.Errorf("failed to read input: %w", io.EOF)
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}
