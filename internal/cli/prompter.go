package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/calcmaster/internal/engine"
)

var (
	// ErrBack is returned by a prompt when the user types one of the
	// navigation words (back, exit, menu, quit).
	ErrBack = errors.New("back to menu")
	// ErrInputClosed is returned when the input stream ends.
	ErrInputClosed = errors.New("input terminated")
)

var navigationWords = map[string]struct{}{
	"back": {},
	"exit": {},
	"menu": {},
	"quit": {},
}

// Prompter reads validated answers from the user and writes styled output.
type Prompter struct {
	writer     io.Writer
	reader     *NonBlockingReader
	interrupts *InterruptHandler
}

// NewPrompter creates a prompter with the given reader and writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// WithInterrupts scopes every prompt to h so that Ctrl+C cancels only the
// open prompt.
func (p *Prompter) WithInterrupts(h *InterruptHandler) *Prompter {
	p.interrupts = h
	return p
}

// Writer returns the output stream.
func (p *Prompter) Writer() io.Writer {
	return p.writer
}

// Println writes a line, logging rather than failing on write errors.
func (p *Prompter) Println(a ...any) {
	if _, err := fmt.Fprintln(p.writer, a...); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

// Success writes a success message.
func (p *Prompter) Success(format string, args ...any) {
	p.Println(FormatSuccess(fmt.Sprintf(format, args...)))
}

// Error writes an error message.
func (p *Prompter) Error(format string, args ...any) {
	p.Println(FormatError(fmt.Sprintf(format, args...)))
}

// Info writes an informational message.
func (p *Prompter) Info(format string, args ...any) {
	p.Println(FormatInfo(fmt.Sprintf(format, args...)))
}

// ShowResult renders a computation result.
func (p *Prompter) ShowResult(r engine.Result) {
	p.Println(RenderResult(r))
}

// Line prompts for a line of text. Navigation words return ErrBack.
func (p *Prompter) Line(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	readCtx := ctx
	if p.interrupts != nil {
		var release func()
		readCtx, release = p.interrupts.PromptContext(ctx)
		defer release()
	}

	line, err := p.reader.ReadLine(readCtx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", err
	}

	if _, nav := navigationWords[strings.ToLower(line)]; nav {
		return "", ErrBack
	}
	return line, nil
}

// Text prompts until a non-empty answer is given, or returns fallback for an
// empty answer when fallback is not empty.
func (p *Prompter) Text(ctx context.Context, prompt, fallback string) (string, error) {
	for {
		line, err := p.Line(ctx, prompt)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		if fallback != "" {
			return fallback, nil
		}
		p.Error("Input cannot be empty. Please try again.")
	}
}

// Number prompts until a finite number is entered.
func (p *Prompter) Number(ctx context.Context, prompt string) (float64, error) {
	for {
		line, err := p.Line(ctx, prompt)
		if err != nil {
			return 0, err
		}
		v, err := ParseNumber(line)
		if err == nil {
			return v, nil
		}
		p.Error("Invalid input. Please enter a valid number.")
	}
}

// Choice prompts for an option number in [1, maxChoice].
func (p *Prompter) Choice(ctx context.Context, maxChoice int) (int, error) {
	prompt := fmt.Sprintf("Select an option (1-%d)", maxChoice)
	for {
		line, err := p.Line(ctx, prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= maxChoice {
			return n, nil
		}
		p.Error("Please enter a number between 1 and %d.", maxChoice)
	}
}

// Select shows options numbered from 1 and returns the chosen one.
func (p *Prompter) Select(ctx context.Context, title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("nothing to select for %s", title)
	}
	var b strings.Builder
	for i, opt := range options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
	}
	p.Println(RenderBox(title, strings.TrimSuffix(b.String(), "\n")))

	n, err := p.Choice(ctx, len(options))
	if err != nil {
		return "", err
	}
	return options[n-1], nil
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	for {
		line, err := p.Line(ctx, question+" (y/n)")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.Error("Please answer y or n.")
	}
}

// ParseNumber parses a finite decimal number.
func ParseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}
