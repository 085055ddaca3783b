package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	isatty "github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ErrNoInput is returned when a password was expected on stdin but none was given.
var ErrNoInput = errors.New("no password given on stdin")

// IO is the terminal the commands read passwords from and write results to.
type IO interface {
	Output() io.Writer
	Errors() io.Writer
	// ReadPassword reads a password without echo when stdin is a terminal,
	// or the first line of stdin when it is piped.
	ReadPassword(prompt string) (string, error)
}

type standardIO struct {
	input  *os.File
	output *os.File
	errors *os.File
}

// NewStdIO returns an IO backed by os.Stdin, os.Stdout and os.Stderr.
func NewStdIO() IO {
	return standardIO{input: os.Stdin, output: os.Stdout, errors: os.Stderr}
}

func (o standardIO) Output() io.Writer { return o.output }
func (o standardIO) Errors() io.Writer { return o.errors }

func (o standardIO) ReadPassword(prompt string) (string, error) {
	if !isTerminal(o.input) {
		return readln(o.input)
	}

	// The prompt goes to stderr so stdout stays clean for piping.
	fmt.Fprint(o.errors, prompt)
	password, err := term.ReadPassword(int(o.input.Fd()))
	fmt.Fprintln(o.errors)
	if err != nil {
		return "", fmt.Errorf("could not read password: %w", err)
	}
	return string(password), nil
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// readln reads one line from r without the line terminator.
func readln(r io.Reader) (string, error) {
	s := bufio.NewScanner(r)
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return "", fmt.Errorf("could not read input: %w", err)
		}
		return "", ErrNoInput
	}
	return strings.TrimSuffix(s.Text(), "\r"), nil
}

// Clipper writes to the clipboard.
type Clipper interface {
	WriteAll(value string) error
}

type systemClipboard struct{}

// NewClipboard returns a Clipper for the system clipboard.
func NewClipboard() Clipper {
	return systemClipboard{}
}

func (systemClipboard) WriteAll(value string) error {
	if err := clipboard.WriteAll(value); err != nil {
		return fmt.Errorf("cannot write to clipboard: %w", err)
	}
	return nil
}
