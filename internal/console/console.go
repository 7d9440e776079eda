// Package console provides the interactive line-based input the secrets
// handler depends on, behind a small interface so tests can substitute a
// non-interactive stub.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type Console interface {
	// Confirm prints the prompt and reads a y/n answer; anything but "y" is no.
	Confirm(prompt string) (bool, error)
	// ReadLines collects lines until a blank line terminates input.
	ReadLines() ([]string, error)
}

type StdConsole struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *StdConsole {
	return &StdConsole{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (c *StdConsole) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(c.out, "%s", prompt)

	line, err := c.readLine()
	if err != nil {
		return false, err
	}

	return strings.EqualFold(line, "y"), nil
}

func (c *StdConsole) ReadLines() ([]string, error) {
	var lines []string

	for {
		line, err := c.readLine()
		if err != nil {
			if err == io.EOF {
				return lines, nil
			}
			return nil, err
		}
		if line == "" {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

func (c *StdConsole) readLine() (string, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}
