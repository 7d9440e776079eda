package console

import (
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	var out strings.Builder

	c := NewConsole(strings.NewReader("y\n"), &out)

	ok, err := c.Confirm("continue? (y/n): ")
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if !ok {
		t.Errorf("expected y to confirm")
	}
	if !strings.Contains(out.String(), "continue?") {
		t.Errorf("expected prompt to be printed")
	}
}

func TestConfirmDeclined(t *testing.T) {
	c := NewConsole(strings.NewReader("n\n"), &strings.Builder{})

	ok, err := c.Confirm("continue? (y/n): ")
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if ok {
		t.Errorf("expected n to decline")
	}
}

func TestReadLinesStopsAtBlankLine(t *testing.T) {
	c := NewConsole(strings.NewReader("API_KEY=abc\nDB_URL=postgres://db\n\nIGNORED=yes\n"), &strings.Builder{})

	lines, err := c.ReadLines()
	if err != nil {
		t.Fatalf("read lines failed: %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "API_KEY=abc" || lines[1] != "DB_URL=postgres://db" {
		t.Errorf("unexpected lines: %v", lines)
	}
}

func TestReadLinesAtEOF(t *testing.T) {
	c := NewConsole(strings.NewReader("ONLY=one"), &strings.Builder{})

	lines, err := c.ReadLines()
	if err != nil {
		t.Fatalf("read lines failed: %v", err)
	}

	if len(lines) != 1 || lines[0] != "ONLY=one" {
		t.Errorf("unexpected lines: %v", lines)
	}
}
