package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/san-kum/shearsim/internal/dynamo"
)

// TableHeader is the column header shared by the console and file tables.
const TableHeader = "Waktu(s)\tx1(m)\t\tx2(m)\t\tv1(m/s)\tv2(m/s)\tEnergi(J)"

const (
	fileRowFormat    = "%.3f\t%.8f\t%.8f\t%.8f\t%.8f\t%.4f\n"
	consoleRowFormat = "%.1f\t%.6f\t%.6f\t%.6f\t%.6f\t%.2f\n"
	consoleRule      = "--------------------------------------------------------------"
)

// Table is a dynamo.Observer that writes every n-th loop sample as a
// tab-separated row. Write errors are kept and reported by Flush.
type Table struct {
	w      *bufio.Writer
	every  int
	format string
	live   bool // flush after every row
	rows   int
	err    error
}

// NewFileTable writes the archival table: header, then rows with 8-digit
// displacements and velocities.
func NewFileTable(w io.Writer, every int) *Table {
	t := newTable(w, every, fileRowFormat)
	t.printf("%s\n", TableHeader)
	return t
}

// NewConsoleTable writes the short progress table shown while running.
// Each row reaches w as soon as it is sampled.
func NewConsoleTable(w io.Writer, every int) *Table {
	t := newTable(w, every, consoleRowFormat)
	t.live = true
	t.printf("%s\n%s\n", TableHeader, consoleRule)
	t.flushLive()
	return t
}

func newTable(w io.Writer, every int, format string) *Table {
	if every < 1 {
		every = 1
	}
	return &Table{w: bufio.NewWriter(w), every: every, format: format}
}

func (t *Table) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *Table) OnSample(s dynamo.Sample) {
	if s.Step%t.every != 0 {
		return
	}
	t.printf(t.format, s.Time, s.State[dynamo.X1], s.State[dynamo.X2], s.State[dynamo.V1], s.State[dynamo.V2], s.Energy)
	t.rows++
	t.flushLive()
}

func (t *Table) flushLive() {
	if t.live && t.err == nil {
		t.err = t.w.Flush()
	}
}

func (t *Table) Rows() int { return t.rows }

func (t *Table) Flush() error {
	if t.err != nil {
		return t.err
	}
	return t.w.Flush()
}
