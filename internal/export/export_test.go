package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/shearsim/internal/dynamo"
)

func TestFileTableFormat(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewFileTable(&buf, 10)

	for i := 0; i <= 20; i++ {
		tbl.OnSample(dynamo.Sample{
			Step:   i,
			Time:   float64(i) * 0.001,
			State:  dynamo.State{0.000123456789, -0.5, 1, 2},
			Energy: 1.23456,
		})
	}
	if err := tbl.Flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Waktu(s)\tx1(m)\t\tx2(m)\t\tv1(m/s)\tv2(m/s)\tEnergi(J)" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[2] != "0.010\t0.00012346\t-0.50000000\t1.00000000\t2.00000000\t1.2346" {
		t.Errorf("unexpected row %q", lines[2])
	}
	if tbl.Rows() != 3 {
		t.Errorf("expected 3 rows, got %d", tbl.Rows())
	}
}

func TestConsoleTableFormat(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewConsoleTable(&buf, 1000)
	tbl.OnSample(dynamo.Sample{Step: 999, Time: 0.999})
	tbl.OnSample(dynamo.Sample{Step: 1000, Time: 1.0000000000000007, State: dynamo.State{-0.0012874501, -0.0012538642, -0.0113098878, -0.0035734002}, Energy: 1.7274382557})
	if err := tbl.Flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header, rule and one row, got:\n%s", buf.String())
	}
	if lines[2] != "1.0\t-0.001287\t-0.001254\t-0.011310\t-0.003573\t1.73" {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestConsoleTableWritesRowsImmediately(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewConsoleTable(&buf, 2)
	if !strings.HasPrefix(buf.String(), TableHeader+"\n") {
		t.Fatalf("header not written before first sample: %q", buf.String())
	}

	tbl.OnSample(dynamo.Sample{Step: 2, Time: 0.5})
	if !strings.Contains(buf.String(), "0.5\t0.000000") {
		t.Errorf("row not written before Flush:\n%s", buf.String())
	}

	file := NewFileTable(&bytes.Buffer{}, 1)
	file.OnSample(dynamo.Sample{})
	if file.live {
		t.Error("file table should stay buffered")
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestTableReportsWriteErrors(t *testing.T) {
	tbl := NewFileTable(failingWriter{}, 1)
	for i := 0; i < 5000; i++ {
		tbl.OnSample(dynamo.Sample{Step: i})
	}
	if err := tbl.Flush(); err == nil {
		t.Error("expected write error")
	}
}

func TestTimeSeriesToSVG(t *testing.T) {
	times := []float64{0, 1, 2}
	svg := TimeSeriesToSVG(times, [][]float64{{0, 1, -1}, {0, 0.5, 0.25}}, nil, 200, 100)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("not an svg document")
	}
	if n := strings.Count(svg, "<path"); n != 2 {
		t.Errorf("expected 2 paths, got %d", n)
	}
	if !strings.Contains(svg, "<line") {
		t.Error("expected zero line for signed data")
	}

	if TimeSeriesToSVG(times[:1], [][]float64{{1}}, nil, 10, 10) != "" {
		t.Error("expected empty output for a single point")
	}
}

func TestSaveRunPlots(t *testing.T) {
	samples := make([]dynamo.Sample, 50)
	for i := range samples {
		x := float64(i) * 0.01
		samples[i] = dynamo.Sample{Time: x, State: dynamo.State{x, -x, 1, 2}, Energy: x * x}
	}

	dir := t.TempDir()
	files, err := SaveRunPlots(dir, samples)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil || info.Size() == 0 {
			t.Errorf("%s not written: %v", filepath.Base(f), err)
		}
	}
}

func TestSaveLinePlotRejectsMismatchedSeries(t *testing.T) {
	err := SaveLinePlot(filepath.Join(t.TempDir(), "x.png"), "t", "y", []float64{0, 1}, Series{"a", []float64{1}})
	if err == nil {
		t.Error("expected length mismatch error")
	}
}
