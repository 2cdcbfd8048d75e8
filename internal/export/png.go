package export

import (
	"bufio"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/shearsim/internal/dynamo"
)

var seriesColors = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
}

type Series struct {
	Label  string
	Values []float64
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(8)
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.X.Padding = vg.Points(10)
	p.Y.Padding = vg.Points(10)
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
}

func savePlotPNG(p *plot.Plot, widthIn, heightIn float64, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(150),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return bw.Flush()
}

// SaveLinePlot writes one PNG with a line per series against times.
func SaveLinePlot(filename, title, ylabel string, times []float64, series ...Series) error {
	if len(times) == 0 || len(series) == 0 {
		return fmt.Errorf("plot data invalid")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = ylabel
	stylePlot(p)

	for k, s := range series {
		if len(s.Values) != len(times) {
			return fmt.Errorf("series %s: %d values for %d times", s.Label, len(s.Values), len(times))
		}
		pts := make(plotter.XYs, len(times))
		for i := range times {
			pts[i].X = times[i]
			pts[i].Y = s.Values[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = seriesColors[k%len(seriesColors)]
		p.Add(line)
		p.Legend.Add(s.Label, line)
	}

	return savePlotPNG(p, 8.0, 4.5, filename)
}

// SaveRunPlots writes displacement.png, velocity.png and energy.png to dir.
func SaveRunPlots(dir string, samples []dynamo.Sample) ([]string, error) {
	times := make([]float64, len(samples))
	var comps [dynamo.Dim][]float64
	for i := range comps {
		comps[i] = make([]float64, len(samples))
	}
	energy := make([]float64, len(samples))
	for i, s := range samples {
		times[i] = s.Time
		for j := range comps {
			comps[j][i] = s.State[j]
		}
		energy[i] = s.Energy
	}

	files := []string{
		filepath.Join(dir, "displacement.png"),
		filepath.Join(dir, "velocity.png"),
		filepath.Join(dir, "energy.png"),
	}
	if err := SaveLinePlot(files[0], "Floor displacement", "x (m)", times,
		Series{"x1", comps[dynamo.X1]}, Series{"x2", comps[dynamo.X2]}); err != nil {
		return nil, err
	}
	if err := SaveLinePlot(files[1], "Floor velocity", "v (m/s)", times,
		Series{"v1", comps[dynamo.V1]}, Series{"v2", comps[dynamo.V2]}); err != nil {
		return nil, err
	}
	if err := SaveLinePlot(files[2], "Total mechanical energy", "E (J)", times,
		Series{"energy", energy}); err != nil {
		return nil, err
	}
	return files, nil
}
