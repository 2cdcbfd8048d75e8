package viz

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/shearsim/internal/dynamo"
)

const plotWidth = 80

// Plot renders data as an asciigraph line chart. Long series are reduced to
// plotWidth points by taking every n-th value.
func Plot(data []float64, caption string, height int) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(downsample(data, plotWidth),
		asciigraph.Height(height),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotSamples writes charts of both displacements and the total energy.
func PlotSamples(w io.Writer, samples []dynamo.Sample) {
	if len(samples) == 0 {
		return
	}
	x1 := make([]float64, len(samples))
	x2 := make([]float64, len(samples))
	e := make([]float64, len(samples))
	for i, s := range samples {
		x1[i] = s.State[dynamo.X1]
		x2[i] = s.State[dynamo.X2]
		e[i] = s.Energy
	}

	fmt.Fprintln(w, asciigraph.PlotMany([][]float64{downsample(x1, plotWidth), downsample(x2, plotWidth)},
		asciigraph.Height(12),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
		asciigraph.SeriesLegends("x1", "x2"),
		asciigraph.Caption("perpindahan [m]"),
	))
	fmt.Fprintln(w)
	fmt.Fprintln(w, Plot(e, "energi total [J]", 8))
	fmt.Fprintln(w)
}

func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, 0, n)
	step := float64(len(data)) / float64(n)
	for i := 0; i < n; i++ {
		out = append(out, data[int(float64(i)*step)])
	}
	return out
}
