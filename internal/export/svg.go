package export

import (
	"fmt"
	"math"
	"strings"
)

// DefaultColors are the stroke colors used for successive series.
var DefaultColors = []string{"#00ccff", "#ff00ff", "#00ff88", "#ffaa00"}

// TimeSeriesToSVG draws one polyline per series against times, sharing a
// common y range.
func TimeSeriesToSVG(times []float64, series [][]float64, colors []string, width, height int) string {
	if len(times) < 2 || len(series) == 0 {
		return ""
	}
	if len(colors) == 0 {
		colors = DefaultColors
	}

	minX, maxX := times[0], times[len(times)-1]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s {
			minY = math.Min(minY, v)
			maxY = math.Max(maxY, v)
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if minY < 0 && maxY > 0 {
		zero := float64(height) - (0-minY)/rangeY*float64(height)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466" stroke-width="1"/>
`, zero, width, zero))
	}

	for k, s := range series {
		n := len(s)
		if n > len(times) {
			n = len(times)
		}
		if n < 2 {
			continue
		}

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, colors[k%len(colors)]))
		for i := 0; i < n; i++ {
			x := (times[i] - minX) / rangeX * float64(width)
			y := float64(height) - (s[i]-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
