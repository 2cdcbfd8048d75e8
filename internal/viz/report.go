package viz

import (
	"fmt"
	"io"

	"github.com/san-kum/shearsim/internal/dynamo"
	"github.com/san-kum/shearsim/internal/physics"
)

const Banner = "=== ANALISIS DINAMIKA STRUKTUR 2-DOF DENGAN METODE RK4 ==="

// WriteParams prints the banner and the system parameters.
func WriteParams(w io.Writer, p physics.Params) {
	fmt.Fprintln(w, Title.Render(Banner))
	fmt.Fprintln(w)
	fmt.Fprintln(w, Heading.Render("Parameter Sistem:"))
	fmt.Fprintf(w, "Massa lantai 1 = %.0f kg\n", p.M1)
	fmt.Fprintf(w, "Massa lantai 2 = %.0f kg\n", p.M2)
	fmt.Fprintf(w, "Kekakuan lantai 1 = %.0e N/m\n", p.K1)
	fmt.Fprintf(w, "Kekakuan lantai 2 = %.0e N/m\n", p.K2)
	fmt.Fprintf(w, "Redaman lantai 1 = %.0f Ns/m\n", p.C1)
	fmt.Fprintf(w, "Redaman lantai 2 = %.0f Ns/m\n", p.C2)
	fmt.Fprintf(w, "Gaya eksitasi = %.0f sin(%.0f*t) N\n\n", p.F0, p.Omega)
}

// WriteFrequencies prints the per-story estimates followed by the coupled
// modal frequencies when they can be computed.
func WriteFrequencies(w io.Writer, p physics.Params) {
	w1, w2 := physics.StoryFrequencies(p)
	fmt.Fprintln(w, Heading.Render("Frekuensi Natural:"))
	fmt.Fprintf(w, "ω1 = %.2f rad/s\n", w1)
	fmt.Fprintf(w, "ω2 = %.2f rad/s\n", w2)

	modes, err := physics.NaturalFrequencies(p)
	if err == nil {
		fmt.Fprintln(w, Subtle.Render(fmt.Sprintf("modal: %.2f, %.2f rad/s", modes[0].Omega, modes[1].Omega)))
	}
	fmt.Fprintln(w)
}

// WriteModes prints a table of the undamped modes.
func WriteModes(w io.Writer, modes [2]physics.Mode) {
	fmt.Fprintln(w, Heading.Render("Mode getar:"))
	fmt.Fprintf(w, "%-6s %12s %10s %10s %10s %10s\n", "MODE", "OMEGA(rad/s)", "F(Hz)", "T(s)", "PHI1", "PHI2")
	for i, m := range modes {
		fmt.Fprintf(w, "%-6d %12.4f %10.4f %10.4f %10.4f %10.4f\n", i+1, m.Omega, m.Freq, m.Period, m.Shape[0], m.Shape[1])
	}
}

// WriteFinalStats prints the end-of-run summary. The first two lines carry
// the final displacements; true peaks come from the peak_* metrics.
func WriteFinalStats(w io.Writer, res *dynamo.Result) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, Heading.Render("Statistik Akhir:"))
	fmt.Fprintf(w, "Perpindahan akhir x1 = %.6f m\n", res.Final[dynamo.X1])
	fmt.Fprintf(w, "Perpindahan akhir x2 = %.6f m\n", res.Final[dynamo.X2])
	if v, ok := res.Metrics["peak_x1"]; ok {
		fmt.Fprintf(w, "Perpindahan maksimum x1 = %.6f m\n", v)
	}
	if v, ok := res.Metrics["peak_x2"]; ok {
		fmt.Fprintf(w, "Perpindahan maksimum x2 = %.6f m\n", v)
	}
	fmt.Fprintf(w, "Energi total akhir = %.4f J\n", res.FinalEnergy)
	if v, ok := res.Metrics["energy_drift"]; ok {
		fmt.Fprintf(w, "%s %s\n", MetricLabel.Render("energy drift:"), MetricValue.Render(fmt.Sprintf("%.3e", v)))
	}
}
