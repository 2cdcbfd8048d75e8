package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/shearsim/internal/analysis"
	"github.com/san-kum/shearsim/internal/config"
	"github.com/san-kum/shearsim/internal/dynamo"
	"github.com/san-kum/shearsim/internal/export"
	"github.com/san-kum/shearsim/internal/integrators"
	"github.com/san-kum/shearsim/internal/metrics"
	"github.com/san-kum/shearsim/internal/physics"
	"github.com/san-kum/shearsim/internal/sim"
	"github.com/san-kum/shearsim/internal/storage"
	"github.com/san-kum/shearsim/internal/tui"
	"github.com/san-kum/shearsim/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	building, err := newBuilding(cfg)
	if err != nil {
		return err
	}

	viz.WriteParams(os.Stdout, cfg.Params)
	viz.WriteFrequencies(os.Stdout, cfg.Params)

	file, err := os.Create(cfg.Output)
	if err != nil {
		fmt.Println(viz.ErrorText.Render("Error: Tidak dapat membuat file output"))
		os.Exit(1)
	}
	defer file.Close()

	fileTable := export.NewFileTable(file, cfg.Decimation)
	console := export.NewConsoleTable(os.Stdout, cfg.PrintEvery)

	s := sim.New(building, integrators.NewRK4())
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	s.AddObserver(fileTable)
	s.AddObserver(console)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Simulasi RK4 dimulai...")
	start := time.Now()
	result, runErr := s.Run(ctx, cfg.GetInitState(), cfg.SimConfig())
	elapsed := time.Since(start)

	if err := console.Flush(); err != nil {
		return err
	}
	if err := fileTable.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output, err)
	}
	if runErr != nil {
		if result != nil {
			log.Printf("stopped at t=%.4f s after %d steps", result.FinalTime, result.StepsTaken)
		}
		return runErr
	}

	fmt.Println()
	fmt.Println(viz.StatusDone.Render("Simulasi selesai!"))
	fmt.Printf("Hasil simulasi tersimpan dalam file '%s'\n", cfg.Output)

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(runMetadata(cfg), result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Println(viz.Panel.Render(fmt.Sprintf("%d steps in %v\n%d rows in %s", result.StepsTaken, elapsed, fileTable.Rows(), cfg.Output)))

	viz.WriteFinalStats(os.Stdout, result)
	return nil
}

func runMetadata(cfg *config.Config) storage.RunMetadata {
	name := cfg.Name
	if name == "" {
		name = "custom"
	}
	sc := cfg.SimConfig()
	return storage.RunMetadata{
		Scenario:   name,
		Params:     cfg.Params,
		InitState:  cfg.GetInitState(),
		Dt:         sc.Dt,
		Duration:   sc.Duration,
		Decimation: sc.Decimation,
		Steps:      sc.Steps(),
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tOMEGA\tFINAL E")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%gs\t%.2f\t%.4f\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Params.Omega,
			run.FinalEnergy,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []dynamo.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(samples))

	viz.PlotSamples(os.Stdout, samples)
	return nil
}

func pngRun(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	dir := outPath
	if dir == "" {
		dir = filepath.Join(dataDir, args[0])
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	files, err := export.SaveRunPlots(dir, samples)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Printf("wrote %s\n", f)
	}
	return nil
}

func svgRun(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	times := make([]float64, len(samples))
	xs := [][]float64{make([]float64, len(samples)), make([]float64, len(samples))}
	for i, s := range samples {
		times[i] = s.Time
		xs[0][i] = s.State[dynamo.X1]
		xs[1][i] = s.State[dynamo.X2]
	}

	svg := export.TimeSeriesToSVG(times, xs, nil, 800, 400)
	return writeOutput(func(w io.Writer) error {
		_, err := io.WriteString(w, svg)
		return err
	})
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return writeOutput(func(w io.Writer) error {
		return storage.ExportJSON(w, meta, samples)
	})
}

// writeOutput sends fn's output to --out, or stdout when unset.
func writeOutput(fn func(w io.Writer) error) error {
	if outPath == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s", outPath)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	sampleDt := meta.Dt * float64(meta.Decimation)
	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("sample interval: %g s, samples: %d\n\n", sampleDt, len(samples))

	x1 := make([]float64, len(samples))
	x2 := make([]float64, len(samples))
	for i, s := range samples {
		x1[i] = s.State[dynamo.X1]
		x2[i] = s.State[dynamo.X2]
	}

	ps := analysis.PowerSpectrum(x2)
	if len(ps) > 4 {
		fmt.Println(viz.Plot(ps[:len(ps)/4], "power spectrum (x2)", 15))
		fmt.Println()
	}

	for i, data := range [][]float64{x1, x2} {
		w, err := analysis.DominantFrequency(data, sampleDt)
		if err != nil {
			return err
		}
		fmt.Printf("dominant frequency x%d: %.3f rad/s (%.3f hz)\n", i+1, w, w/(2*math.Pi))
	}

	fmt.Printf("excitation: %.3f rad/s\n", meta.Params.Omega)
	if modes, err := physics.NaturalFrequencies(meta.Params); err == nil {
		fmt.Printf("modes: %.3f, %.3f rad/s\n", modes[0].Omega, modes[1].Omega)
	}
	return nil
}

func showPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("presets:")
		for _, name := range config.ListPresets() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	p := config.GetPreset(args[0])
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(p)
}

func writeConfig(cmd *cobra.Command, args []string) error {
	p := config.GetPreset(initPreset)
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", initPreset, config.ListPresets())
	}
	if err := config.Save(args[0], p); err != nil {
		return err
	}
	log.Printf("wrote %s (preset %s)", args[0], initPreset)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	if sweepN < 1 {
		return fmt.Errorf("--n must be >= 1, got %d", sweepN)
	}

	sw := analysis.Sweep{
		Param:     sweepPar,
		Values:    analysis.Linspace(sweepFrom, sweepTo, sweepN),
		Transient: transient,
		Workers:   workers,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	base, ok := cfg.Params.GetParams()[sweepPar]
	if !ok {
		return fmt.Errorf("unknown parameter: %s", sweepPar)
	}
	log.Printf("sweeping %s over %d values (scenario value %g)", sweepPar, sweepN, base)
	start := time.Now()
	points, err := sw.Run(ctx, cfg.Params, cfg.GetInitState(), cfg.SimConfig())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPEAK X1 (m)\tPEAK X2 (m)\n", sweepPar)
	peaks := make([]float64, len(points))
	for i, p := range points {
		fmt.Fprintf(w, "%.4f\t%.6e\t%.6e\n", p.Param, p.PeakX1, p.PeakX2)
		peaks[i] = p.PeakX2
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(peaks) > 1 {
		fmt.Println()
		fmt.Println(viz.Plot(peaks, fmt.Sprintf("peak x2 vs %s (%g..%g)", sweepPar, sweepFrom, sweepTo), 12))
	}
	if best, ok := analysis.Peak(points); ok {
		fmt.Printf("\nlargest response at %s = %.4f (peak x2 %.6e m)\n", sweepPar, best.Param, best.PeakX2)
	}
	fmt.Printf("completed in %v\n", time.Since(start))
	return nil
}

func runStream(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	building, err := newBuilding(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := sim.New(building, integrators.NewRK4())
	return writeOutput(func(w io.Writer) error {
		return streamSamples(ctx, s, cfg.GetInitState(), cfg.SimConfig(), w)
	})
}

// streamSamples writes every Decimation-th loop sample to w as JSON lines
// while the simulation runs.
func streamSamples(ctx context.Context, s *sim.Simulator, x0 dynamo.State, cfg dynamo.Config, w io.Writer) error {
	enc := json.NewEncoder(w)
	var writeErr error
	err := s.RunWithCallback(ctx, x0, cfg, func(smp dynamo.Sample) bool {
		if smp.Step%cfg.Decimation != 0 {
			return true
		}
		writeErr = storage.WriteSampleLine(enc, smp)
		return writeErr == nil
	})
	if err != nil {
		return err
	}
	return writeErr
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	building, err := newBuilding(cfg)
	if err != nil {
		return err
	}
	return tui.Run(building, cfg.GetInitState(), cfg.SimConfig())
}

func showModes(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	modes, err := physics.NaturalFrequencies(cfg.Params)
	if err != nil {
		return err
	}

	viz.WriteFrequencies(os.Stdout, cfg.Params)
	viz.WriteModes(os.Stdout, modes)
	return nil
}
