package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/shearsim/internal/config"
	"github.com/san-kum/shearsim/internal/physics"
)

var (
	dataDir    string
	configFile string
	preset     string

	dt         float64
	duration   float64
	decimation int
	printEvery int
	output     string
	noSave     bool

	x1, x2, v1, v2 float64

	m1, m2, k1, k2, c1, c2, f0, omega float64

	outPath    string
	initPreset string
	sweepFrom  float64
	sweepTo    float64
	sweepN     int
	sweepPar   string
	transient  float64
	workers    int
)

// main registers the shearsim commands and runs the root command, exiting
// with status 1 on error.
func main() {
	log.SetFlags(0)
	log.SetPrefix("shearsim: ")

	rootCmd := &cobra.Command{
		Use:           "shearsim",
		Short:         "2-DOF shear building response with RK4",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".shearsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().IntVar(&printEvery, "print-every", config.DefaultPrintEvery, "console table interval (steps)")
	runCmd.Flags().StringVar(&output, "output", config.DefaultOutput, "tab-separated output file")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not archive the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	pngCmd := &cobra.Command{
		Use:   "png [run_id]",
		Short: "render displacement, velocity and energy plots as PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  pngRun,
	}
	pngCmd.Flags().StringVar(&outPath, "out", "", "output directory (default: run directory)")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render floor displacements as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  svgRun,
	}
	svgCmd.Flags().StringVar(&outPath, "out", "", "output file (default: stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "", "output file (default: stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or print one as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a scenario config file",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}
	initCmd.Flags().StringVar(&initPreset, "preset", "reference", "preset to start from")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "steady-state peak response over a parameter range",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepPar, "param", "omega", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 5, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 80, "last value")
	sweepCmd.Flags().IntVar(&sweepN, "n", 31, "number of values")
	sweepCmd.Flags().Float64Var(&transient, "transient", 5, "seconds discarded before measuring peaks")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (default: GOMAXPROCS)")

	streamCmd := &cobra.Command{
		Use:   "stream",
		Short: "run simulation and write samples as JSON lines",
		Args:  cobra.NoArgs,
		RunE:  runStream,
	}
	addScenarioFlags(streamCmd)
	streamCmd.Flags().StringVar(&outPath, "out", "", "output file (default: stdout)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	modesCmd := &cobra.Command{
		Use:   "modes",
		Short: "natural frequencies and mode shapes",
		Args:  cobra.NoArgs,
		RunE:  showModes,
	}
	addScenarioFlags(modesCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, pngCmd, svgCmd, exportJSONCmd, analyzeCmd, presetsCmd, initCmd, sweepCmd, streamCmd, liveCmd, modesCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	ref := def.Params
	f := cmd.Flags()

	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")

	f.Float64Var(&dt, "dt", def.Dt, "timestep h (s)")
	f.Float64Var(&duration, "time", def.Duration, "duration (s)")
	f.IntVar(&decimation, "decimation", def.Decimation, "record every n-th step")

	f.Float64Var(&x1, "x1", 0, "initial displacement floor 1 (m)")
	f.Float64Var(&x2, "x2", 0, "initial displacement floor 2 (m)")
	f.Float64Var(&v1, "v1", 0, "initial velocity floor 1 (m/s)")
	f.Float64Var(&v2, "v2", 0, "initial velocity floor 2 (m/s)")

	f.Float64Var(&m1, "m1", ref.M1, "mass floor 1 (kg)")
	f.Float64Var(&m2, "m2", ref.M2, "mass floor 2 (kg)")
	f.Float64Var(&k1, "k1", ref.K1, "stiffness story 1 (N/m)")
	f.Float64Var(&k2, "k2", ref.K2, "stiffness story 2 (N/m)")
	f.Float64Var(&c1, "c1", ref.C1, "damping story 1 (Ns/m)")
	f.Float64Var(&c2, "c2", ref.C2, "damping story 2 (Ns/m)")
	f.Float64Var(&f0, "f0", ref.F0, "excitation amplitude (N)")
	f.Float64Var(&omega, "omega", ref.Omega, "excitation frequency (rad/s)")
}

// loadScenario resolves the scenario for cmd: preset, then config file,
// then any flag the user set explicitly.
func loadScenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	setFloat := func(name string, dst *float64, val float64) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	setInt := func(name string, dst *int, val int) {
		if flags.Changed(name) {
			*dst = val
		}
	}

	setFloat("dt", &cfg.Dt, dt)
	setFloat("time", &cfg.Duration, duration)
	setInt("decimation", &cfg.Decimation, decimation)
	setInt("print-every", &cfg.PrintEvery, printEvery)
	if flags.Changed("output") {
		cfg.Output = output
	}

	setFloat("x1", &cfg.InitState.X1, x1)
	setFloat("x2", &cfg.InitState.X2, x2)
	setFloat("v1", &cfg.InitState.V1, v1)
	setFloat("v2", &cfg.InitState.V2, v2)

	p := &cfg.Params
	setFloat("m1", &p.M1, m1)
	setFloat("m2", &p.M2, m2)
	setFloat("k1", &p.K1, k1)
	setFloat("k2", &p.K2, k2)
	setFloat("c1", &p.C1, c1)
	setFloat("c2", &p.C2, c2)
	setFloat("f0", &p.F0, f0)
	setFloat("omega", &p.Omega, omega)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newBuilding(cfg *config.Config) (*physics.ShearBuilding, error) {
	return physics.NewShearBuilding(cfg.Params)
}
