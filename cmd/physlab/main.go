package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/numlab/physlab/internal/analysis"
	"github.com/numlab/physlab/internal/automation"
	"github.com/numlab/physlab/internal/config"
	"github.com/numlab/physlab/internal/experiment"
	"github.com/numlab/physlab/internal/optim"
	"github.com/numlab/physlab/internal/storage"
	"github.com/numlab/physlab/internal/viz"
)

var (
	dataDir    string
	figDir     string
	noFigures  bool
	configFile string
	preset     string

	dt         float64
	duration   float64
	seed       uint64
	integrator string

	kickK     float64
	tilt      float64
	amplitude float64
	omega     float64
	x0        float64
	p0        float64
	hEff      float64
	gridN     int
	packetX0  float64
	packetP0  float64
	sigma     float64
	latticeA  float64
	blochK    float64
	particles int
	trials    int
	walkers   int
	vDrift    float64
	diffD     float64
	xAbs      float64
	tMax      float64

	table string

	quiet     bool
	exportOut string

	sweepMetric string
	sweepAxes   []string
	sweepMax    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "physlab",
		Short: "numerical physics experiment lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".physlab", "data directory")
	rootCmd.PersistentFlags().StringVar(&figDir, "figures", "figures", "figure output directory")

	runCmd := &cobra.Command{
		Use:   "run [experiment]",
		Short: "run an experiment",
		Args:  cobra.ExactArgs(1),
		RunE:  runExperiment,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	runCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (euler|rk4|rk45|leapfrog)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&noFigures, "no-figures", false, "skip figure rendering")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "suppress the experiment description")
	runCmd.Flags().Float64Var(&kickK, "k", 2.6, "kick strength (stdmap)")
	runCmd.Flags().Float64Var(&tilt, "tilt", 0.2, "well asymmetry")
	runCmd.Flags().Float64Var(&amplitude, "amplitude", 0.1, "drive amplitude (well)")
	runCmd.Flags().Float64Var(&omega, "omega", 1.0, "drive frequency (well)")
	runCmd.Flags().Float64Var(&x0, "x0", 1.0, "initial position (well)")
	runCmd.Flags().Float64Var(&p0, "p0", 0.0, "initial momentum (well)")
	runCmd.Flags().Float64Var(&hEff, "heff", config.DefaultHEff, "effective Planck constant")
	runCmd.Flags().IntVar(&gridN, "grid", 500, "grid points (quantum)")
	runCmd.Flags().Float64Var(&packetX0, "packet-x0", -0.7, "packet center (evolve)")
	runCmd.Flags().Float64Var(&packetP0, "packet-p0", 0.0, "packet momentum (evolve)")
	runCmd.Flags().Float64Var(&sigma, "sigma", 0.1, "packet width (evolve)")
	runCmd.Flags().Float64Var(&latticeA, "lattice", 2.0, "potential amplitude (bloch)")
	runCmd.Flags().Float64Var(&blochK, "bloch-k", 0.0, "Bloch phase (bloch)")
	runCmd.Flags().IntVar(&particles, "particles", 8, "particles per trial (gas)")
	runCmd.Flags().IntVar(&trials, "trials", 10000, "pressure samples (gas)")
	runCmd.Flags().IntVar(&walkers, "walkers", 10000, "walker count (walk)")
	runCmd.Flags().Float64Var(&vDrift, "drift", 0.1, "drift velocity (walk)")
	runCmd.Flags().Float64Var(&diffD, "diffusion", 1.5, "diffusion constant (walk)")
	runCmd.Flags().Float64Var(&xAbs, "wall", 15, "absorbing wall position (walk)")
	runCmd.Flags().Float64Var(&tMax, "tmax", 40, "snapshot horizon (walk)")

	experimentsCmd := &cobra.Command{
		Use:   "experiments",
		Short: "list available experiments",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, e := range experiment.NewRegistry().List() {
				fmt.Fprintf(w, "%s\t%s\n", e.Name(), e.Description())
			}
			return w.Flush()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().StringVar(&table, "table", "", "table to chart (default: first)")

	replotCmd := &cobra.Command{
		Use:   "replot [run_id]",
		Short: "re-render the figures of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  replotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a trajectory run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run with all tables as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSONFile("-", args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id] [table]",
		Short: "export one table of a run to CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := exportOut
			if out == "" {
				out = args[0] + "_" + args[1] + ".csv"
			}
			if err := storage.New(dataDir).ExportCSV(out, args[0], args[1]); err != nil {
				return err
			}
			if out != "-" {
				fmt.Printf("wrote %s\n", out)
			}
			return nil
		},
	}
	exportCSVCmd.Flags().StringVar(&exportOut, "out", "", "output file (default <run>_<table>.csv, - for stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [experiment]",
		Short: "list presets for an experiment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for experiment: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [experiment]",
		Short: "watch an experiment evolve in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	liveCmd.Flags().Float64Var(&tilt, "tilt", 0.2, "well asymmetry")
	liveCmd.Flags().Float64Var(&amplitude, "amplitude", 0.1, "drive amplitude")
	liveCmd.Flags().Float64Var(&omega, "omega", 1.0, "drive frequency")
	liveCmd.Flags().Float64Var(&x0, "x0", 1.0, "initial position")
	liveCmd.Flags().Float64Var(&p0, "p0", 0.0, "initial momentum")
	liveCmd.Flags().Float64Var(&hEff, "heff", config.DefaultHEff, "effective Planck constant")
	liveCmd.Flags().IntVar(&walkers, "walkers", 2000, "walker count (walk)")
	liveCmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "run a scripted batch of experiments from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&noFigures, "no-figures", false, "skip figure rendering")

	sweepCmd := &cobra.Command{
		Use:   "sweep [experiment]",
		Short: "grid-search experiment parameters against a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "", "metric to optimize")
	sweepCmd.Flags().StringArrayVar(&sweepAxes, "param", nil, "axis as name=lo:hi:n (repeatable)")
	sweepCmd.Flags().BoolVar(&sweepMax, "max", false, "maximize instead of minimize")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "base preset configuration")

	rootCmd.AddCommand(runCmd, experimentsCmd, listCmd, showCmd, replotCmd,
		analyzeCmd, exportJSONCmd, exportCSVCmd, presetsCmd, liveCmd,
		batchCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildConfig(cmd *cobra.Command, name string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(name, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
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

	cfg.Experiment = name

	// CLI flags override the preset and the config file
	setIfChanged := func(flag string, apply func()) {
		if cmd.Flags().Changed(flag) {
			apply()
		}
	}
	setIfChanged("dt", func() { cfg.Dt = dt })
	setIfChanged("time", func() { cfg.Duration = duration })
	setIfChanged("seed", func() { cfg.Seed = seed })
	setIfChanged("integrator", func() { cfg.Integrator = integrator })
	setIfChanged("k", func() { cfg.Map.K = kickK })
	setIfChanged("tilt", func() { cfg.Well.Tilt = tilt; cfg.Grid.Tilt = tilt })
	setIfChanged("amplitude", func() { cfg.Well.Amplitude = amplitude })
	setIfChanged("omega", func() { cfg.Well.Omega = omega })
	setIfChanged("x0", func() { cfg.Well.X0 = x0 })
	setIfChanged("p0", func() { cfg.Well.P0 = p0 })
	setIfChanged("heff", func() { cfg.Grid.HEff = hEff })
	setIfChanged("grid", func() { cfg.Grid.Points = gridN })
	setIfChanged("packet-x0", func() { cfg.Packet.X0 = packetX0 })
	setIfChanged("packet-p0", func() { cfg.Packet.P0 = packetP0 })
	setIfChanged("sigma", func() { cfg.Packet.Sigma = sigma })
	setIfChanged("lattice", func() { cfg.Lattice.Amplitude = latticeA })
	setIfChanged("bloch-k", func() { cfg.Lattice.K = blochK })
	setIfChanged("particles", func() { cfg.Gas.Particles = particles })
	setIfChanged("trials", func() { cfg.Gas.Trials = trials })
	setIfChanged("walkers", func() { cfg.Walk.Walkers = walkers })
	setIfChanged("drift", func() { cfg.Walk.VDrift = vDrift })
	setIfChanged("diffusion", func() { cfg.Walk.D = diffD })
	setIfChanged("wall", func() { cfg.Walk.XAbs = xAbs })
	setIfChanged("tmax", func() { cfg.Walk.TMax = tMax })

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runExperiment(cmd *cobra.Command, args []string) error {
	name := args[0]

	registry := experiment.NewRegistry()
	exp, err := registry.Get(name)
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd, name)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	outDir := figDir
	if noFigures {
		outDir = ""
	} else if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	if !quiet {
		fmt.Println(exp.Description())
	}
	fmt.Printf("running %s...\n", name)
	start := time.Now()

	out, err := exp.Run(context.Background(), cfg, outDir)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(name, cfg.Seed, out.Params, out.Metrics, out.Tables)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	if len(out.Figures) > 0 {
		fmt.Println("figures:")
		for _, f := range out.Figures {
			fmt.Printf("  %s\n", f)
		}
	}
	fmt.Println("\nmetrics:")
	for name, val := range out.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	return nil
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
	fmt.Fprintln(w, "ID\tEXPERIMENT\tTIME\tSEED\tTABLES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Experiment,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			len(run.Tables),
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("experiment: %s\n", meta.Experiment)
	fmt.Printf("tables: %v\n\n", meta.Tables)
	for name, val := range meta.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}
	fmt.Println()

	name := table
	if name == "" && len(meta.Tables) > 0 {
		name = meta.Tables[0]
	}
	if name == "" {
		return nil
	}

	tab, err := st.LoadTable(runID, name)
	if err != nil {
		return err
	}
	if len(tab.Rows) == 0 {
		return fmt.Errorf("table %s is empty", name)
	}

	maxCols := len(tab.Columns)
	if maxCols > 4 {
		maxCols = 4
	}
	for c := 1; c < maxCols; c++ {
		data := tab.Column(tab.Columns[c])
		if len(data) < 2 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s.%s", name, tab.Columns[c])),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func replotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp, err := registry.Get(meta.Experiment)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Experiment = meta.Experiment
	cfg.Seed = meta.Seed
	exp.Apply(meta.Params, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(figDir, 0755); err != nil {
		return err
	}

	out, err := exp.Run(context.Background(), cfg, figDir)
	if err != nil {
		return err
	}

	for _, f := range out.Figures {
		fmt.Printf("wrote %s\n", f)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	tab, err := st.LoadTable(runID, "trajectory")
	if err != nil {
		return fmt.Errorf("run %s has no trajectory table: %w", runID, err)
	}

	times := tab.Column("t")
	xs := tab.Column("x")
	if len(xs) < 4 || len(times) < 2 {
		return fmt.Errorf("not enough data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("experiment: %s\n\n", meta.Experiment)

	sampleDt := times[1] - times[0]
	ps := analysis.PowerSpectrum(xs)
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum of x(t)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(xs, sampleDt)
	fmt.Printf("dominant frequency: %.4f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.4f s\n", 1/freq)
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	batch, err := automation.LoadBatch(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	outDir := figDir
	if noFigures {
		outDir = ""
	} else if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	if batch.Name != "" {
		fmt.Printf("batch: %s\n", batch.Name)
	}
	results, err := automation.RunBatch(context.Background(), batch, experiment.NewRegistry(), st, outDir)
	for _, r := range results {
		fmt.Printf("  %s -> %s\n", r.Step.Experiment, r.RunID)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%d steps completed\n", len(results))
	return nil
}

// parseAxis turns "name=lo:hi:n" into a sweep axis.
func parseAxis(spec string) (optim.Axis, error) {
	name, rng, ok := strings.Cut(spec, "=")
	if !ok {
		return optim.Axis{}, fmt.Errorf("bad axis %q, want name=lo:hi:n", spec)
	}
	parts := strings.Split(rng, ":")
	if len(parts) != 3 {
		return optim.Axis{}, fmt.Errorf("bad axis %q, want name=lo:hi:n", spec)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return optim.Axis{}, err
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return optim.Axis{}, err
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return optim.Axis{}, err
	}
	if n < 2 {
		return optim.Axis{}, fmt.Errorf("axis %q needs at least 2 values", spec)
	}
	return optim.Range(name, lo, hi, n), nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	name := args[0]
	if sweepMetric == "" {
		return fmt.Errorf("--metric is required")
	}
	if len(sweepAxes) == 0 {
		return fmt.Errorf("at least one --param axis is required")
	}

	exp, err := experiment.NewRegistry().Get(name)
	if err != nil {
		return err
	}

	axes := make([]optim.Axis, 0, len(sweepAxes))
	for _, spec := range sweepAxes {
		ax, err := parseAxis(spec)
		if err != nil {
			return err
		}
		axes = append(axes, ax)
	}

	cfg := config.DefaultConfig()
	if preset != "" {
		if p := config.GetPreset(name, preset); p != nil {
			cfg = p
		} else {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
	}
	cfg.Experiment = name

	gs := optim.NewGridSearch(exp, sweepMetric, axes...)
	if sweepMax {
		gs.Maximize()
	}

	fmt.Printf("sweeping %s over %d axes...\n", name, len(axes))
	res, err := gs.Search(context.Background(), cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%d runs, best %s = %.6g at:\n", res.Runs, sweepMetric, res.Score)
	for k, v := range res.Params {
		fmt.Printf("  %s = %.6g\n", k, v)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	src, err := newLiveSource(args[0])
	if err != nil {
		return err
	}

	prog := tea.NewProgram(viz.NewModel(src), tea.WithAltScreen())
	_, err = prog.Run()
	return err
}
