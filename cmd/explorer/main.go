package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/analysis"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/automation"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/config"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/control"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/export"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/metrics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/optim"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/sim"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/store"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	algo       string
	pattern    string
	duration   float64
	wind       float64
	initX      float64
	initY      float64
	initZ      float64
	configFile string
	preset     string
	// Gain sweep bounds
	sweepKey   string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// Perturbation batch
	trials   int
	jitter   float64
	seed     int64
	parallel bool
	// Joint gain tuning
	tuneKeys  []string
	tuneMins  []float64
	tuneMaxs  []float64
	tuneSteps int
	tuneCost  string
	// Spectrum channel
	analyzeChannel string
	// SVG output size
	svgWidth  int
	svgHeight int
)

// main registers the command tree and runs it. Invoked without a
// subcommand it drops straight into the live flight deck.
func main() {
	rootCmd := &cobra.Command{
		Use:   "explorer",
		Short: "quadrotor flight dynamics and controller bench",
		RunE:  flyLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".explorer", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "fly a scenario headless and record it",
		RunE:  runFlight,
	}
	runCmd.Flags().StringVar(&algo, "algo", "pid", "control law (pid, smc, sts, mpc)")
	runCmd.Flags().StringVar(&pattern, "pattern", "hover", "reference pattern")
	runCmd.Flags().Float64Var(&duration, "time", 20.0, "flight duration in seconds")
	runCmd.Flags().Float64Var(&wind, "wind", 0.0, "wind intensity")
	runCmd.Flags().Float64Var(&initX, "x", 0.0, "spawn x")
	runCmd.Flags().Float64Var(&initY, "y", 3.0, "spawn altitude")
	runCmd.Flags().Float64Var(&initZ, "z", 0.0, "spawn z")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive flight deck",
		RunE:  flyLive,
	}
	liveCmd.Flags().StringVar(&algo, "algo", "pid", "control law (pid, smc, sts, mpc)")
	liveCmd.Flags().StringVar(&pattern, "pattern", "hover", "reference pattern")
	liveCmd.Flags().Float64Var(&wind, "wind", 0.0, "wind intensity")
	liveCmd.Flags().Float64Var(&initX, "x", 0.0, "spawn x")
	liveCmd.Flags().Float64Var(&initY, "y", 3.0, "spawn altitude")
	liveCmd.Flags().Float64Var(&initZ, "z", 0.0, "spawn z")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [channel]",
		Short: "plot a recorded run in the terminal",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  plotRun,
	}

	previewCmd := &cobra.Command{
		Use:   "preview [pattern]",
		Short: "draw a reference pattern before flying it",
		Args:  cobra.ExactArgs(1),
		RunE:  previewPattern,
	}
	previewCmd.Flags().Float64Var(&duration, "time", 20.0, "preview horizon in seconds")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "fly every control law on the same scenario",
		RunE:  compareControllers,
	}
	compareCmd.Flags().StringVar(&pattern, "pattern", "hover", "reference pattern")
	compareCmd.Flags().Float64Var(&duration, "time", 20.0, "flight duration in seconds")
	compareCmd.Flags().Float64Var(&wind, "wind", 0.0, "wind intensity")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one gain and chart the tracking cost",
		RunE:  sweepGain,
	}
	sweepCmd.Flags().StringVar(&algo, "algo", "pid", "control law to tune")
	sweepCmd.Flags().StringVar(&pattern, "pattern", "hover", "reference pattern")
	sweepCmd.Flags().StringVar(&sweepKey, "key", "", "gain key to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 1.0, "low end of the sweep")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 5.0, "high end of the sweep")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of sweep points")
	sweepCmd.Flags().Float64Var(&duration, "time", 20.0, "flight duration per point")
	sweepCmd.Flags().Float64Var(&wind, "wind", 0.0, "wind intensity")

	perturbCmd := &cobra.Command{
		Use:   "perturb",
		Short: "fly randomized spawns and count the survivors",
		RunE:  perturbBatch,
	}
	perturbCmd.Flags().StringVar(&algo, "algo", "pid", "control law")
	perturbCmd.Flags().StringVar(&pattern, "pattern", "hover", "reference pattern")
	perturbCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	perturbCmd.Flags().Float64Var(&jitter, "jitter", 1.0, "spawn perturbation radius")
	perturbCmd.Flags().Float64Var(&initX, "x", 0.0, "base spawn x")
	perturbCmd.Flags().Float64Var(&initY, "y", 3.0, "base spawn altitude")
	perturbCmd.Flags().Float64Var(&initZ, "z", 0.0, "base spawn z")
	perturbCmd.Flags().Float64Var(&duration, "time", 20.0, "flight duration per trial")
	perturbCmd.Flags().Float64Var(&wind, "wind", 0.0, "wind intensity")
	perturbCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	perturbCmd.Flags().BoolVar(&parallel, "parallel", false, "one goroutine per trial")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search gains for the lowest tracking cost",
		RunE:  tuneGains,
	}
	tuneCmd.Flags().StringVar(&algo, "algo", "pid", "control law to tune")
	tuneCmd.Flags().StringVar(&pattern, "pattern", "hover", "reference pattern")
	tuneCmd.Flags().StringSliceVar(&tuneKeys, "keys", nil, "gain keys to search jointly")
	tuneCmd.Flags().Float64SliceVar(&tuneMins, "min", nil, "low end per key")
	tuneCmd.Flags().Float64SliceVar(&tuneMaxs, "max", nil, "high end per key")
	tuneCmd.Flags().IntVar(&tuneSteps, "steps", 4, "values per key")
	tuneCmd.Flags().Float64Var(&duration, "time", 20.0, "flight duration per point")
	tuneCmd.Flags().Float64Var(&wind, "wind", 0.0, "wind intensity")
	tuneCmd.Flags().StringVar(&tuneCost, "cost", "tracking_error", "metric to minimize")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a recorded channel",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&analyzeChannel, "channel", "T", "flight log channel")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time every control law and stepping scheme",
		RunE:  benchControllers,
	}
	benchCmd.Flags().Float64Var(&duration, "time", 20.0, "simulated seconds per cell")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a recorded flight log to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store.New(dataDir).CopyCSV(args[0], os.Stdout)
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a recorded run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store.New(dataDir).ExportRunJSON(args[0], os.Stdout)
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a recorded flight path as SVG to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVGRun,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width in pixels")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "image height in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets [algorithm]",
		Short: "list available presets for an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for algorithm: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, name := range names {
				fmt.Printf("  %-10s %s\n", name, config.Presets[args[0]][name].Note)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write a starter config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "show the effective airframe constants",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			opts, err := cfg.Options()
			if err != nil {
				return err
			}

			pm := opts.Params.Map()
			keys := make([]string, 0, len(pm))
			for k := range pm {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, k := range keys {
				fmt.Fprintf(w, "%s\t%g\n", k, pm[k])
			}
			return w.Flush()
		},
	}
	paramsCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, previewCmd, compareCmd,
		sweepCmd, perturbCmd, tuneCmd, scenarioCmd, analyzeCmd, benchCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, configCmd, paramsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig merges preset, config file and CLI flags in ascending
// precedence: a preset or file replaces the stock config wholesale,
// then every flag the user actually set wins.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(algo, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(algo))
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

	if cmd.Flags().Changed("algo") {
		cfg.Algorithm = algo
	}
	if cmd.Flags().Changed("pattern") {
		cfg.Pattern = pattern
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("wind") {
		cfg.Wind = wind
	}
	if cmd.Flags().Changed("x") {
		cfg.Init.X = initX
	}
	if cmd.Flags().Changed("y") {
		cfg.Init.Y = initY
	}
	if cmd.Flags().Changed("z") {
		cfg.Init.Z = initZ
	}

	return cfg, nil
}

// applyIntegrator swaps the stepping scheme when the config names one
// other than the default.
func applyIntegrator(b *sim.Bench, name string) error {
	if name == "" || name == "rk4" {
		return nil
	}
	integ, err := sim.NewRegistry().GetIntegrator(name)
	if err != nil {
		return err
	}
	b.SetIntegrator(integ)
	return nil
}

func runFlight(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	b, err := sim.NewBench(opts)
	if err != nil {
		return err
	}
	if err := applyIntegrator(b, cfg.Integrator); err != nil {
		return err
	}

	fmt.Printf("running %s on %s...\n", cfg.Algorithm, cfg.Pattern)
	start := time.Now()

	result, err := sim.Run(context.Background(), b, cfg.Duration, metrics.Default(b.Params()))
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func flyLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	b, err := sim.NewBench(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(b), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGO\tPATTERN\tTIME\tDURATION\tWIND\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.2f\t%d\n",
			run.ID,
			run.Algorithm,
			run.Pattern,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Wind,
			run.Steps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s  pattern: %s  wind: %.2f\n\n", meta.Algorithm, meta.Pattern, meta.Wind)

	if len(args) == 2 {
		series, err := st.LoadColumn(runID, args[1])
		if err != nil {
			return err
		}
		fmt.Println(viz.RenderChannel(args[1], viz.Downsample(series, 400), 80, 12))
		return nil
	}

	for _, axis := range []struct{ flown, ref, caption string }{
		{"x", "x_ref", "x [m]"},
		{"y", "y_ref", "y [m]"},
		{"z", "z_ref", "z [m]"},
	} {
		flown, err := st.LoadColumn(runID, axis.flown)
		if err != nil {
			return err
		}
		ref, err := st.LoadColumn(runID, axis.ref)
		if err != nil {
			return err
		}
		fmt.Println(viz.RenderOverlay(axis.caption, viz.Downsample(flown, 400), viz.Downsample(ref, 400), 80, 10))
		fmt.Println()
	}

	thrust, err := st.LoadColumn(runID, "T")
	if err != nil {
		return err
	}
	fmt.Println(viz.RenderChannel("thrust [N]", viz.Downsample(thrust, 400), 80, 8))

	return nil
}

func previewPattern(cmd *cobra.Command, args []string) error {
	p, err := traj.ParsePattern(args[0])
	if err != nil {
		return err
	}
	if !p.Analytic() {
		return fmt.Errorf("pattern %s has no closed-form preview", p)
	}

	gen := traj.NewGenerator(traj.DefaultParams())
	points := gen.Preview(p, 240, duration)

	canvas := viz.NewCanvas(60, 18)
	vp := viz.NewViewport(-8, 8, -8, 8, canvas)
	for _, pt := range points {
		cx, cy := vp.Map(pt.X, pt.Z)
		canvas.Set(cx, cy)
	}

	fmt.Printf("pattern: %s (plan view, %gs horizon)\n\n", p, duration)
	fmt.Println(canvas.String())

	alt := make([]float64, len(points))
	for i, pt := range points {
		alt[i] = pt.Y
	}
	fmt.Println(viz.RenderChannel("altitude [m]", alt, 72, 8))

	return nil
}

func compareControllers(cmd *cobra.Command, args []string) error {
	if _, err := traj.ParsePattern(pattern); err != nil {
		return err
	}

	fmt.Printf("comparing control laws on %s (time=%.1fs, wind=%.2f)\n\n", pattern, duration, wind)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGO\tTRACK_RMS\tEFFORT\tSAT\tCHATTER\tTIME_MS")

	for _, name := range control.Algorithms() {
		cfg := config.DefaultConfig()
		cfg.Algorithm = name
		cfg.Pattern = pattern
		cfg.Duration = duration
		cfg.Wind = wind

		opts, err := cfg.Options()
		if err != nil {
			return err
		}
		b, err := sim.NewBench(opts)
		if err != nil {
			return err
		}

		start := time.Now()
		res, err := sim.Run(context.Background(), b, duration, metrics.Default(b.Params()))
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.1f%%\t%.2f\t%.2f\n",
			name,
			res.Metrics["tracking_error"],
			res.Metrics["control_effort"],
			res.Metrics["saturation"]*100,
			res.Metrics["chattering"],
			float64(elapsed.Microseconds())/1000,
		)
	}

	return w.Flush()
}

func sweepGain(cmd *cobra.Command, args []string) error {
	if sweepKey == "" {
		return fmt.Errorf("--key is required (one of %v)", config.Keys(algo))
	}

	sweep := &automation.GainSweep{
		Algorithm: algo,
		Pattern:   pattern,
		Key:       sweepKey,
		Min:       sweepMin,
		Max:       sweepMax,
		NumSteps:  sweepSteps,
		Duration:  duration,
		Wind:      wind,
	}

	points, err := automation.RunSweep(context.Background(), sweep, nil)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tTRACK_RMS\tEFFORT\tSAT\tCHATTER")

	best := 0
	for i, pt := range points {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.1f%%\t%.2f\n",
			pt.Value,
			pt.Metrics["tracking_error"],
			pt.Metrics["control_effort"],
			pt.Metrics["saturation"]*100,
			pt.Metrics["chattering"],
		)
		if pt.Metrics["tracking_error"] < points[best].Metrics["tracking_error"] {
			best = i
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: %s=%.4f (tracking_error %.6f)\n", sweepKey, points[best].Value, points[best].Metrics["tracking_error"])

	curve := make([]float64, len(points))
	for i, pt := range points {
		curve[i] = pt.Metrics["tracking_error"]
	}
	fmt.Println(asciigraph.Plot(curve,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("tracking_error vs %s", sweepKey)),
	))

	return nil
}

func perturbBatch(cmd *cobra.Command, args []string) error {
	pc := &automation.PerturbConfig{
		Algorithm:    algo,
		Pattern:      pattern,
		Base:         config.InitConfig{X: initX, Y: initY, Z: initZ},
		Perturbation: jitter,
		NumTrials:    trials,
		Duration:     duration,
		Wind:         wind,
		Seed:         seed,
	}

	run := automation.RunPerturbation
	if parallel {
		run = automation.RunEnsemble
	}
	results, err := run(context.Background(), pc, nil)
	if err != nil {
		return err
	}

	stable, unstable := automation.Stats(results)
	fmt.Printf("\nstable: %d/%d", stable, len(results))
	if unstable > 0 {
		fmt.Printf("  unstable: %d", unstable)
	}
	fmt.Println()

	worst := 0
	for i := range results {
		if results[i].RMS > results[worst].RMS {
			worst = i
		}
	}
	w := results[worst]
	fmt.Printf("worst rms: %.4f (trial %d, spawn %.2f %.2f %.2f)\n",
		w.RMS, w.TrialID, w.Init.X, w.Init.Y, w.Init.Z)

	return nil
}

func tuneGains(cmd *cobra.Command, args []string) error {
	if len(tuneKeys) == 0 {
		return fmt.Errorf("--keys is required (choose from %v)", config.Keys(algo))
	}
	if len(tuneMins) != len(tuneKeys) || len(tuneMaxs) != len(tuneKeys) {
		return fmt.Errorf("--min and --max need one value per key")
	}

	ranges := make([][]float64, len(tuneKeys))
	for i := range tuneKeys {
		ranges[i] = optim.Linspace(tuneMins[i], tuneMaxs[i], tuneSteps)
	}

	req := &automation.TuneRequest{
		Algorithm: algo,
		Pattern:   pattern,
		Keys:      tuneKeys,
		Ranges:    ranges,
		Duration:  duration,
		Wind:      wind,
		Cost:      tuneCost,
	}

	bestGains, best, err := automation.Tune(context.Background(), req, nil)
	if err != nil {
		return err
	}

	fmt.Printf("\nbest %s: %.6f\n", tuneCost, best)
	for _, key := range tuneKeys {
		fmt.Printf("  %s: %.4f\n", key, bestGains[key])
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	outcomes, err := automation.RunScenario(context.Background(), scenario, st)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tALGO\tPATTERN\tTRACK_RMS\tRUN_ID")
	for i, out := range outcomes {
		id := out.RunID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.4f\t%s\n",
			i+1, out.Step.Algorithm, out.Step.Pattern,
			out.Result.Metrics["tracking_error"], id)
	}
	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadColumn(runID, analyzeChannel)
	if err != nil {
		return err
	}
	if len(series) < 4 {
		return fmt.Errorf("run %s: not enough samples to analyze", runID)
	}

	sampleRate := 1.0 / sim.Dt
	if meta.Dt > 0 {
		sampleRate = 1.0 / meta.Dt
	}

	freqs, power := analysis.Spectrum(series, sampleRate)

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("algorithm: %s  channel: %s\n\n", meta.Algorithm, analyzeChannel)

	graph := asciigraph.Plot(viz.Downsample(power[:len(power)/4], 200),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", analyzeChannel)),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, peak := analysis.DominantFrequency(freqs, power)
	fmt.Printf("dominant frequency: %.3f hz (power %.4g)\n", freq, peak)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	fmt.Printf("total variation: %.4f\n", analysis.TotalVariation(series))
	fmt.Printf("energy above 5 hz: %.1f%%\n", analysis.HighFrequencyFraction(freqs, power, 5.0)*100)

	return nil
}

func benchControllers(cmd *cobra.Command, args []string) error {
	reg := sim.NewRegistry()

	fmt.Printf("timing %.0fs of flight per cell\n\n", duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGO\tINTEG\tSTEPS\tTIME\tSTEPS/SEC")

	for _, name := range control.Algorithms() {
		a, err := control.ParseAlgorithm(name)
		if err != nil {
			return err
		}

		for _, integName := range reg.ListIntegrators() {
			opts := sim.DefaultOptions()
			opts.Algorithm = a
			opts.Pattern = traj.Circle
			opts.Init = dynamics.Vec3{X: opts.TrajParams.Radius, Y: opts.TrajParams.Altitude}

			b, err := sim.NewBench(opts)
			if err != nil {
				return err
			}
			integ, err := reg.GetIntegrator(integName)
			if err != nil {
				return err
			}
			b.SetIntegrator(integ)

			start := time.Now()
			res, err := sim.Run(context.Background(), b, duration, nil)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%.0f\n",
				name, integName, res.Steps, elapsed, float64(res.Steps)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func exportSVGRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := store.New(dataDir)

	var series [4][]float64
	for i, column := range [4]string{"x", "z", "x_ref", "z_ref"} {
		var err error
		if series[i], err = st.LoadColumn(runID, column); err != nil {
			return err
		}
	}

	flown := make([]dynamics.Vec3, 0, len(series[0]))
	for i := range series[0] {
		if i < len(series[1]) {
			flown = append(flown, dynamics.Vec3{X: series[0][i], Z: series[1][i]})
		}
	}
	ref := make([]dynamics.Vec3, 0, len(series[2]))
	for i := range series[2] {
		if i < len(series[3]) {
			ref = append(ref, dynamics.Vec3{X: series[2][i], Z: series[3][i]})
		}
	}

	fmt.Print(export.FlightToSVG(flown, ref, svgWidth, svgHeight))
	return nil
}
