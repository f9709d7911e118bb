package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gridflow/internal/analysis"
	"github.com/san-kum/gridflow/internal/config"
	"github.com/san-kum/gridflow/internal/engine"
	"github.com/san-kum/gridflow/internal/metrics"
	"github.com/san-kum/gridflow/internal/storage"
	"github.com/san-kum/gridflow/internal/viz"
)

var (
	dataDir string

	width       int
	height      int
	gravity     float64
	flowSpeed   float64
	vorticity   float64
	spatialFreq float64
	damping     float64

	ticks    int
	autoEmit bool
	graph    bool

	dropX      int
	dropY      int
	dropMass   float64
	dropRadius float64

	configFile string
	preset     string
	frameRate  int
	output     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridflow",
		Short: "grid-based water flow simulation",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gridflow", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [name]",
		Short: "run a headless simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().IntVar(&ticks, "ticks", 600, "number of ticks")
	runCmd.Flags().BoolVar(&autoEmit, "emit", false, "enable the auto-emitter")
	runCmd.Flags().BoolVar(&graph, "graph", false, "plot total mass history after the run")
	runCmd.Flags().IntVar(&dropX, "drop-x", 0, "droplet x (0 = grid center)")
	runCmd.Flags().IntVar(&dropY, "drop-y", 0, "droplet y (0 = upper quarter)")
	runCmd.Flags().Float64Var(&dropMass, "drop-mass", 0, "seed a droplet with this mass before the run")
	runCmd.Flags().Float64Var(&dropRadius, "drop-radius", 2, "droplet brush radius")

	liveCmd := &cobra.Command{
		Use:   "live [name]",
		Short: "interactive live view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().BoolVar(&autoEmit, "emit", false, "enable the auto-emitter")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "tick rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a run's mass series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark ticks per second across grid sizes",
		RunE:  benchGrids,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, exportCmd, analyzeCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "grid width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "grid height")
	cmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "downward bias")
	cmd.Flags().Float64Var(&flowSpeed, "flow-speed", config.DefaultFlowSpeed, "lateral spreading rate")
	cmd.Flags().Float64Var(&vorticity, "vorticity", config.DefaultVorticityStrength, "vorticity forcing strength")
	cmd.Flags().Float64Var(&spatialFreq, "spatial-freq", config.DefaultSpatialFreq, "vorticity phase frequency")
	cmd.Flags().Float64Var(&damping, "damping", config.DefaultVelocityDamping, "per-tick velocity damping")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves preset, config file, and flags in increasing
// precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, names)
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

	if cmd.Flags().Changed("width") {
		cfg.GridWidth = width
	}
	if cmd.Flags().Changed("height") {
		cfg.GridHeight = height
	}
	if cmd.Flags().Changed("gravity") {
		cfg.Gravity = gravity
	}
	if cmd.Flags().Changed("flow-speed") {
		cfg.FlowSpeed = flowSpeed
	}
	if cmd.Flags().Changed("vorticity") {
		cfg.VorticityStrength = vorticity
	}
	if cmd.Flags().Changed("spatial-freq") {
		cfg.SpatialFreq = spatialFreq
	}
	if cmd.Flags().Changed("damping") {
		cfg.VelocityDamping = damping
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	name := "run"
	if len(args) > 0 {
		name = args[0]
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg.Engine())
	if err != nil {
		return err
	}
	eng.SetAutoEmit(autoEmit)

	if dropMass > 0 {
		x, y := dropX, dropY
		if x == 0 {
			x = cfg.GridWidth / 2
		}
		if y == 0 {
			y = cfg.GridHeight / 4
		}
		eng.ApplyEdit(x, y, dropRadius, engine.AddWater, dropMass)
	}

	ms := []engine.Metric{
		metrics.NewTotalMass(),
		metrics.NewMassDrift(),
		metrics.NewCoverage(),
		metrics.NewPeakSpeed(),
		metrics.NewSpread(),
	}

	start := time.Now()
	result, err := eng.Run(context.Background(), ticks, ms)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(name, cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d ticks in %s (%.0f ticks/s)\n\n",
		runID, ticks, elapsed.Round(time.Millisecond), float64(ticks)/elapsed.Seconds())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	names := make([]string, 0, len(result.Metrics))
	for n := range result.Metrics {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "%s\t%.6f\n", n, result.Metrics[n])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if graph && len(result.Series) > 1 {
		history := make([]float64, len(result.Series))
		for i, ts := range result.Series {
			history[i] = ts.TotalMass
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(history, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("total mass")))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	name := "gridflow"
	if len(args) > 0 {
		name = args[0]
	}
	if preset != "" && name == "gridflow" {
		name = preset
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg.Engine())
	if err != nil {
		return err
	}
	eng.SetAutoEmit(autoEmit)

	return viz.Run(eng, name, frameRate)
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tGRID\tTICKS\tDRIFT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%.6f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.GridWidth,
			run.Config.GridHeight,
			run.Ticks,
			run.Metrics["mass_drift"],
		)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, series, err := st.Load(runID)
	if err != nil {
		return err
	}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return storage.ExportJSON(out, meta, series)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, series, err := st.Load(runID)
	if err != nil {
		return err
	}
	if len(series) < 4 {
		return fmt.Errorf("run %s is too short to analyze (%d ticks)", runID, len(series))
	}

	data := make([]float64, len(series))
	for i, ts := range series {
		data[i] = ts.TotalMass
	}

	fmt.Printf("frequency analysis: %s (%d ticks)\n\n", meta.ID, meta.Ticks)

	ps := analysis.Spectrum(data)
	fmt.Println(asciigraph.Plot(analysis.LowQuarter(ps),
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("power spectrum (total mass)"),
	))
	fmt.Println()

	if period := analysis.DominantPeriod(data); period > 0 {
		fmt.Printf("dominant period: %.1f ticks\n", period)
	} else {
		fmt.Println("no oscillation detected")
	}
	return nil
}

func benchGrids(cmd *cobra.Command, args []string) error {
	sizes := []struct{ w, h int }{
		{40, 20},
		{80, 40},
		{160, 80},
		{320, 160},
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tTICKS\tELAPSED\tTICKS/S")
	const benchTicks = 200
	for _, size := range sizes {
		cfg := engine.DefaultConfig()
		cfg.Width, cfg.Height = size.w, size.h

		eng, err := engine.New(cfg)
		if err != nil {
			return err
		}
		eng.SetAutoEmit(true)

		start := time.Now()
		for i := 0; i < benchTicks; i++ {
			eng.Step()
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "%dx%d\t%d\t%s\t%.0f\n",
			size.w, size.h, benchTicks, elapsed.Round(time.Millisecond), benchTicks/elapsed.Seconds())
	}
	return w.Flush()
}
