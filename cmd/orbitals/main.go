package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/kav-sh/orbitals/internal/analysis"
	"github.com/kav-sh/orbitals/internal/config"
	"github.com/kav-sh/orbitals/internal/export"
	"github.com/kav-sh/orbitals/internal/metrics"
	"github.com/kav-sh/orbitals/internal/orbit"
	"github.com/kav-sh/orbitals/internal/sim"
	"github.com/kav-sh/orbitals/internal/storage"
	"github.com/kav-sh/orbitals/internal/viz"
)

var (
	dataDir    string
	configFile string
	seed       int64
	ticks      int
	svgOut     string
	sweepRuns  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitals",
		Short: "attribute-driven orbital cluster lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitals", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario headless and record it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = scenario's)")
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "tick count (0 = scenario's)")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "watch a scenario in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	liveCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = scenario's)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot orbital radii from a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run's orbit trails as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgOut, "out", "", "output file (default <run_id>.svg)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "run a scenario across several seeds and compare",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepScenario,
	}
	sweepCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	sweepCmd.Flags().Int64Var(&seed, "seed", 1, "first seed")
	sweepCmd.Flags().IntVar(&ticks, "ticks", 0, "tick count (0 = scenario's)")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 8, "number of seeds")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScenario resolves a preset name or --config file, then applies
// flag overrides.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario: %w", err)
		}
	case len(args) > 0:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown scenario %q (available: %v)", args[0], config.ListPresets())
		}
	default:
		cfg = config.GetPreset("triad")
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Lookup("ticks") != nil && cmd.Flags().Changed("ticks") {
		cfg.Ticks = ticks
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildCluster assembles the cluster and returns name→id for script
// resolution. Ids are assigned in roster order, random bodies after.
func buildCluster(cfg *config.Config, rng *rand.Rand) (*orbit.Cluster, map[string]int64, error) {
	descs := cfg.Descriptors()
	for i := 0; i < cfg.RandomBodies; i++ {
		descs = append(descs, orbit.RandomDescriptor(rng, cfg.Dims))
	}
	cluster, err := orbit.NewCluster(cfg.Physics.ToSimulation(), cfg.Dims, descs, rng)
	if err != nil {
		return nil, nil, err
	}
	names := make(map[string]int64, cluster.Len())
	for _, b := range cluster.Bodies() {
		names[b.Name] = b.ID
	}
	return cluster, names, nil
}

func buildSchedule(cfg *config.Config, names map[string]int64, rng *rand.Rand) ([]sim.Op, error) {
	ops := make([]sim.Op, 0, len(cfg.Script))
	for _, step := range cfg.Script {
		op := sim.Op{Tick: step.Tick, Index: step.Index, Value: step.Value}
		if step.Body != "" {
			id, ok := names[step.Body]
			if !ok {
				return nil, fmt.Errorf("script references unknown body %q", step.Body)
			}
			op.BodyID = id
		}
		switch step.Op {
		case "set_sun":
			op.Kind = sim.OpSetSun
		case "add_body":
			op.Kind = sim.OpAddBody
			d := orbit.RandomDescriptor(rng, cfg.Dims)
			op.Descriptor = &d
		case "remove_body":
			op.Kind = sim.OpRemoveBody
		case "set_attribute":
			op.Kind = sim.OpSetAttribute
		case "set_preference":
			op.Kind = sim.OpSetPreference
		default:
			return nil, fmt.Errorf("unknown script op %q", step.Op)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// radiusSeries collects the mean orbital radius each tick for plotting and
// convergence analysis.
type radiusSeries struct {
	values []float64
}

func (r *radiusSeries) OnTick(c *orbit.Cluster, tick int, nowMs float64) {
	sun := c.Sun()
	if sun == nil {
		return
	}
	sum, n := 0.0, 0
	for _, b := range c.Bodies() {
		if b.Role == orbit.RoleSun || b.Swapping() {
			continue
		}
		dx, dy, dz := b.Pos.X-sun.Pos.X, b.Pos.Y-sun.Pos.Y, b.Pos.Z-sun.Pos.Z
		sum += math.Sqrt(dx*dx + dy*dy + dz*dz)
		n++
	}
	if n > 0 {
		r.values = append(r.values, sum/float64(n))
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runSeed := cfg.Seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(runSeed))

	cluster, names, err := buildCluster(cfg, rng)
	if err != nil {
		return err
	}
	ops, err := buildSchedule(cfg, names, rng)
	if err != nil {
		return err
	}

	runner := sim.New(cluster)
	runner.Schedule(ops...)
	runner.AddMetric(metrics.NewRadiusError())
	runner.AddMetric(metrics.NewMeanCompatibility())
	runner.AddMetric(metrics.NewKineticEnergy())
	runner.AddMetric(metrics.NewSpread())
	series := &radiusSeries{}
	runner.AddObserver(series)

	runCfg := sim.RunConfig{
		Ticks:         cfg.Ticks,
		TickMs:        cfg.TickMs,
		SampleEvery:   cfg.SampleEvery,
		ValidateState: true,
	}

	fmt.Printf("running %s (%d bodies, %d ticks)...\n", cfg.Scenario, cluster.Len(), runCfg.Ticks)
	start := time.Now()
	result, err := runner.Run(context.Background(), runCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Scenario, runSeed, runCfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}

	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range []string{"radius_error", "mean_compatibility", "kinetic_energy", "radius_spread"} {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, result.Metrics[name])
	}
	w.Flush()

	if len(series.values) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(series.values,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("mean orbital radius"),
		))

		conv := analysis.Analyze(series.values, 0.05, 300)
		if conv.Settled {
			settleMs := float64(conv.SettlingIndex) * runCfg.TickMs
			fmt.Printf("\nsettled after %.1fs at radius %.3f (stddev %.4f)\n",
				settleMs/1000, conv.FinalMean, conv.FinalStdDev)
		} else {
			fmt.Printf("\ndid not settle; final mean radius %.3f\n", conv.FinalMean)
		}
	}

	return nil
}

func sweepScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	factory := func(runSeed int64) (*sim.Runner, error) {
		rng := rand.New(rand.NewSource(runSeed))
		cluster, names, err := buildCluster(cfg, rng)
		if err != nil {
			return nil, err
		}
		ops, err := buildSchedule(cfg, names, rng)
		if err != nil {
			return nil, err
		}
		runner := sim.New(cluster)
		runner.Schedule(ops...)
		runner.AddMetric(metrics.NewRadiusError())
		runner.AddMetric(metrics.NewKineticEnergy())
		return runner, nil
	}

	runCfg := sim.RunConfig{
		Ticks:         cfg.Ticks,
		TickMs:        cfg.TickMs,
		SampleEvery:   cfg.SampleEvery,
		ValidateState: true,
	}

	fmt.Printf("sweeping %s across %d seeds (%d..%d)...\n", cfg.Scenario, sweepRuns, seed, seed+int64(sweepRuns)-1)
	start := time.Now()
	results, err := sim.NewEnsemble(factory, sweepRuns, seed).Run(context.Background(), runCfg)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tRADIUS_ERR\tKINETIC\tERRORS")
	radiusErrs := make([]float64, 0, len(results))
	for i, res := range results {
		radiusErrs = append(radiusErrs, res.Metrics["radius_error"])
		fmt.Fprintf(w, "%d\t%.4f\t%.6f\t%d\n",
			seed+int64(i), res.Metrics["radius_error"], res.Metrics["kinetic_energy"], len(res.Errors))
	}
	w.Flush()

	fmt.Printf("\nradius error across seeds: mean %.4f stddev %.4f\n",
		stat.Mean(radiusErrs, nil), stat.StdDev(radiusErrs, nil))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	runSeed := cfg.Seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	factory := func() *orbit.Cluster {
		rng := rand.New(rand.NewSource(runSeed))
		cluster, _, err := buildCluster(cfg, rng)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad scenario: %v\n", err)
			os.Exit(1)
		}
		return cluster
	}
	return viz.Run(factory, runSeed)
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tTICKS\tBODIES\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			len(run.Bodies),
			run.Seed,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	cols, rows, _, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\nscenario: %s\nsamples: %d\n\n", meta.ID, meta.Scenario, len(rows))

	var sunID int64 = -1
	for _, b := range meta.Bodies {
		if b.Sun {
			sunID = b.ID
		}
	}

	colIndex := make(map[string]int, len(cols))
	for i, c := range cols {
		colIndex[c] = i
	}
	lookup := func(id int64, row []float64) (x, y, z float64, ok bool) {
		xi, okx := colIndex[fmt.Sprintf("b%d_x", id)]
		yi, oky := colIndex[fmt.Sprintf("b%d_y", id)]
		zi, okz := colIndex[fmt.Sprintf("b%d_z", id)]
		if !okx || !oky || !okz {
			return 0, 0, 0, false
		}
		return row[xi], row[yi], row[zi], true
	}

	plotted := 0
	for _, b := range meta.Bodies {
		if b.ID == sunID {
			continue
		}
		data := make([]float64, 0, len(rows))
		for _, row := range rows {
			bx, by, bz, ok := lookup(b.ID, row)
			if !ok || math.IsNaN(bx) {
				continue
			}
			sx, sy, sz := 0.0, 0.0, 0.0
			if sunID >= 0 {
				if x, y, z, ok := lookup(sunID, row); ok {
					sx, sy, sz = x, y, z
				}
			}
			dx, dy, dz := bx-sx, by-sy, bz-sz
			data = append(data, math.Sqrt(dx*dx+dy*dy+dz*dz))
		}
		if len(data) < 2 {
			continue
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s: distance to sun", b.Name)),
		))
		fmt.Println()
		plotted++
		if plotted >= 6 {
			break
		}
	}
	if plotted == 0 {
		return fmt.Errorf("no planet series in run %s", runID)
	}
	return nil
}

var exportPalette = []string{
	"#e74c3c", "#3498db", "#2ecc71", "#9b59b6", "#f1c40f",
	"#1abc9c", "#e67e22", "#fd79a8", "#00cec9", "#a29bfe",
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	cols, rows, times, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to export")
	}

	snapshots := seriesToSnapshots(meta, cols, rows, times)
	colors := make(map[int64]string, len(meta.Bodies))
	for i, b := range meta.Bodies {
		if b.Sun {
			colors[b.ID] = "#ffaf00"
			continue
		}
		colors[b.ID] = exportPalette[i%len(exportPalette)]
	}

	svg := export.OrbitsToSVG(export.Trails(snapshots, colors), 1000, 1000)

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

// seriesToSnapshots rebuilds snapshot structures from the recorded csv so
// the exporter has one input shape. NaN cells (removed bodies) drop out.
func seriesToSnapshots(meta *storage.RunMetadata, cols []string, rows [][]float64, times []float64) []sim.Snapshot {
	colIndex := make(map[string]int, len(cols))
	for i, c := range cols {
		colIndex[c] = i
	}
	snaps := make([]sim.Snapshot, 0, len(rows))
	for i, row := range rows {
		snap := sim.Snapshot{TimeMs: times[i]}
		for _, b := range meta.Bodies {
			xi, ok := colIndex[fmt.Sprintf("b%d_x", b.ID)]
			if !ok {
				continue
			}
			yi := colIndex[fmt.Sprintf("b%d_y", b.ID)]
			zi := colIndex[fmt.Sprintf("b%d_z", b.ID)]
			if math.IsNaN(row[xi]) {
				continue
			}
			sample := sim.BodySample{ID: b.ID, Name: b.Name, Sun: b.Sun}
			sample.Position.X, sample.Position.Y, sample.Position.Z = row[xi], row[yi], row[zi]
			snap.Bodies = append(snap.Bodies, sample)
		}
		snaps = append(snaps, snap)
	}
	return snaps
}
