package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/skyrmsim/internal/config"
	"github.com/san-kum/skyrmsim/internal/efield"
	"github.com/san-kum/skyrmsim/internal/export"
	"github.com/san-kum/skyrmsim/internal/gui"
	"github.com/san-kum/skyrmsim/internal/metrics"
	"github.com/san-kum/skyrmsim/internal/sim"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
	"github.com/san-kum/skyrmsim/internal/storage"
	"github.com/san-kum/skyrmsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	gridSize   int
	coreRadius float64
	dmi        float64
	strength   float64
	direction  string
	pulseType  string
	pulseFreq  float64
	pulseAmp   float64
	ticks      int
	frameRate  int

	label     string
	gifPath   string
	imagePath string
	svgPath   string
	start3D   bool
	arrowStep int
	outPath   string
	scale     int
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("skyrmsim: ")

	rootCmd := &cobra.Command{
		Use:   "skyrmsim",
		Short: "electric-field driven néel skyrmion simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(viz.DefaultOptions())
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save its record",
		RunE:  runSimulation,
	}
	addFieldFlags(runCmd)
	runCmd.Flags().StringVar(&label, "label", "", "run label (defaults to the preset name)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with the terminal visualisation",
		RunE:  runLive,
	}
	addFieldFlags(liveCmd)
	addOutputFlags(liveCmd)
	liveCmd.Flags().BoolVar(&start3D, "3d", false, "start in the 3D view")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run with the desktop window",
		RunE:  runGUI,
	}
	addFieldFlags(guiCmd)
	addOutputFlags(guiCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run records to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and records to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render the spin texture to png, webp or svg",
		RunE:  snapshot,
	}
	addFieldFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "skyrmion.png", "output file (.png, .webp or .svg)")
	snapshotCmd.Flags().IntVar(&arrowStep, "step", 4, "arrow spacing for svg output")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and trajectory analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&portraitKind, "portrait", "path", "portrait: path, drive-x, drive-y or strobe")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "play a scripted field protocol",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addFieldFlags(scenarioCmd)
	scenarioCmd.Flags().BoolVar(&saveRun, "save", false, "save the run record")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one field parameter or grid-search several",
		RunE:  runSweep,
	}
	addFieldFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "strength", "parameter to sweep: strength, freq or amp")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "sweep start")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "sweep end")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of sweep points")
	sweepCmd.Flags().StringVar(&searchSpec, "search", "", "grid search, e.g. strength=0:1:5,freq=1:4:4")
	sweepCmd.Flags().StringVar(&searchMetric, "metric", "max_displacement", "metric the search optimises")
	sweepCmd.Flags().StringVar(&searchGoal, "goal", "max", "search goal: min or max")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGRID\tCORE\tDMI\tSTRENGTH\tDIR\tPULSE\tFREQ\tAMP")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.1f\t%.2f\t%.2f\t%s\t%s\t%.1f\t%.1f\n",
					name, p.GridSize, p.CoreRadius, p.DMI,
					p.Field.Strength, p.Field.Direction, p.Field.PulseType, p.Field.PulseFreq, p.Field.PulseAmp)
			}
			w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd,
		snapshotCmd, analyzeCmd, scenarioCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addFieldFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.IntVar(&gridSize, "grid", skyrmion.DefaultGridSize, "lattice size")
	f.Float64Var(&coreRadius, "radius", skyrmion.DefaultCoreRadius, "core radius")
	f.Float64Var(&dmi, "dmi", skyrmion.DefaultDMI, "DMI strength")
	f.Float64Var(&strength, "strength", efield.DefaultStrength, "field strength")
	f.StringVar(&direction, "dir", efield.DefaultDirection.String(), "field direction: "+strings.Join(efield.DirectionNames(), ", "))
	f.StringVar(&pulseType, "pulse", string(efield.DefaultPulse), "pulse type: "+strings.Join(efield.PulseTypeNames(), ", "))
	f.Float64Var(&pulseFreq, "freq", efield.DefaultFreq, "pulse frequency")
	f.Float64Var(&pulseAmp, "amp", efield.DefaultAmp, "pulse amplitude")
	f.IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	f.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	f.IntVar(&scale, "scale", config.DefaultScale, "pixels per lattice site in saved images")
}

// fieldFlags pin the lattice or the drive; fps and output paths do not.
var fieldFlags = []string{
	"config", "preset", "grid", "radius", "dmi",
	"strength", "dir", "pulse", "freq", "amp", "ticks", "scale",
}

// wantsMenu reports whether gui should open on the preset menu, which is
// only when no field flag was given.
func wantsMenu(cmd *cobra.Command) bool {
	for _, name := range fieldFlags {
		if cmd.Flags().Changed(name) {
			return false
		}
	}
	return true
}

func addOutputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&gifPath, "gif", "skyrmion.gif", "gif recording path")
	f.StringVar(&imagePath, "image", "skyrmion.png", "snapshot path (.png or .webp)")
	f.StringVar(&svgPath, "svg", "skyrmion.svg", "svg export path")
	f.IntVar(&arrowStep, "step", 4, "arrow spacing")
}

// resolveConfig layers preset, config file and explicitly set flags, in that
// order.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "run"

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		name = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("grid") {
		cfg.GridSize = gridSize
	}
	if flags.Changed("radius") {
		cfg.CoreRadius = coreRadius
	}
	if flags.Changed("dmi") {
		cfg.DMI = dmi
	}
	if flags.Changed("strength") {
		cfg.Field.Strength = strength
	}
	if flags.Changed("dir") {
		cfg.Field.Direction = direction
	}
	if flags.Changed("pulse") {
		cfg.Field.PulseType = pulseType
	}
	if flags.Changed("freq") {
		cfg.Field.PulseFreq = pulseFreq
	}
	if flags.Changed("amp") {
		cfg.Field.PulseAmp = pulseAmp
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("scale") {
		cfg.Scale = scale
	}
	if !flags.Changed("data") && cfg.DataDir != "" {
		dataDir = cfg.DataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func buildField(cmd *cobra.Command) (*config.Config, string, *efield.Controller, *skyrmion.Field, error) {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return nil, "", nil, nil, err
	}
	field, err := skyrmion.New(cfg.SkyrmionConfig())
	if err != nil {
		return nil, "", nil, nil, err
	}
	return cfg, name, cfg.NewController(), field, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func fieldInfo(cfg *config.Config) storage.FieldInfo {
	return storage.FieldInfo{
		Strength:  cfg.Field.Strength,
		Direction: cfg.Field.Direction,
		PulseType: cfg.Field.PulseType,
		PulseFreq: cfg.Field.PulseFreq,
		PulseAmp:  cfg.Field.PulseAmp,
	}
}

func saveResult(cfg *config.Config, name string, result *sim.Result) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	return st.Save(storage.RunMetadata{
		Label:      name,
		GridSize:   cfg.GridSize,
		CoreRadius: cfg.CoreRadius,
		DMI:        cfg.DMI,
		Field:      fieldInfo(cfg),
		Ticks:      cfg.Ticks,
	}, result)
}

func printMetrics(m map[string]float64) {
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(m) {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, ctrl, field, err := buildField(cmd)
	if err != nil {
		return err
	}
	if label != "" {
		name = label
	}

	s := sim.New(ctrl, field)
	for _, m := range metrics.Default(field.Origin()) {
		s.AddMetric(m)
	}

	ctx, cancel := signalContext()
	defer cancel()

	simCfg := sim.DefaultConfig()
	simCfg.Ticks = cfg.Ticks

	fmt.Printf("running %s for %d ticks...\n", name, cfg.Ticks)
	start := time.Now()

	result, err := s.Run(ctx, simCfg)
	if err != nil {
		if result == nil || len(result.Records) == 0 {
			return err
		}
		log.Printf("run stopped early: %v", err)
	}
	for _, e := range result.Errors {
		log.Printf("warning: %v", e)
	}

	elapsed := time.Since(start)

	runID, err := saveResult(cfg, name, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	printMetrics(result.Metrics)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, ctrl, field, err := buildField(cmd)
	if err != nil {
		return err
	}
	opts := viz.DefaultOptions()
	opts.ImageScale = cfg.Scale
	if preset != "" {
		opts.Label = name
	}
	opts.ArrowStep = arrowStep
	opts.GIFPath = gifPath
	opts.ImagePath = imagePath
	opts.SVGPath = svgPath
	opts.Start3D = start3D
	return viz.Run(ctrl, field, opts)
}

func runGUI(cmd *cobra.Command, args []string) error {
	opts := gui.Options{
		FPS:       frameRate,
		ArrowStep: arrowStep,
		GIFPath:   gifPath,
		ImagePath: imagePath,
	}
	if wantsMenu(cmd) {
		gui.RunInteractive(opts)
		return nil
	}

	cfg, name, ctrl, field, err := buildField(cmd)
	if err != nil {
		return err
	}
	opts.Title = name
	opts.FPS = cfg.FPS
	opts.ImageScale = cfg.Scale
	gui.Run(ctrl, field, opts)
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
	fmt.Fprintln(w, "ID\tTIME\tGRID\tSTRENGTH\tDIR\tPULSE\tFREQ\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%s\t%s\t%.1f\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.GridSize,
			run.Field.Strength,
			run.Field.Direction,
			run.Field.PulseType,
			run.Field.PulseFreq,
			run.Steps,
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

	records, err := st.LoadRecords(runID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(records))

	series := []struct {
		caption string
		value   func(r sim.Record) float64
	}{
		{"center x", func(r sim.Record) float64 { return r.Center.X }},
		{"center y", func(r sim.Record) float64 { return r.Center.Y }},
		{"drive", func(r sim.Record) float64 { return r.Drive }},
		{"rotation frequency", func(r sim.Record) float64 { return r.RotationFreq }},
	}

	for _, s := range series {
		data := make([]float64, len(records))
		for i, r := range records {
			data[i] = s.value(r)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	records, err := st.LoadRecords(args[0])
	if err != nil {
		return err
	}
	return storage.WriteRecordsCSV(os.Stdout, records)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportRun(os.Stdout, args[0])
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, _, ctrl, field, err := buildField(cmd)
	if err != nil {
		return err
	}

	spins := field.Spins()
	if cmd.Flags().Changed("ticks") {
		for i := 0; i < cfg.Ticks; i++ {
			spins = field.Step(ctrl.Snapshot())
		}
	}

	if strings.EqualFold(filepath.Ext(outPath), ".svg") {
		svg := export.QuiverSVG(spins, arrowStep, float64(cfg.Scale))
		if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
			return err
		}
	} else if err := export.SaveImage(outPath, export.SpinImage(spins, cfg.Scale)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (t=%.2f, center %.2f,%.2f)\n", outPath, field.Time(), field.Center().X, field.Center().Y)
	return nil
}
