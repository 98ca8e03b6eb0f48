package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/skyrmsim/internal/analysis"
	"github.com/san-kum/skyrmsim/internal/automation"
	"github.com/san-kum/skyrmsim/internal/optim"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
	"github.com/san-kum/skyrmsim/internal/storage"
)

var (
	portraitKind string
	saveRun      bool

	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	searchSpec   string
	searchMetric string
	searchGoal   string
)

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func analyzeRun(cmd *cobra.Command, args []string) error {
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
	if len(records) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("field: %s %s freq %.2f amp %.2f strength %.2f\n\n",
		meta.Field.Direction, meta.Field.PulseType, meta.Field.PulseFreq, meta.Field.PulseAmp, meta.Field.Strength)

	xs := make([]float64, len(records))
	for i, r := range records {
		xs[i] = r.Center.X
	}

	n := 1
	for n < len(xs) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, xs)

	ps := analysis.PowerSpectrum(padded)
	if plotData := ps[:min(len(ps), max(2, len(ps)/4))]; len(plotData) > 1 {
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (center x)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq := analysis.DominantFrequency(xs, skyrmion.Dt)
	fmt.Printf("dominant frequency: %.3f rad/t\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f\n", 2*math.Pi/freq)
	}

	path := analysis.CenterPath(records)
	stats := analysis.TrajectoryStats(path.Points)
	fmt.Printf("\ncenter mean:   (%.3f, %.3f)\n", stats.Mean.X, stats.Mean.Y)
	fmt.Printf("center stddev: (%.3f, %.3f)\n", stats.StdDev.X, stats.StdDev.Y)
	fmt.Printf("bounding box:  (%.2f, %.2f) - (%.2f, %.2f)\n", stats.Min.X, stats.Min.Y, stats.Max.X, stats.Max.Y)
	fmt.Printf("path length:   %.3f\n", stats.PathLength)
	if q, ok := meta.Metrics["topological_charge"]; ok {
		fmt.Printf("topological Q: %.4f\n", q)
	}

	var portrait *analysis.PhasePortrait2D
	switch portraitKind {
	case "path":
		portrait = path
	case "drive-x":
		portrait = analysis.DriveResponse(records, 0)
	case "drive-y":
		portrait = analysis.DriveResponse(records, 1)
	case "strobe":
		portrait = analysis.StroboscopicSection(records, meta.Field.PulseFreq)
	default:
		return fmt.Errorf("unknown portrait %q", portraitKind)
	}

	fmt.Printf("\n%s vs %s (%d points)\n", portrait.YLabel, portrait.XLabel, len(portrait.Points))
	fmt.Print(analysis.PhasePortraitToASCII(portrait, 60, 20))
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario %s: %d segments, %d ticks\n", sc.Name, len(sc.Segments), sc.TotalTicks())
	result, err := automation.RunScenario(ctx, sc, cfg.SkyrmionConfig())
	if err != nil {
		return err
	}

	last := result.Records[len(result.Records)-1]
	fmt.Printf("final center: (%.3f, %.3f) at t=%.2f\n", last.Center.X, last.Center.Y, last.Time)
	printMetrics(result.Metrics)

	if saveRun {
		cfg.Ticks = sc.TotalTicks()
		name := sc.Name
		if name == "" {
			name = "scenario"
		}
		runID, err := saveResult(cfg, name, result)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	base := cfg.NewController().Snapshot()

	ctx, cancel := signalContext()
	defer cancel()

	if searchSpec != "" {
		names, ranges, err := parseSearchSpec(searchSpec)
		if err != nil {
			return err
		}
		goal, err := optim.ParseGoal(searchGoal)
		if err != nil {
			return err
		}

		gs := optim.NewGridSearch(names, ranges, goal)
		best, val, err := gs.Search(ctx, cfg.SkyrmionConfig(), base, cfg.Ticks, searchMetric)
		if err != nil {
			return err
		}

		fmt.Printf("best %s: %.6f\n", searchMetric, val)
		for _, name := range sortedKeys(best) {
			fmt.Printf("  %s = %.4f\n", name, best[name])
		}
		return nil
	}

	ps := &automation.ParameterSweep{
		Param: sweepParam,
		Min:   sweepMin,
		Max:   sweepMax,
		Steps: sweepSteps,
		Ticks: cfg.Ticks,
		Field: cfg.SkyrmionConfig(),
		Base:  base,
	}
	results, err := automation.RunSweep(ctx, ps)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	names := sortedKeys(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(sweepParam), strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f", r.ParamValue)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

// parseSearchSpec reads "name=min:max:steps,..." into evenly spaced value
// lists.
func parseSearchSpec(spec string) ([]string, [][]float64, error) {
	var names []string
	var ranges [][]float64

	for _, part := range strings.Split(spec, ",") {
		name, rng, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, nil, fmt.Errorf("bad search term %q (want name=min:max:steps)", part)
		}
		fields := strings.Split(rng, ":")
		if len(fields) != 3 {
			return nil, nil, fmt.Errorf("bad range %q (want min:max:steps)", rng)
		}
		lo, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, nil, err
		}
		hi, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, nil, err
		}
		steps, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, nil, err
		}

		ps := automation.ParameterSweep{Min: lo, Max: hi, Steps: steps}
		names = append(names, name)
		ranges = append(ranges, ps.Values())
	}
	return names, ranges, nil
}
