package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/dualgrad/internal/config"
	"github.com/san-kum/dualgrad/internal/descent"
	"github.com/san-kum/dualgrad/internal/dual"
	"github.com/san-kum/dualgrad/internal/objective"
	"github.com/san-kum/dualgrad/internal/store"
	"github.com/san-kum/dualgrad/internal/tui"
	"github.com/san-kum/dualgrad/internal/tune"
)

var (
	dataDir      string
	learningRate float64
	steps        int
	initWeight   float64
	tolerance    float64
	seed         int64
	configFile   string
	preset       string
	frameRate    int
	// Eval sampling range
	atPoint float64
	fromX   float64
	toX     float64
	points  int
	// Tune grids
	lrGrid     string
	initGrid   string
	metricName string
	// Multistart initial weights
	inits string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dualgrad",
		Short: "forward-mode autodiff and gradient descent lab",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dualgrad", "data directory")

	descendCmd := &cobra.Command{
		Use:   "descend [function]",
		Short: "run gradient descent",
		Args:  cobra.ExactArgs(1),
		RunE:  runDescend,
	}
	descendCmd.Flags().Float64Var(&learningRate, "lr", config.DefaultLearningRate, "learning rate")
	descendCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "maximum steps")
	descendCmd.Flags().Float64Var(&initWeight, "init", config.DefaultInit, "initial weight")
	descendCmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "gradient tolerance")
	descendCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	descendCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	descendCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	evalCmd := &cobra.Command{
		Use:   "eval [function]",
		Short: "evaluate value and derivative",
		Args:  cobra.ExactArgs(1),
		RunE:  runEval,
	}
	evalCmd.Flags().Float64Var(&atPoint, "at", config.DefaultInit, "evaluation point")
	evalCmd.Flags().Float64Var(&fromX, "from", -3.0, "sampling range start")
	evalCmd.Flags().Float64Var(&toX, "to", 3.0, "sampling range end")
	evalCmd.Flags().IntVar(&points, "points", 80, "number of sample points")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [function]",
		Short: "run descent with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&learningRate, "lr", config.DefaultLearningRate, "learning rate")
	liveCmd.Flags().IntVar(&steps, "steps", 1000, "maximum steps")
	liveCmd.Flags().Float64Var(&initWeight, "init", config.DefaultInit, "initial weight")
	liveCmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "gradient tolerance")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	tuneCmd := &cobra.Command{
		Use:   "tune [function]",
		Short: "grid-search learning rate and initial weight",
		Args:  cobra.ExactArgs(1),
		RunE:  runTune,
	}
	tuneCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "maximum steps per run")
	tuneCmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "gradient tolerance")
	tuneCmd.Flags().StringVar(&lrGrid, "lrs", "0.01,0.2,0.4,0.8", "learning rates to try")
	tuneCmd.Flags().StringVar(&initGrid, "inits", "3.0", "initial weights to try")
	tuneCmd.Flags().StringVar(&metricName, "metric", "final_loss", "result metric to minimize")

	multistartCmd := &cobra.Command{
		Use:   "multistart [function]",
		Short: "descend from several initial weights concurrently",
		Args:  cobra.ExactArgs(1),
		RunE:  runMultistart,
	}
	multistartCmd.Flags().Float64Var(&learningRate, "lr", config.DefaultLearningRate, "learning rate")
	multistartCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "maximum steps")
	multistartCmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "gradient tolerance")
	multistartCmd.Flags().StringVar(&inits, "inits", "-3.0,-1.0,1.0,3.0", "initial weights")

	presetsCmd := &cobra.Command{
		Use:   "presets [function]",
		Short: "list available presets for a function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for function: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	functionsCmd := &cobra.Command{
		Use:   "functions",
		Short: "list available objective functions",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range objective.NewRegistry().List() {
				fmt.Println(name)
			}
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	rootCmd.AddCommand(descendCmd, evalCmd, listCmd, plotCmd, liveCmd, tuneCmd, multistartCmd, presetsCmd, functionsCmd, exportCmd, exportCSVCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDescend(cmd *cobra.Command, args []string) error {
	function := args[0]

	// Load preset if specified
	if preset != "" {
		cfg := config.GetPreset(function, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(function))
		}
		learningRate = cfg.LearningRate
		steps = cfg.Steps
		initWeight = cfg.Init
		tolerance = cfg.Tolerance
	}

	// Load config file if specified (CLI flags override config)
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.Function != "" {
			function = cfg.Function
		}
		if !cmd.Flags().Changed("lr") {
			learningRate = cfg.LearningRate
		}
		if !cmd.Flags().Changed("steps") {
			steps = cfg.Steps
		}
		if !cmd.Flags().Changed("init") {
			initWeight = cfg.Init
		}
		if !cmd.Flags().Changed("tol") {
			tolerance = cfg.Tolerance
		}
		if cfg.Seed != 0 && !cmd.Flags().Changed("seed") {
			seed = cfg.Seed
		}
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := objective.NewRegistry()
	obj, err := registry.Get(function)
	if err != nil {
		return err
	}

	d := descent.New(obj)
	for _, m := range registry.DefaultMetrics() {
		d.AddMetric(m)
	}

	cfg := descent.Config{
		LearningRate:  learningRate,
		Steps:         steps,
		Tolerance:     tolerance,
		Seed:          seed,
		ValidateState: true,
	}

	fmt.Printf("descending %s from w=%g...\n", function, initWeight)
	start := time.Now()

	result, err := d.Run(context.Background(), initWeight, cfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(function, cfg, initWeight, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Printf("converged: %v\n", result.Converged)
	fmt.Printf("final weight: %.9f\n", result.FinalWeight)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runEval(cmd *cobra.Command, args []string) error {
	registry := objective.NewRegistry()
	obj, err := registry.Get(args[0])
	if err != nil {
		return err
	}

	y, err := obj.Eval(dual.Var(atPoint))
	if err != nil {
		return err
	}
	fmt.Printf("%s at %g:\n", obj.Name(), atPoint)
	fmt.Printf("  f(x)  = %.9f\n", y.Real)
	fmt.Printf("  f'(x) = %.9f\n\n", y.Tangent)

	_, values, derivs, err := objective.Sample(obj, fromX, toX, points)
	if err != nil {
		return err
	}

	graph := asciigraph.Plot(values,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("f(x) on [%g, %g]", fromX, toX)),
	)
	fmt.Println(graph)
	fmt.Println()

	graph = asciigraph.Plot(derivs,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("f'(x) on [%g, %g]", fromX, toX)),
	)
	fmt.Println(graph)

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFUNCTION\tTIME\tLR\tSTEPS\tINIT\tCONVERGED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%d\t%.2f\t%v\n",
			run.ID,
			run.Function,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.LearningRate,
			run.Steps,
			run.Init,
			run.Converged,
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

	weights, losses, grads, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(weights) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("function: %s\n", meta.Function)
	fmt.Printf("samples: %d\n\n", len(weights))

	for _, series := range []struct {
		caption string
		data    []float64
	}{
		{"weight vs step", weights},
		{"loss vs step", losses},
		{"gradient vs step", grads},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	registry := objective.NewRegistry()
	obj, err := registry.Get(args[0])
	if err != nil {
		return err
	}

	cfg := descent.Config{
		LearningRate:  learningRate,
		Steps:         steps,
		Tolerance:     tolerance,
		ValidateState: true,
	}

	return tui.Run(obj, initWeight, cfg, frameRate)
}

func runTune(cmd *cobra.Command, args []string) error {
	registry := objective.NewRegistry()
	obj, err := registry.Get(args[0])
	if err != nil {
		return err
	}

	lrs, err := parseFloats(lrGrid)
	if err != nil {
		return fmt.Errorf("invalid --lrs: %w", err)
	}
	initsList, err := parseFloats(initGrid)
	if err != nil {
		return fmt.Errorf("invalid --inits: %w", err)
	}

	gs := tune.NewGridSearch(
		[]string{"lr", "init"},
		[][]float64{lrs, initsList},
	)

	run := func(params map[string]float64) (*descent.Result, error) {
		cfg := descent.Config{
			LearningRate:  params["lr"],
			Steps:         steps,
			Tolerance:     tolerance,
			ValidateState: true,
		}
		return descent.New(obj).Run(context.Background(), params["init"], cfg)
	}

	fmt.Printf("tuning %s over %d combinations...\n", obj.Name(), len(lrs)*len(initsList))

	bestParams, bestVal, err := gs.Search(context.Background(), run, metricName)
	if err != nil {
		return err
	}
	if bestParams == nil {
		return fmt.Errorf("no combination produced metric %q", metricName)
	}

	fmt.Printf("best %s: %.9f\n", metricName, bestVal)
	fmt.Printf("  lr:   %g\n", bestParams["lr"])
	fmt.Printf("  init: %g\n", bestParams["init"])

	return nil
}

func runMultistart(cmd *cobra.Command, args []string) error {
	registry := objective.NewRegistry()
	obj, err := registry.Get(args[0])
	if err != nil {
		return err
	}

	initsList, err := parseFloats(inits)
	if err != nil {
		return fmt.Errorf("invalid --inits: %w", err)
	}

	cfg := descent.Config{
		LearningRate:  learningRate,
		Steps:         steps,
		Tolerance:     tolerance,
		ValidateState: true,
	}

	ms := descent.NewMultistart(obj, initsList)
	results, err := ms.Run(context.Background(), cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INIT\tFINAL\tLOSS\tCONVERGED")
	for i, r := range results {
		finalLoss := 0.0
		if len(r.Losses) > 0 {
			finalLoss = r.Losses[len(r.Losses)-1]
		}
		fmt.Fprintf(w, "%.2f\t%.6f\t%.9f\t%v\n", initsList[i], r.FinalWeight, finalLoss, r.Converged)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	idx, best := descent.Best(results)
	if best != nil {
		fmt.Printf("\nbest start: %g (final weight %.6f)\n", initsList[idx], best.FinalWeight)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	weights, losses, grads, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"step", "weight", "loss", "grad"}); err != nil {
		return err
	}
	for i := range weights {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(weights[i], 'f', 9, 64),
			strconv.FormatFloat(losses[i], 'f', 9, 64),
			strconv.FormatFloat(grads[i], 'f', 9, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("no values in %q", s)
	}
	return vals, nil
}
