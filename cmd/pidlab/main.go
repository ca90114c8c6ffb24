package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pidlab/internal/config"
	"github.com/san-kum/pidlab/internal/metrics"
	"github.com/san-kum/pidlab/internal/sim"
	"github.com/san-kum/pidlab/internal/store"
	"github.com/san-kum/pidlab/internal/tui"
	"github.com/san-kum/pidlab/internal/ui"
	"github.com/spf13/cobra"
)

var (
	dataDir string

	kp          float64
	ki          float64
	kd          float64
	setpoint    float64
	tau         float64
	wn          float64
	zeta        float64
	disturbance float64
	noiseStd    float64
	dt          float64
	duration    float64
	seed        int64
	outMin      float64
	outMax      float64

	configFile string
	preset     string
	saveConfig string
)

// main registers commands and flags, launches the interactive tuner
// when no subcommand is given, and exits 1 on command error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "pidlab",
		Short: "interactive pid controller tuning lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(config.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pidlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a headless simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "proportional gain")
	runCmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "integral gain")
	runCmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "derivative gain")
	runCmd.Flags().Float64Var(&setpoint, "setpoint", config.DefaultSetpoint, "target value")
	runCmd.Flags().Float64Var(&tau, "tau", config.DefaultTau, "time constant (first_order)")
	runCmd.Flags().Float64Var(&wn, "wn", 2.0, "natural frequency (second_order)")
	runCmd.Flags().Float64Var(&zeta, "zeta", 1.0, "damping ratio (second_order)")
	runCmd.Flags().Float64Var(&disturbance, "disturbance", 0, "constant input disturbance")
	runCmd.Flags().Float64Var(&noiseStd, "noise", 0, "measurement noise std dev")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().Float64Var(&outMin, "out-min", 0, "controller output floor")
	runCmd.Flags().Float64Var(&outMax, "out-max", 0, "controller output ceiling")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the effective config to a yaml file")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal tuner",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if configFile != "" {
				loaded, err := config.Load(configFile)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				cfg = loaded
			}
			return tui.Run(cfg)
		},
	}
	tuiCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

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
		Short: "export run trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	rootCmd.AddCommand(runCmd, tuiCmd, presetsCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd)
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
}

// buildConfig resolves the effective run config: preset first, then
// config file, then explicitly set CLI flags on top.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	model := config.ModelFirstOrder
	if len(args) > 0 {
		model = args[0]
	}

	cfg := config.DefaultConfig()
	cfg.ProcessModel = model
	if model == config.ModelSecondOrder {
		cfg.TimeConstant = 0
		cfg.NaturalFrequency = wn
		cfg.DampingRatio = zeta
	}

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("kp", func() { cfg.Kp = kp })
	set("ki", func() { cfg.Ki = ki })
	set("kd", func() { cfg.Kd = kd })
	set("setpoint", func() { cfg.Setpoint = setpoint })
	set("tau", func() { cfg.TimeConstant = tau })
	set("wn", func() { cfg.NaturalFrequency = wn })
	set("zeta", func() { cfg.DampingRatio = zeta })
	set("disturbance", func() { cfg.Disturbance = disturbance })
	set("noise", func() { cfg.NoiseStdDev = noiseStd })
	set("dt", func() { cfg.Dt = dt })
	set("time", func() { cfg.Duration = duration })
	set("seed", func() { cfg.Seed = seed })
	set("out-min", func() { cfg.OutputMin = outMin })
	set("out-max", func() { cfg.OutputMax = outMax })

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		ui.Info("wrote config to %s", saveConfig)
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ui.Printf("running %s simulation...\n", cfg.ProcessModel)
	start := time.Now()

	loop, err := sim.Run(context.Background(), cfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	trace := loop.Trace()

	report := metrics.Compute(trace)
	effort := metrics.NewControlEffort()
	for _, s := range trace {
		effort.Observe(s)
	}

	runID, err := st.Save(*cfg, trace, report)
	if err != nil {
		return err
	}

	ui.Printf("completed in %v\n", elapsed)
	ui.Printf("run id: %s\n", runID)
	ui.Printf("steps: %d\n", len(trace))
	ui.Println("\nmetrics:")
	for name, val := range store.MetricsMap(report) {
		ui.Printf("  %s: %.6f\n", name, val)
	}
	ui.Printf("  control_effort: %.6f\n", effort.Value())

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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSTEPS\tDURATION\tDT\tSETPOINT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.4fs\t%.2f\n",
			run.ID,
			run.Config.ProcessModel,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Config.Duration,
			run.Config.Dt,
			run.Config.Setpoint,
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

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(trace) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Config.ProcessModel)
	fmt.Printf("samples: %d\n\n", len(trace))

	outputs := make([]float64, len(trace))
	controls := make([]float64, len(trace))
	for i, s := range trace {
		outputs[i] = s.Output
		controls[i] = s.Control
	}

	fmt.Println(asciigraph.Plot(outputs,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("output (setpoint %.2f)", meta.Config.Setpoint)),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(controls,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("control signal"),
	))
	fmt.Println()

	if len(meta.Metrics) > 0 {
		fmt.Println("metrics:")
		for name, val := range meta.Metrics {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	} else {
		ui.Warning("no metrics recorded for this run")
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	if len(trace) == 0 {
		return fmt.Errorf("no data to export")
	}

	return store.WriteCSV(os.Stdout, trace)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	return store.WriteJSON(os.Stdout, *meta, trace)
}
