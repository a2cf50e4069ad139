package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mverhelle/folio/internal/config"
	"github.com/mverhelle/folio/internal/export"
	"github.com/mverhelle/folio/internal/gui"
	"github.com/mverhelle/folio/internal/scenario"
	"github.com/mverhelle/folio/internal/sim"
	"github.com/mverhelle/folio/internal/storage"
	"github.com/mverhelle/folio/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	route, _ := cmd.Flags().GetString("route")
	watch, _ := cmd.Flags().GetBool("watch")
	record, _ := cmd.Flags().GetBool("record")

	if watch && configFile == "" {
		return errors.New("--watch needs --config")
	}
	opts := tui.Options{
		Route:      route,
		ConfigPath: configFile,
		Watch:      watch,
	}
	if record {
		st, err := openStore()
		if err != nil {
			return err
		}
		opts.Store = st
	}

	m, err := tui.New(cfg, logger, opts)
	if err != nil {
		return err
	}
	logger.Info("starting tui", zap.String("route", route))

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if fm, ok := final.(tui.Model); ok {
		fm.Close()
	} else {
		m.Close()
	}
	return err
}

func runPlay(cmd *cobra.Command, args []string) error {
	record, _ := cmd.Flags().GetBool("record")
	opts := gui.Options{}
	if record {
		st, err := openStore()
		if err != nil {
			return err
		}
		opts.Store = st
	}
	return gui.Run(cfg, logger, opts)
}

func runScenarios(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	parallel, _ := cmd.Flags().GetInt("parallel")
	noSave, _ := cmd.Flags().GetBool("no-save")

	names := args
	if all {
		names = scenario.Names()
	}
	if len(names) == 0 {
		return fmt.Errorf("no scenario given; available: %s", strings.Join(scenario.Names(), ", "))
	}

	params := cfg.SteerParams()
	scenarios := make([]scenario.Scenario, 0, len(names))
	jobs := make([]sim.Job, 0, len(names))
	for _, name := range names {
		sc, err := scenario.Resolve(name)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("dt") {
			sc.Dt, _ = cmd.Flags().GetFloat64("dt")
		}
		if cmd.Flags().Changed("time") {
			sc.Duration, _ = cmd.Flags().GetFloat64("time")
		}
		if err := sc.Validate(); err != nil {
			return err
		}
		scenarios = append(scenarios, sc)
		job := sc.Job(params)
		job.Observers = targetEvents(logger.With(zap.String("scenario", sc.Name)))
		jobs = append(jobs, job)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running scenarios", zap.Int("count", len(jobs)), zap.Int("parallel", parallel))
	results, err := sim.RunBatch(ctx, jobs, parallel)
	if err != nil {
		return err
	}

	var st *storage.Store
	if !noSave {
		if st, err = openStore(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tSTEPS\tMAX SPEED\tDISTANCE\tPEAK SLIP\tARRIVAL\tPROGRESS\tRUN")
	for i, res := range results {
		sc := scenarios[i]
		id := "-"
		if st != nil {
			id, err = st.SaveResult(sc.Name, params, jobs[i].Config, res)
			if err != nil {
				return err
			}
		}
		arrival := "-"
		if t := res.Metrics["arrival_time"]; t >= 0 {
			arrival = fmt.Sprintf("%.2fs", t)
		}
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%.1f\t%s\t%s\t%s\n",
			sc.Name,
			res.StepsTaken,
			res.Metrics["max_speed"],
			res.Metrics["distance"],
			res.Metrics["peak_lateral"],
			arrival,
			scenario.Progress(jobs[i].Source),
			id,
		)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tORIGIN\tTIME\tDURATION\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%d\n",
			run.ID,
			run.Scenario,
			run.Origin,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Steps,
		)
	}
	return w.Flush()
}

var plotCaptions = map[string]string{
	"speed":   "speed (units/s)",
	"heading": "heading (deg)",
	"lateral": "lateral slip (units/s)",
	"x":       "x position",
	"y":       "y position",
}

func plotRun(cmd *cobra.Command, args []string) error {
	fields, _ := cmd.Flags().GetStringSlice("field")
	height, _ := cmd.Flags().GetInt("height")
	width, _ := cmd.Flags().GetInt("width")

	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, err := st.LoadTrace(meta.ID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s (%s)\n", meta.Scenario, meta.Origin)
	fmt.Printf("samples: %d\n\n", len(rows))

	for _, field := range fields {
		data, ok := storage.Series(rows, field)
		if !ok {
			return fmt.Errorf("unknown field %q", field)
		}
		caption := plotCaptions[field]
		if caption == "" {
			caption = field
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	width, _ := cmd.Flags().GetInt("width")

	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, err := st.LoadTrace(meta.ID)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "svg":
		world := meta.Params.WorldSize
		if world <= 0 {
			world = cfg.World.Size
		}
		svg := export.TrajectoryToSVG(rows, world, export.TrajectoryOptions{Width: width, ShowTargets: true})
		if svg == "" {
			return fmt.Errorf("run %s has too few samples to draw", meta.ID)
		}
		_, err = io.WriteString(w, svg)
	case "json":
		err = storage.ExportJSON(w, *meta, rows)
	default:
		return fmt.Errorf("unknown format %q (svg, json)", format)
	}
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Fprintf(os.Stderr, "exported to %s\n", out)
	}
	return nil
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDURATION\tDESCRIPTION")
	for _, sc := range scenario.Presets() {
		fmt.Fprintf(w, "%s\t%.1fs\t%s\n", sc.Name, sc.Duration, sc.Description)
	}
	return w.Flush()
}

func showConfig(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("write")
	if path != "" {
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
		return nil
	}
	enc := yaml.NewEncoder(os.Stdout)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
