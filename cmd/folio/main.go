package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mverhelle/folio/internal/config"
	"github.com/mverhelle/folio/internal/storage"
	"github.com/mverhelle/folio/internal/viz"
)

var (
	configFile string
	dataDir    string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "folio",
		Short:         "personal portfolio with a tiny steering demo",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err = newLogger(cfg, interactive(cmd))
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".folio", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	addTUIFlags(rootCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "open the portfolio in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	addTUIFlags(tuiCmd)

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "open the steering demo in a window",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}
	playCmd.Flags().Bool("record", false, "save the session as a run")

	runCmd := &cobra.Command{
		Use:   "run [scenario|file.yaml]...",
		Short: "run scripted scenarios headlessly",
		RunE:  runScenarios,
	}
	runCmd.Flags().Bool("all", false, "run every built-in scenario")
	runCmd.Flags().Float64("dt", 0, "override the scenario timestep")
	runCmd.Flags().Float64("time", 0, "override the scenario duration")
	runCmd.Flags().Int("parallel", 4, "maximum concurrent runs")
	runCmd.Flags().Bool("no-save", false, "do not store results")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSlice("field", []string{"speed", "heading", "lateral"}, "columns to plot")
	plotCmd.Flags().Int("height", 10, "graph height")
	plotCmd.Flags().Int("width", 70, "graph width")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as svg or json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().String("format", "svg", "svg or json")
	exportCmd.Flags().StringP("out", "o", "", "output file (default stdout)")
	exportCmd.Flags().Int("width", 800, "svg width in pixels")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list built-in scenarios",
		Args:  cobra.NoArgs,
		RunE:  listScenarios,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  showConfig,
	}
	configCmd.Flags().String("write", "", "write the effective configuration to a file")

	rootCmd.AddCommand(tuiCmd, playCmd, runCmd, listCmd, plotCmd, exportCmd, scenariosCmd, configCmd)
	return rootCmd
}

func addTUIFlags(cmd *cobra.Command) {
	cmd.Flags().String("route", "/", "initial page")
	cmd.Flags().Bool("watch", false, "reload projects when the config file changes")
	cmd.Flags().Bool("record", false, "save play sessions as runs")
	cmd.Flags().String("theme", "", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		c.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		c.Logging.Level = logLevel
	}
	if flags.Changed("theme") {
		name, _ := flags.GetString("theme")
		if !slices.Contains(viz.ThemeNames(), name) {
			return nil, fmt.Errorf("unknown theme %q (%s)", name, strings.Join(viz.ThemeNames(), ", "))
		}
		c.Site.Theme = name
	}
	return c, nil
}

// interactive reports whether cmd owns the terminal, in which case logs go
// to a file.
func interactive(cmd *cobra.Command) bool {
	return cmd.Name() == "folio" || cmd.Name() == "tui"
}

func newLogger(c *config.Config, toFile bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = level
	if toFile && c.Logging.File != "" {
		if err := os.MkdirAll(c.DataDir, 0755); err != nil {
			return nil, err
		}
		path := filepath.Join(c.DataDir, c.Logging.File)
		zc.OutputPaths = []string{path}
		zc.ErrorOutputPaths = []string{path}
	}
	return zc.Build()
}

func openStore() (*storage.Store, error) {
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}
