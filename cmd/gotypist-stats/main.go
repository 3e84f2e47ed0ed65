// Package main provides the CLI entrypoint for gotypist-stats.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/gotypist-stats/internal/config"
	"github.com/verte-zerg/gotypist-stats/internal/model"
	"github.com/verte-zerg/gotypist-stats/internal/render"
	"github.com/verte-zerg/gotypist-stats/internal/stats"
	"github.com/verte-zerg/gotypist-stats/internal/statsfile"
	"github.com/verte-zerg/gotypist-stats/internal/statsui"
	"github.com/verte-zerg/gotypist-stats/internal/store"
)

const version = "1.1.4"

var (
	statsFile string
	dbPath    string
	fromDB    bool
	colorFlag string
	verbose   bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "gotypist-stats",
		Short:             "Analyze the logs of your gotypist sessions.",
		Version:           version,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogger,
		RunE:              runReportCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&statsFile, "stats-file", config.DefaultStatsPath(), "stats file generated by gotypist")
	flags.StringVar(&dbPath, "db", config.DefaultDBPath(), "SQLite archive path")
	flags.BoolVar(&fromDB, "from-db", false, "read sessions from the archive instead of the stats file")
	flags.StringVar(&colorFlag, "color", string(model.ColorAuto), "style titles: auto, always or never")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log debug information to stderr")

	rootCmd.AddCommand(newBrowseCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func setupLogger(cmd *cobra.Command, _ []string) error {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx))
	return nil
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	reports, err := buildReports(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	return render.NewPrinter(cmd.OutOrStdout(), cfg.Color).Print(reports)
}

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse reports interactively",
		Args:  cobra.NoArgs,
		RunE:  runBrowseCmd,
	}
}

func runBrowseCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	reports, err := buildReports(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	program := tea.NewProgram(statsui.NewModel(reports), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run report viewer: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Copy the stats file into the SQLite archive",
		Args:  cobra.NoArgs,
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	sessions, err := statsfile.Load(ctx, cfg.StatsFile)
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			zerolog.Ctx(ctx).Warn().Err(cerr).Msg("failed to close db")
		}
	}()

	added, err := st.Import(ctx, sessions)
	if err != nil {
		return fmt.Errorf("failed to import sessions: %w", err)
	}
	total, err := st.Count(ctx)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new sessions (%d archived)\n", added, total); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resolveConfig merges flags, environment, the config file and defaults.
func resolveConfig(cmd *cobra.Command) (model.ReportConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.ReportConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	fileCfg = config.ApplyEnv(fileCfg)
	applyStringConfig(cmd, "stats-file", &statsFile, fileCfg.Stats.File)
	applyStringConfig(cmd, "db", &dbPath, fileCfg.Stats.DB)
	applyStringConfig(cmd, "color", &colorFlag, fileCfg.Stats.Color)

	cfg := model.ReportConfig{
		StatsFile: statsFile,
		DBPath:    dbPath,
		FromDB:    fromDB,
		Color:     model.ColorMode(strings.ToLower(strings.TrimSpace(colorFlag))),
		Today:     time.Now(),
	}
	if err := validateConfig(cfg); err != nil {
		return model.ReportConfig{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.ReportConfig) error {
	switch cfg.Color {
	case model.ColorAuto, model.ColorAlways, model.ColorNever:
	default:
		return fmt.Errorf("--color must be one of auto, always, never")
	}
	if cfg.FromDB && cfg.DBPath == "" {
		return fmt.Errorf("--db must not be empty")
	}
	if !cfg.FromDB && cfg.StatsFile == "" {
		return fmt.Errorf("--stats-file must not be empty")
	}
	return nil
}

func loadSessions(ctx context.Context, cfg model.ReportConfig) ([]model.Session, error) {
	if !cfg.FromDB {
		return statsfile.Load(ctx, cfg.StatsFile)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			zerolog.Ctx(ctx).Warn().Err(cerr).Msg("failed to close db")
		}
	}()
	sessions, err := st.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived sessions: %w", err)
	}
	return sessions, nil
}

func buildReports(ctx context.Context, cfg model.ReportConfig) ([]model.Report, error) {
	sessions, err := loadSessions(ctx, cfg)
	if err != nil {
		return nil, err
	}
	reports, err := stats.Generate(cfg.Today, sessions)
	if err != nil {
		return nil, fmt.Errorf("failed to build reports: %w", err)
	}
	return reports, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# gotypist-stats configuration
# Uncomment a value to enable it. CLI flags and %s_* environment
# variables override config values.

[stats]
# file = %q    # Stats file generated by gotypist
# db = %q      # SQLite archive used by import and --from-db
# color = %q   # auto, always or never
`,
		config.EnvPrefix,
		config.DefaultStatsPath(),
		config.DefaultDBPath(),
		model.ColorAuto,
	)
}
