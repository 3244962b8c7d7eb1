package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/propdesk/internal/config"
	"github.com/jask/propdesk/internal/database"
	"github.com/jask/propdesk/internal/database/repository"
	"github.com/jask/propdesk/internal/logging"
	"github.com/jask/propdesk/internal/service"
	"github.com/jask/propdesk/internal/store"
	"github.com/jask/propdesk/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globals carries flags shared by every command.
type globals struct {
	dbPath string
	delay  string
	cfg    config.Config
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "propdesk",
		Short:         "Terminal dashboard for properties and clients",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if cmd.Flags().Changed("db") {
				cfg.Database.Path = g.dbPath
			}
			if cmd.Flags().Changed("delay") {
				d, err := parseDelay(g.delay)
				if err != nil {
					return err
				}
				cfg.Search.Delay = d
			}
			g.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), g.cfg)
		},
	}
	root.PersistentFlags().StringVar(&g.dbPath, "db", "", "catalog database path (\":memory:\" for a throwaway catalog)")
	root.PersistentFlags().StringVar(&g.delay, "delay", "", "simulated search latency, e.g. 1s or 0s")

	root.AddCommand(
		newSearchCmd(g),
		newSeedCmd(g),
		newImportCmd(g),
		newConfigCmd(g),
	)
	return root
}

// openCatalog opens, migrates and seeds the catalog at path.
func openCatalog(ctx context.Context, path string) (*sql.DB, error) {
	if path != database.MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir db dir: %w", err)
		}
	}
	db, err := database.OpenCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	return db, nil
}

func loadStore(ctx context.Context, db *sql.DB, cfg config.Config, logger *slog.Logger) (*store.Store, error) {
	rows, err := repository.NewPropertyRepo(db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}
	return store.New(store.FromRows(rows),
		store.WithDelay(cfg.Search.Delay),
		store.WithLogger(logger.With("component", "store")),
	), nil
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// newLogger builds the CLI logger on w.
func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, func() error, error) {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isTerminal(f)
	}
	return logging.New(cfg.Log, w, color)
}

func runTUI(ctx context.Context, cfg config.Config) error {
	// the terminal belongs to bubbletea, so logs go to a file
	logFile, err := logging.OpenFile(cfg.Log.Path)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger, closeLog, err := logging.New(cfg.Log, logFile, false)
	if err != nil {
		return err
	}
	defer closeLog()

	db, err := openCatalog(ctx, cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	st, err := loadStore(ctx, db, cfg, logger)
	if err != nil {
		return err
	}
	services := tui.Services{
		Financials: &service.FinancialService{Expenses: repository.NewExpenseRepo(db)},
		History: &service.HistoryService{
			Maintenance:  repository.NewMaintenanceRepo(db),
			Documents:    repository.NewDocumentRepo(db),
			Tenants:      repository.NewTenantRepo(db),
			Applications: repository.NewApplicationRepo(db),
		},
		Clients: &service.ClientService{Clients: repository.NewClientRepo(db)},
	}
	logger.Info("starting dashboard", "db", cfg.Database.Path, "properties", len(st.Source()))

	p := tea.NewProgram(tui.New(ctx, cfg, st, services, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
