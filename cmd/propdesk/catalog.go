package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/propdesk/internal/config"
	"github.com/jask/propdesk/internal/database"
	"github.com/jask/propdesk/internal/database/repository"
	"github.com/jask/propdesk/internal/service"
)

var errMemoryCatalog = errors.New("an in-memory catalog does not outlive the command; pass --db PATH")

func newSeedCmd(g *globals) *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the catalog and load the built-in properties and clients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := g.cfg.Database.Path
			if path == database.MemoryPath {
				return errMemoryCatalog
			}
			ctx := cmd.Context()
			logger, closeLog, err := newLogger(g.cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			db, err := openCatalog(ctx, path)
			if err != nil {
				return err
			}
			defer db.Close()
			if reset {
				if err := (&service.AdminService{DB: db}).Reset(ctx); err != nil {
					return err
				}
				logger.Info("catalog reset", "db", path)
				if err := database.SeedDefaults(ctx, db); err != nil {
					return fmt.Errorf("seed defaults: %w", err)
				}
			}
			n, err := repository.NewPropertyRepo(db).Count(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog %s holds %d properties\n", path, n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "wipe the catalog before seeding")
	return cmd
}

func newImportCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import properties from a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.cfg.Database.Path
			if path == database.MemoryPath {
				return errMemoryCatalog
			}
			ctx := cmd.Context()
			logger, closeLog, err := newLogger(g.cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			db, err := openCatalog(ctx, path)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := &service.ImportService{Properties: repository.NewPropertyRepo(db)}
			res, err := svc.ImportJSON(ctx, f)
			if err != nil {
				return err
			}
			for _, e := range res.Errors {
				logger.Warn("import record rejected", "file", args[0], "err", e)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d, errors %d\n", res.Imported, res.Skipped, len(res.Errors))
			return nil
		},
	}
}

func newConfigCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file location",
			RunE: func(cmd *cobra.Command, _ []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), config.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write the effective configuration to the config file",
			RunE: func(cmd *cobra.Command, _ []string) error {
				if _, err := os.Stat(config.Path()); err == nil {
					return fmt.Errorf("%s already exists", config.Path())
				}
				if err := config.Save(g.cfg); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "wrote", config.Path())
				return nil
			},
		},
	)
	return cmd
}
