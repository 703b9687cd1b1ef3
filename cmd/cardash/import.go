package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cardash/internal/db"
	"cardash/internal/listing"
	gormrepository "cardash/internal/repository/gorm"
	"cardash/internal/service"
)

func importCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Write a CSV listing export into the car_listings table",
		Long: `Import reads a listing export (the feature-group dump with a header row)
and upserts it into postgres keyed by listing URL. Serve with source.kind=postgres
to read the table back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx := cmd.Context()
			rows, columns, err := (&listing.CSVSource{Path: args[0]}).Load(ctx)
			if err != nil {
				return err
			}
			log.Info("csv read", zap.String("path", args[0]), zap.Int("rows", len(rows)), zap.Strings("columns", columns))
			if len(rows) == 0 {
				return fmt.Errorf("%s: no rows", args[0])
			}

			conn, err := db.Open(cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close(conn)
			if err := db.AutoMigrate(conn); err != nil {
				return fmt.Errorf("auto-migrate: %w", err)
			}

			svc := &service.ImportService{
				Repo:      gormrepository.New(conn.Gorm),
				BatchSize: cfg.DB.BatchSize,
				Logger:    log,
			}
			if !quiet {
				bar := progressbar.NewOptions(len(rows),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
					progressbar.OptionSetWidth(40),
					progressbar.OptionSetDescription("importing listings"),
					progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
				)
				svc.Progress = func(done int) { _ = bar.Set(done) }
			}

			res, err := svc.Import(ctx, rows)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "read %d, written %d, table now holds %d listings\n", res.Read, res.Written, res.Total)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")
	return cmd
}
