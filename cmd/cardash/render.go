package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cardash/internal/chart"
	"cardash/internal/dashboard"
	"cardash/internal/db"
	"cardash/internal/service"
)

func renderCmd() *cobra.Command {
	var (
		brand, model, outDir string
		width, height        int
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render both dashboard charts for one brand and model to PNG files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if width <= 0 {
				width = cfg.Render.Width
			}
			if height <= 0 {
				height = cfg.Render.Height
			}

			ctx := cmd.Context()
			conn, err := openDB(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer db.Close(conn)
			table, err := service.TableLoader{Config: cfg, DB: conn, Logger: log}.Load(ctx)
			if err != nil {
				return err
			}
			svc := &dashboard.Service{Table: table, Logger: log}
			state, err := svc.Transition(dashboard.FilterState{}, dashboard.FilterState{Brand: brand, Model: model}, dashboard.FieldNone)
			if err != nil {
				return err
			}
			pair, err := svc.Charts(ctx, state)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			for name, fig := range map[string]*chart.Figure{
				"price_age":  pair.PriceAge,
				"comparison": pair.Comparison,
			} {
				path := filepath.Join(outDir, fmt.Sprintf("%s_%s_%s.png", name, state.Brand, state.Model))
				if err := writePNG(path, fig, width, height); err != nil {
					return err
				}
				log.Info("chart written", zap.String("path", path))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&brand, "brand", "", "brand (defaults to the first brand)")
	cmd.Flags().StringVar(&model, "model", "", "model (defaults to the first model of brand)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "out", "output directory")
	cmd.Flags().IntVar(&width, "width", 0, "png width (defaults to render.width)")
	cmd.Flags().IntVar(&height, "height", 0, "png height (defaults to render.height)")
	return cmd
}

func writePNG(path string, fig *chart.Figure, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := chart.RenderPNG(fig, width, height, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}
