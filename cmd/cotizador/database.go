package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/cotizador/internal/export"
	"github.com/Simplici0/cotizador/internal/migrations"
	"github.com/Simplici0/cotizador/internal/seed"
	"github.com/Simplici0/cotizador/internal/store"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes de la base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			database, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := migrations.Up(ctx, database); err != nil {
				return err
			}
			version, err := migrations.Version(ctx, database)
			if err != nil {
				return err
			}

			a.log.Info("migrations applied", zap.Int64("version", version))
			fmt.Fprintf(a.out, "esquema en versión %d\n", version)
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Carga la configuración y los precios por defecto si faltan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			database, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			stats, err := seed.Run(ctx, database)
			if err != nil {
				return err
			}

			a.log.Info("seed finished", zap.Int("inserts", stats.Inserts))
			fmt.Fprintf(a.out, "%d registros insertados\n", stats.Inserts)
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var (
		output string
		query  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta las cotizaciones a Excel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			database, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			quotes, err := store.New(database).ListQuotes(ctx, query)
			if err != nil {
				return err
			}

			write := func(w io.Writer) error { return export.QuotesXLSX(w, quotes) }
			if output == "-" {
				return write(a.out)
			}
			if err := writeFile(output, write); err != nil {
				return err
			}

			a.log.Info("quotes exported", zap.Int("count", len(quotes)), zap.String("path", output))
			fmt.Fprintf(a.out, "%d cotizaciones exportadas a %s\n", len(quotes), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "salida", "o", "cotizaciones.xlsx", `archivo de salida ("-" para stdout)`)
	cmd.Flags().StringVarP(&query, "buscar", "q", "", "filtra por folio, cliente o empresa")

	return cmd
}
