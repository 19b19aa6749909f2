// Command cotizador is the operator CLI: it prices boxes, draws their unfold
// and maintains the quotes database without going through the web app.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/cotizador/internal/config"
	"github.com/Simplici0/cotizador/internal/db"
	"github.com/Simplici0/cotizador/internal/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds the state shared by every command, filled in before any of them runs.
type app struct {
	out      io.Writer
	dbPath   string
	logLevel string
	log      *zap.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out, log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "cotizador",
		Short:         "Cotizador de cajas de cartón corrugado",
		Long:          "cotizador calcula precios de cajas regulares ranuradas, genera su plano desplegado y administra la base de cotizaciones.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("db") {
				a.dbPath = cfg.DBPath
			}
			level := a.logLevel
			if level == "" {
				level = cfg.LogLevel
			}
			a.log, err = logger.New(level)
			return err
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "ruta de la base SQLite (por defecto DB_PATH o ./cotizador.db)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "nivel de log: debug, info, warn, error")

	root.AddCommand(newCalcCmd(a))
	root.AddCommand(newPlanoCmd(a))
	root.AddCommand(newMigrateCmd(a))
	root.AddCommand(newSeedCmd(a))
	root.AddCommand(newExportCmd(a))

	return root
}

func (a *app) openDB(ctx context.Context) (*sql.DB, error) {
	a.log.Debug("opening database", zap.String("path", a.dbPath))
	return db.Open(ctx, a.dbPath)
}
