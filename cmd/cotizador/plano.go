package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/cotizador/internal/pricing"
	"github.com/Simplici0/cotizador/internal/quote"
	"github.com/Simplici0/cotizador/internal/render"
	"github.com/Simplici0/cotizador/internal/store"
)

const adHocFolio = "SIN-FOLIO"

// SVG size used when the drawing is not embedded in a page.
const (
	svgWidth  = 297.0
	svgHeight = 180.0
)

func newPlanoCmd(a *app) *cobra.Command {
	var (
		box     boxFlags
		formato string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "plano [id]",
		Short: "Genera el plano desplegado de una cotización o de unas medidas",
		Example: `  cotizador plano 5f1c0c1e-6f0e-4a39-9b59-3f6f1d2b8e10
  cotizador plano --largo 30 --ancho 20 --alto 15 --formato svg --salida caja.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				q   quote.Quote
				err error
			)
			if len(args) == 1 {
				q, err = a.loadQuote(cmd, args[0])
			} else {
				q, err = adHocQuote(&box)
			}
			if err != nil {
				return err
			}

			write, ext, err := drawingWriter(formato, q)
			if err != nil {
				return err
			}

			if output == "" {
				output = q.Folio + "-plano." + ext
			}
			if output == "-" {
				return write(a.out)
			}

			if err := writeFile(output, write); err != nil {
				return err
			}
			a.log.Info("drawing written", zap.String("folio", q.Folio), zap.String("path", output))
			fmt.Fprintln(a.out, output)
			return nil
		},
	}

	box.register(cmd)
	cmd.Flags().StringVarP(&formato, "formato", "f", "pdf", "formato de salida: pdf o svg")
	cmd.Flags().StringVarP(&output, "salida", "o", "", `archivo de salida ("-" para stdout)`)

	return cmd
}

// adHocQuote wraps flag dimensions in an unsaved quote. The drawing only needs
// the sheet geometry, so no prices are looked up.
func adHocQuote(box *boxFlags) (quote.Quote, error) {
	spec, err := box.spec()
	if err != nil {
		return quote.Quote{}, err
	}
	return quote.Quote{
		Folio:     adHocFolio,
		CreatedAt: time.Now().UTC(),
		Box:       spec,
		Breakdown: pricing.ComputeBreakdown(spec, nil),
	}, nil
}

func (a *app) loadQuote(cmd *cobra.Command, id string) (quote.Quote, error) {
	database, err := a.openDB(cmd.Context())
	if err != nil {
		return quote.Quote{}, err
	}
	defer database.Close()

	q, err := store.New(database).GetQuote(cmd.Context(), id)
	if err != nil {
		return quote.Quote{}, fmt.Errorf("cotización %s: %w", id, err)
	}
	return q, nil
}

func drawingWriter(formato string, q quote.Quote) (func(io.Writer) error, string, error) {
	switch formato {
	case "pdf":
		return func(w io.Writer) error { return render.DrawingPDF(w, q) }, "pdf", nil
	case "svg":
		return func(w io.Writer) error { return render.DrawingSVG(w, q, svgWidth, svgHeight) }, "svg", nil
	default:
		return nil, "", fmt.Errorf("formato desconocido %q: usa pdf o svg", formato)
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
