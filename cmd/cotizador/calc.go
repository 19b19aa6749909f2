package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/cotizador/internal/format"
	"github.com/Simplici0/cotizador/internal/pricing"
	"github.com/Simplici0/cotizador/internal/quote"
	"github.com/Simplici0/cotizador/internal/store"
)

// boxFlags binds the box specification to command flags.
type boxFlags struct {
	length, width, height float64
	grade                 string
	inks, quantity        int
}

func (b *boxFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64VarP(&b.length, "largo", "l", 0, "largo interior en cm")
	f.Float64VarP(&b.width, "ancho", "w", 0, "ancho interior en cm")
	f.Float64VarP(&b.height, "alto", "a", 0, "alto interior en cm")
	f.StringVarP(&b.grade, "resistencia", "r", string(pricing.Grade32EST), "resistencia del cartón (29EST, 32EST, 40EST)")
	f.IntVarP(&b.inks, "tintas", "t", 0, "número de tintas (0 a 4)")
	f.IntVarP(&b.quantity, "cantidad", "c", 1, "piezas")
}

func (b *boxFlags) spec() (pricing.BoxSpec, error) {
	box := pricing.BoxSpec{
		Length:   b.length,
		Width:    b.width,
		Height:   b.height,
		Grade:    pricing.BoardGrade(b.grade),
		Inks:     b.inks,
		Quantity: b.quantity,
	}
	if err := box.Validate(); err != nil {
		return pricing.BoxSpec{}, err
	}
	return box, nil
}

func newCalcCmd(a *app) *cobra.Command {
	var (
		box       boxFlags
		priceFile string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calcula el desglose de precio de una caja",
		Example: `  cotizador calc --largo 30 --ancho 20 --alto 15 --resistencia 32EST --cantidad 100
  cotizador calc -l 30 -w 20 -a 15 -c 500 --precios precios.toml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := box.spec()
			if err != nil {
				return err
			}

			prices, err := a.prices(cmd, priceFile)
			if err != nil {
				return err
			}

			br := pricing.ComputeBreakdown(spec, prices)
			warning := quote.MissingPriceWarning(prices, spec.Grade)
			if warning != "" {
				a.log.Warn("no price configured for grade", zap.String("grade", string(spec.Grade)))
			}

			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(calcOutput{Box: spec, Breakdown: br, Warning: warning})
			}
			return writeBreakdown(a, spec, br, warning)
		},
	}

	box.register(cmd)
	cmd.Flags().StringVarP(&priceFile, "precios", "p", "", "archivo TOML de precios; sin él se usan los de la base")
	cmd.Flags().BoolVar(&asJSON, "json", false, "imprime el desglose como JSON")

	return cmd
}

type calcOutput struct {
	Box       pricing.BoxSpec   `json:"box"`
	Breakdown pricing.Breakdown `json:"breakdown"`
	Warning   string            `json:"warning,omitempty"`
}

// prices loads the price table from priceFile, or from the settings stored
// in the database when priceFile is empty.
func (a *app) prices(cmd *cobra.Command, priceFile string) (pricing.PriceTable, error) {
	if priceFile != "" {
		return loadPriceFile(priceFile)
	}

	database, err := a.openDB(cmd.Context())
	if err != nil {
		return nil, err
	}
	defer database.Close()

	settings, err := store.New(database).GetSettings(cmd.Context())
	if err != nil {
		return nil, err
	}
	return settings.PriceTable(), nil
}

func writeBreakdown(a *app, box pricing.BoxSpec, br pricing.Breakdown, warning string) error {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Caja:\t%s × %s × %s cm, %s, %s\n",
		format.Number(box.Length), format.Number(box.Width), format.Number(box.Height), box.Grade, format.Inks(box.Inks))
	fmt.Fprintf(tw, "Pliego:\t%s × %s cm\n", format.Number(br.SheetLength), format.Number(br.SheetWidth))
	fmt.Fprintf(tw, "Área:\t%s m²\n", format.Number(br.AreaM2))
	fmt.Fprintf(tw, "Costo base:\t%s\n", format.MXN(br.BaseCost))
	if br.InkSurcharge > 0 {
		fmt.Fprintf(tw, "Recargo tintas:\t%s\n", format.MXN(br.InkSurcharge))
	}
	fmt.Fprintf(tw, "Precio unitario:\t%s\n", format.MXN(br.UnitSalePrice))
	fmt.Fprintf(tw, "Total (%s piezas):\t%s\n", format.Integer(box.Quantity), format.MXN(br.Total))
	if warning != "" {
		fmt.Fprintf(tw, "Aviso:\t%s\n", warning)
	}
	return tw.Flush()
}
