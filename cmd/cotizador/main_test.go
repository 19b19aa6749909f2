package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Simplici0/cotizador/internal/pricing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writePriceFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "precios.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write price file: %v", err)
	}
	return path
}

const defaultPrices = `
[precios]
29EST = 9.8
32EST = 10.79
40EST = 12.2
`

func TestLoadPriceFile(t *testing.T) {
	prices, err := loadPriceFile(writePriceFile(t, defaultPrices))
	if err != nil {
		t.Fatalf("loadPriceFile returned error: %v", err)
	}
	if len(prices) != 3 || prices[pricing.Grade32EST] != 10.79 {
		t.Fatalf("unexpected prices %+v", prices)
	}

	cases := map[string]string{
		"unknown grade":  "[precios]\n50EST = 3\n",
		"negative price": "[precios]\n29EST = -1\n",
		"not toml":       "precios = [",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := loadPriceFile(writePriceFile(t, content)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestCalcPrintsBreakdown(t *testing.T) {
	out, err := runCLI(t, "calc", "-l", "30", "-w", "20", "-a", "15", "-c", "100", "--precios", writePriceFile(t, defaultPrices))
	if err != nil {
		t.Fatalf("calc returned error: %v", err)
	}

	for _, expected := range []string{"108 × 35.5 cm", "0.3834 m²", "$4.14", "$5.38", "Total (100 piezas):", "$537.80"} {
		if !strings.Contains(out, expected) {
			t.Fatalf("expected output to contain %q, got:\n%s", expected, out)
		}
	}
	if strings.Contains(out, "Recargo tintas") || strings.Contains(out, "Aviso") {
		t.Fatalf("unexpected lines in output:\n%s", out)
	}
}

func TestCalcJSON(t *testing.T) {
	out, err := runCLI(t, "calc", "-l", "30", "-w", "20", "-a", "15", "-t", "2", "-c", "100", "--json", "--precios", writePriceFile(t, defaultPrices))
	if err != nil {
		t.Fatalf("calc returned error: %v", err)
	}

	var got calcOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if got.Box.Inks != 2 || got.Breakdown.InkSurcharge != 0.25 || got.Warning != "" {
		t.Fatalf("unexpected output %+v", got)
	}
}

func TestCalcWarnsOnMissingPrice(t *testing.T) {
	out, err := runCLI(t, "calc", "-l", "30", "-w", "20", "-a", "15", "-r", "40EST", "--precios", writePriceFile(t, "[precios]\n29EST = 9.8\n"))
	if err != nil {
		t.Fatalf("calc returned error: %v", err)
	}
	if !strings.Contains(out, "Sin precio configurado para 40EST") || !strings.Contains(out, "$0.00") {
		t.Fatalf("expected warning and zero price, got:\n%s", out)
	}
}

func TestCalcRejectsInvalidBox(t *testing.T) {
	_, err := runCLI(t, "calc", "-l", "30", "-a", "15", "--precios", writePriceFile(t, defaultPrices))
	if err == nil || err.Error() != "Ingresa las dimensiones de la caja" {
		t.Fatalf("err = %v", err)
	}
}

func TestPlanoAdHocSVGToStdout(t *testing.T) {
	out, err := runCLI(t, "plano", "-l", "30", "-w", "20", "-a", "15", "-f", "svg", "-o", "-")
	if err != nil {
		t.Fatalf("plano returned error: %v", err)
	}
	if !strings.HasPrefix(out, "<svg") || !strings.Contains(out, "H=15") {
		t.Fatalf("unexpected svg output:\n%s", out)
	}
}

func TestPlanoRejectsUnknownFormat(t *testing.T) {
	_, err := runCLI(t, "plano", "-l", "30", "-w", "20", "-a", "15", "-f", "png")
	if err == nil || !strings.Contains(err.Error(), "png") {
		t.Fatalf("err = %v", err)
	}
}

func TestDatabaseCommands(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "cli.db")

	out, err := runCLI(t, "--db", dbPath, "migrate")
	if err != nil || !strings.Contains(out, "esquema en versión 1") {
		t.Fatalf("migrate: %v\n%s", err, out)
	}

	out, err = runCLI(t, "--db", dbPath, "seed")
	if err != nil || !strings.Contains(out, "4 registros insertados") {
		t.Fatalf("seed: %v\n%s", err, out)
	}
	out, err = runCLI(t, "--db", dbPath, "seed")
	if err != nil || !strings.Contains(out, "0 registros insertados") {
		t.Fatalf("second seed: %v\n%s", err, out)
	}

	out, err = runCLI(t, "--db", dbPath, "calc", "-l", "30", "-w", "20", "-a", "15", "-c", "100")
	if err != nil || !strings.Contains(out, "$537.80") {
		t.Fatalf("calc from database: %v\n%s", err, out)
	}

	xlsx := filepath.Join(dir, "cotizaciones.xlsx")
	out, err = runCLI(t, "--db", dbPath, "export", "-o", xlsx)
	if err != nil || !strings.Contains(out, "0 cotizaciones exportadas") {
		t.Fatalf("export: %v\n%s", err, out)
	}
	if info, err := os.Stat(xlsx); err != nil || info.Size() == 0 {
		t.Fatalf("expected workbook at %s: %v", xlsx, err)
	}

	if _, err := runCLI(t, "--db", dbPath, "plano", "no-existe"); err == nil {
		t.Fatalf("expected error for unknown quote id")
	}
}
