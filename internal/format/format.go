// Package format renders numbers, money and dates for the es-MX locale.
package format

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// MXN formats an amount in Mexican pesos, e.g. $1,234.50.
func MXN(amount float64) string {
	return "$" + humanize.FormatFloat("#,###.##", amount)
}

// Number formats v with the fewest digits that round-trip, e.g. 35.5 or 108.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Integer formats n with thousands separators.
func Integer(n int) string {
	return humanize.Comma(int64(n))
}

// Date formats t as dd/mm/yyyy.
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// DateLong formats t as "18 de octubre de 2026".
func DateLong(t time.Time) string {
	return fmt.Sprintf("%02d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// Inks describes an ink count the way quotes print it.
func Inks(n int) string {
	switch n {
	case 0:
		return "Sin tintas"
	case 1:
		return "1 tinta"
	default:
		return fmt.Sprintf("%d tintas", n)
	}
}
