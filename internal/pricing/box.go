package pricing

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// BoardGrade is the strength rating of the corrugated board.
type BoardGrade string

const (
	Grade29EST BoardGrade = "29EST"
	Grade32EST BoardGrade = "32EST"
	Grade40EST BoardGrade = "40EST"
)

// Grades lists the board grades offered, weakest first.
var Grades = []BoardGrade{Grade29EST, Grade32EST, Grade40EST}

// ParseGrade returns the grade named s.
func ParseGrade(s string) (BoardGrade, error) {
	for _, g := range Grades {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("resistencia desconocida: %q", s)
}

// Input limits enforced by Validate.
const (
	MaxDimension  = 10000   // cm
	MaxQuantity   = 1000000 // boxes
	MaxPricePerM2 = 100000  // MXN
)

// BoxSpec describes a regular slotted box. Dimensions are interior, in cm.
type BoxSpec struct {
	Length   float64    `json:"length" validate:"gt=0,lte=10000"`
	Width    float64    `json:"width" validate:"gt=0,lte=10000"`
	Height   float64    `json:"height" validate:"gt=0,lte=10000"`
	Grade    BoardGrade `json:"grade" validate:"oneof=29EST 32EST 40EST"`
	Inks     int        `json:"inks" validate:"gte=0,lte=4"`
	Quantity int        `json:"quantity" validate:"gte=1,lte=1000000"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var boxFieldMessages = map[string]string{
	"Length":   "Ingresa las dimensiones de la caja",
	"Width":    "Ingresa las dimensiones de la caja",
	"Height":   "Ingresa las dimensiones de la caja",
	"Grade":    "Selecciona una resistencia válida",
	"Inks":     fmt.Sprintf("El número de tintas debe estar entre 0 y %d", MaxInks),
	"Quantity": "Ingresa una cantidad válida",
}

var boxLimitMessages = map[string]string{
	"Length":   fmt.Sprintf("Las dimensiones no pueden exceder %d cm", MaxDimension),
	"Width":    fmt.Sprintf("Las dimensiones no pueden exceder %d cm", MaxDimension),
	"Height":   fmt.Sprintf("Las dimensiones no pueden exceder %d cm", MaxDimension),
	"Quantity": fmt.Sprintf("La cantidad no puede exceder %d piezas", MaxQuantity),
}

// Validate reports the first invalid field with a message fit for the operator.
func (b BoxSpec) Validate() error {
	err := validate.Struct(b)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "lte" {
			if msg, ok := boxLimitMessages[fe.Field()]; ok {
				return errors.New(msg)
			}
		}
		if msg, ok := boxFieldMessages[fe.Field()]; ok {
			return errors.New(msg)
		}
	}
	return fmt.Errorf("validate box spec: %w", err)
}

// PriceTable maps a board grade to its price per square meter in MXN.
type PriceTable map[BoardGrade]float64

// Lookup returns the price for grade and whether it is configured.
func (p PriceTable) Lookup(grade BoardGrade) (float64, bool) {
	price, ok := p[grade]
	return price, ok
}
