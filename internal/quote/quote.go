// Package quote holds the persisted records of the cotizador: quotes and the
// settings singleton.
package quote

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Simplici0/cotizador/internal/pricing"
)

const folioPrefix = "COT-"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Client identifies who the quote is for.
type Client struct {
	Name    string `json:"name" validate:"required"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
}

func (c Client) trimmed() Client {
	return Client{
		Name:    strings.TrimSpace(c.Name),
		Company: strings.TrimSpace(c.Company),
		Phone:   strings.TrimSpace(c.Phone),
		Email:   strings.TrimSpace(c.Email),
	}
}

// Validate checks the client block of a new quote, ignoring surrounding spaces.
func (c Client) Validate() error {
	err := validate.Struct(c.trimmed())
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Field() {
		case "Name":
			return errors.New("Ingresa el nombre del cliente")
		case "Email":
			return errors.New("Ingresa un email válido")
		}
	}
	return fmt.Errorf("validate client: %w", err)
}

// Quote is a saved quotation. Its breakdown is a snapshot taken at creation and
// is never recomputed from later price changes.
type Quote struct {
	ID        string            `json:"id"`
	Folio     string            `json:"folio"`
	CreatedAt time.Time         `json:"created_at"`
	Client    Client            `json:"client"`
	Box       pricing.BoxSpec   `json:"box"`
	Breakdown pricing.Breakdown `json:"breakdown"`
	Notes     string            `json:"notes"`
}

// Draft is the operator input for a new quote.
type Draft struct {
	Client Client
	Box    pricing.BoxSpec
	Notes  string
}

// New validates draft, prices it with prices and stamps it with folio and now.
func New(draft Draft, prices pricing.PriceTable, folio string, now time.Time) (Quote, error) {
	if err := draft.Client.Validate(); err != nil {
		return Quote{}, err
	}
	if err := draft.Box.Validate(); err != nil {
		return Quote{}, err
	}

	client := draft.Client.trimmed()

	return Quote{
		ID:        uuid.NewString(),
		Folio:     folio,
		CreatedAt: now.UTC(),
		Client:    client,
		Box:       draft.Box,
		Breakdown: pricing.ComputeBreakdown(draft.Box, prices),
		Notes:     strings.TrimSpace(draft.Notes),
	}, nil
}

// NextFolio returns the folio following the highest numbered one in folios.
// Folios without a numeric suffix are ignored.
func NextFolio(folios []string) string {
	highest := 0
	for _, f := range folios {
		n, err := strconv.Atoi(strings.TrimPrefix(f, folioPrefix))
		if err != nil {
			continue
		}
		highest = max(highest, n)
	}
	return fmt.Sprintf("%s%04d", folioPrefix, highest+1)
}
