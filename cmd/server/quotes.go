package main

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/cotizador/internal/export"
	"github.com/Simplici0/cotizador/internal/format"
	"github.com/Simplici0/cotizador/internal/pricing"
	"github.com/Simplici0/cotizador/internal/quote"
	"github.com/Simplici0/cotizador/internal/render"
	"github.com/Simplici0/cotizador/internal/store"
)

// Size of the drawing preview on the detail page, in drawing units (mm).
const (
	previewWidth  = 297.0
	previewHeight = 180.0
)

type quotesViewData struct {
	baseViewData
	Query  string
	Quotes []quote.Quote
}

type quoteFormViewData struct {
	baseViewData
	Grades []pricing.BoardGrade
	Form   url.Values
}

type quoteDetailViewData struct {
	baseViewData
	Quote   quote.Quote
	Drawing template.HTML
}

type breakdownDisplay struct {
	Sheet         string `json:"sheet"`
	Area          string `json:"area"`
	BaseCost      string `json:"base_cost"`
	InkSurcharge  string `json:"ink_surcharge"`
	UnitSalePrice string `json:"unit_sale_price"`
	Total         string `json:"total"`
}

type calculateResponse struct {
	Breakdown *pricing.Breakdown `json:"breakdown,omitempty"`
	Display   *breakdownDisplay  `json:"display,omitempty"`
	Warning   string             `json:"warning,omitempty"`
	Error     string             `json:"error,omitempty"`
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	quotes, err := s.store.ListQuotes(r.Context(), query)
	if err != nil {
		s.serverError(w, "failed to list quotes", err)
		return
	}

	s.renderTemplate(w, r, http.StatusOK, "quotes.html", &quotesViewData{
		Query:  query,
		Quotes: quotes,
	})
}

func (s *server) handleQuoteNew(w http.ResponseWriter, r *http.Request) {
	form := url.Values{}
	form.Set("resistencia", string(pricing.Grade32EST))
	form.Set("tintas", "0")
	form.Set("cantidad", "100")

	s.renderTemplate(w, r, http.StatusOK, "quote_form.html", &quoteFormViewData{
		Grades: pricing.Grades,
		Form:   form,
	})
}

// handleQuoteCalculate prices the form without saving it, for the live preview.
func (s *server) handleQuoteCalculate(w http.ResponseWriter, r *http.Request) {
	box, err := parseBoxForm(r)
	if err == nil {
		err = box.Validate()
	}
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, calculateResponse{Error: err.Error()})
		return
	}

	settings, err := s.store.GetSettings(r.Context())
	if err != nil {
		s.log.Error("failed to load settings", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, calculateResponse{Error: "No se pudo cargar la configuración"})
		return
	}

	prices := settings.PriceTable()
	br := pricing.ComputeBreakdown(box, prices)
	writeJSON(w, http.StatusOK, calculateResponse{
		Breakdown: &br,
		Display: &breakdownDisplay{
			Sheet:         format.Number(br.SheetLength) + " × " + format.Number(br.SheetWidth) + " cm",
			Area:          format.Number(br.AreaM2) + " m²",
			BaseCost:      format.MXN(br.BaseCost),
			InkSurcharge:  format.MXN(br.InkSurcharge),
			UnitSalePrice: format.MXN(br.UnitSalePrice),
			Total:         format.MXN(br.Total),
		},
		Warning: quote.MissingPriceWarning(prices, box.Grade),
	})
}

func (s *server) handleQuoteCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	draft, err := parseQuoteForm(r)
	if err != nil {
		s.renderQuoteFormError(w, r, err)
		return
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		s.serverError(w, "failed to load settings", err)
		return
	}
	folio, err := s.store.NextFolio(ctx)
	if err != nil {
		s.serverError(w, "failed to assign folio", err)
		return
	}

	prices := settings.PriceTable()
	q, err := quote.New(draft, prices, folio, s.now())
	if err != nil {
		s.renderQuoteFormError(w, r, err)
		return
	}

	if warning := quote.MissingPriceWarning(prices, q.Box.Grade); warning != "" {
		s.log.Warn("quote priced without a board price", zap.String("folio", q.Folio), zap.String("grade", string(q.Box.Grade)))
	}

	if err := s.store.SaveQuote(ctx, q); err != nil {
		s.serverError(w, "failed to save quote", err)
		return
	}

	s.log.Info("quote created", zap.String("id", q.ID), zap.String("folio", q.Folio), zap.Float64("total", q.Breakdown.Total))
	http.Redirect(w, r, "/cotizaciones/"+q.ID, http.StatusSeeOther)
}

func (s *server) renderQuoteFormError(w http.ResponseWriter, r *http.Request, err error) {
	s.renderTemplate(w, r, http.StatusUnprocessableEntity, "quote_form.html", &quoteFormViewData{
		baseViewData: baseViewData{ErrorMessage: err.Error()},
		Grades:       pricing.Grades,
		Form:         r.PostForm,
	})
}

func (s *server) handleQuoteDetail(w http.ResponseWriter, r *http.Request) {
	q, ok := s.loadQuote(w, r)
	if !ok {
		return
	}

	var svg bytes.Buffer
	if err := render.DrawingSVG(&svg, q, previewWidth, previewHeight); err != nil {
		s.serverError(w, "failed to render drawing", err)
		return
	}

	settings, err := s.store.GetSettings(r.Context())
	if err != nil {
		s.serverError(w, "failed to load settings", err)
		return
	}

	data := &quoteDetailViewData{
		Quote: q,
		// DrawingSVG escapes every text node it writes.
		Drawing: template.HTML(svg.String()),
	}
	data.WarningMessage = quote.MissingPriceWarning(settings.PriceTable(), q.Box.Grade)

	s.renderTemplate(w, r, http.StatusOK, "quote_detail.html", data)
}

func (s *server) handleQuoteDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.DeleteQuote(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, "failed to delete quote", err)
		return
	}

	s.log.Info("quote deleted", zap.String("id", id))
	http.Redirect(w, r, "/cotizaciones", http.StatusSeeOther)
}

func (s *server) handleQuotePDF(w http.ResponseWriter, r *http.Request) {
	q, ok := s.loadQuote(w, r)
	if !ok {
		return
	}

	settings, err := s.store.GetSettings(r.Context())
	if err != nil {
		s.serverError(w, "failed to load settings", err)
		return
	}

	s.writeDocument(w, "application/pdf", q.Folio+".pdf", func(out io.Writer) error {
		return render.QuotePDF(out, q, settings.Company)
	})
}

func (s *server) handleDrawingPDF(w http.ResponseWriter, r *http.Request) {
	q, ok := s.loadQuote(w, r)
	if !ok {
		return
	}

	s.writeDocument(w, "application/pdf", q.Folio+"-plano.pdf", func(out io.Writer) error {
		return render.DrawingPDF(out, q)
	})
}

func (s *server) handleDrawingSVG(w http.ResponseWriter, r *http.Request) {
	q, ok := s.loadQuote(w, r)
	if !ok {
		return
	}

	s.writeDocument(w, "image/svg+xml", q.Folio+"-plano.svg", func(out io.Writer) error {
		return render.DrawingSVG(out, q, previewWidth, previewHeight)
	})
}

func (s *server) handleQuotesExport(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.store.ListQuotes(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.serverError(w, "failed to list quotes", err)
		return
	}

	filename := fmt.Sprintf("cotizaciones-%s.xlsx", s.now().Format("20060102"))
	s.writeDocument(w, export.ContentType, filename, func(out io.Writer) error {
		return export.QuotesXLSX(out, quotes)
	})
}

// loadQuote fetches the {id} quote, answering 404 or 500 itself when it fails.
func (s *server) loadQuote(w http.ResponseWriter, r *http.Request) (quote.Quote, bool) {
	q, err := s.store.GetQuote(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return quote.Quote{}, false
	}
	if err != nil {
		s.serverError(w, "failed to load quote", err)
		return quote.Quote{}, false
	}
	return q, true
}

// writeDocument buffers the output of write so a failure can still become a 500.
func (s *server) writeDocument(w http.ResponseWriter, contentType, filename string, write func(io.Writer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		s.serverError(w, "failed to render "+filename, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

func (s *server) serverError(w http.ResponseWriter, msg string, err error) {
	s.log.Error(msg, zap.Error(err))
	http.Error(w, "error interno", http.StatusInternalServerError)
}
