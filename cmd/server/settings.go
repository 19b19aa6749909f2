package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Simplici0/cotizador/internal/pricing"
	"github.com/Simplici0/cotizador/internal/quote"
)

type priceField struct {
	Grade pricing.BoardGrade
	Price float64
	Set   bool
}

type settingsViewData struct {
	baseViewData
	Settings quote.Settings
	Prices   []priceField
}

func newSettingsViewData(settings quote.Settings) *settingsViewData {
	table := settings.PriceTable()
	fields := make([]priceField, 0, len(pricing.Grades))
	for _, g := range pricing.Grades {
		price, ok := table.Lookup(g)
		fields = append(fields, priceField{Grade: g, Price: price, Set: ok})
	}
	return &settingsViewData{Settings: settings, Prices: fields}
}

func (s *server) handleSettingsForm(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.GetSettings(r.Context())
	if err != nil {
		s.serverError(w, "failed to load settings", err)
		return
	}

	data := newSettingsViewData(settings)
	switch r.URL.Query().Get("ok") {
	case "empresa":
		data.SuccessMessage = "Datos de la empresa guardados."
	case "precios":
		data.SuccessMessage = "Precios guardados."
	}
	s.renderTemplate(w, r, http.StatusOK, "settings.html", data)
}

func (s *server) handleCompanySubmit(w http.ResponseWriter, r *http.Request) {
	company, err := parseCompanyForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.updateSettings(w, r, "empresa", func(settings *quote.Settings) {
		settings.Company = company
	}, nil)
}

func (s *server) handlePricesSubmit(w http.ResponseWriter, r *http.Request) {
	prices, err := parsePricesForm(r)
	s.updateSettings(w, r, "precios", func(settings *quote.Settings) {
		settings.Prices = prices
	}, err)
}

// updateSettings applies edit to the stored settings and saves them. A
// non-nil formErr, or a validation failure, re-renders the page with a 422.
func (s *server) updateSettings(w http.ResponseWriter, r *http.Request, section string, edit func(*quote.Settings), formErr error) {
	ctx := r.Context()

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		s.serverError(w, "failed to load settings", err)
		return
	}

	if formErr == nil {
		edit(&settings)
		formErr = settings.Validate()
	}
	if formErr != nil {
		data := newSettingsViewData(settings)
		data.ErrorMessage = formErr.Error()
		s.renderTemplate(w, r, http.StatusUnprocessableEntity, "settings.html", data)
		return
	}

	if err := s.store.SaveSettings(ctx, settings); err != nil {
		s.serverError(w, "failed to save settings", err)
		return
	}

	s.log.Info("settings updated", zap.String("section", section))
	http.Redirect(w, r, "/configuracion?ok="+section, http.StatusSeeOther)
}
