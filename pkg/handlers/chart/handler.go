package chart

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vedic-tools/jyotish-atlas/pkg/adapters"
	"github.com/vedic-tools/jyotish-atlas/pkg/handlers"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/api"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/dasha"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/profile"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/zodiac"
)

type Handler struct {
	dasha    dasha.Service
	profiles profile.Registry
}

func NewHandler(dashaSvc dasha.Service, profiles profile.Registry) *Handler {
	if profiles == nil {
		profiles = profile.EmptyRegistry{}
	}
	return &Handler{
		dasha:    dashaSvc,
		profiles: profiles,
	}
}

// GetNakshatra handles GET /nakshatra?longitude=<deg>&lang=<en|si>.
func (h *Handler) GetNakshatra(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw := r.URL.Query().Get("longitude")
	lon, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		handlers.WriteError(w, r, fmt.Errorf("longitude %q: %w", raw, domain.ErrInvalidInput))
		return
	}

	info, err := h.dasha.Nakshatra(ctx, lon)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	lang := zodiac.Lang(r.URL.Query().Get("lang"))
	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapNakshatraDomainToApi(info, lang))
}

// CalculateDasha handles POST /dasha.
func (h *Handler) CalculateDasha(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body api.DashaRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	req := dasha.Request{
		Subject:     "request",
		BirthDate:   body.BirthDate,
		BirthTime:   body.BirthTime,
		TimeZone:    body.TimeZone,
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		DetailLevel: domain.DashaLevel(body.DetailLevel),
		Years:       body.Years,
	}
	if body.Profile != "" {
		p, err := h.profiles.GetProfile(ctx, body.Profile)
		if err != nil {
			handlers.WriteError(w, r, err)
			return
		}
		req = withProfile(req, p)
	}

	chart, err := h.dasha.Calculate(ctx, req)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapDashaChartDomainToApi(chart, zodiac.Lang(body.Lang)))
}

// withProfile fills the birth data from p, keeping request-level options.
func withProfile(req dasha.Request, p domain.BirthProfile) dasha.Request {
	out := dasha.RequestFromProfile(p)
	out.DetailLevel = req.DetailLevel
	out.Years = req.Years
	return out
}
