package transit

import (
	"fmt"
	"net/http"
	"time"

	"github.com/vedic-tools/jyotish-atlas/pkg/adapters"
	"github.com/vedic-tools/jyotish-atlas/pkg/handlers"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/api"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/julian"
	transitsvc "github.com/vedic-tools/jyotish-atlas/pkg/services/transit"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/zodiac"
)

type Handler struct {
	transits transitsvc.Service
	now      func() time.Time
}

func NewHandler(transits transitsvc.Service) *Handler {
	return &Handler{
		transits: transits,
		now:      time.Now,
	}
}

// SignChanges handles POST /transits/sign-changes. An empty date means now.
func (h *Handler) SignChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body api.SignChangeRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	tz := body.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		handlers.WriteError(w, r, fmt.Errorf("time zone %q: %w", tz, domain.ErrInvalidInput))
		return
	}

	at := h.now()
	if body.Date != "" {
		clock := body.Time
		if clock == "" {
			clock = "00:00"
		}
		if at, err = julian.CombineLocal(body.Date, clock, loc); err != nil {
			handlers.WriteError(w, r, fmt.Errorf("reference %s %s: %w", body.Date, clock, domain.ErrInvalidInput))
			return
		}
	}

	bodies := make([]domain.Body, 0, len(body.Bodies))
	for _, name := range body.Bodies {
		b, err := domain.ParseBody(name)
		if err != nil {
			handlers.WriteError(w, r, err)
			return
		}
		bodies = append(bodies, b)
	}

	changes, err := h.transits.SignChanges(ctx, transitsvc.Request{At: at, Bodies: bodies})
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	lang := zodiac.Lang(body.Lang)
	res := api.SignChangeResponse{
		ReferenceUTC: at.UTC(),
		TimeZone:     tz,
		Changes:      make([]api.SignChange, 0, len(changes)),
	}
	for _, c := range changes {
		res.Changes = append(res.Changes, adapters.MapSignChangeDomainToApi(c, loc, lang))
	}
	handlers.WriteJSON(w, r, http.StatusOK, res)
}
