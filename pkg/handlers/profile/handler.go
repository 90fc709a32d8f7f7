package profile

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vedic-tools/jyotish-atlas/pkg/adapters"
	"github.com/vedic-tools/jyotish-atlas/pkg/handlers"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/api"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	profilesvc "github.com/vedic-tools/jyotish-atlas/pkg/services/profile"
	"github.com/vedic-tools/jyotish-atlas/pkg/store/sqlite/history"
)

type Handler struct {
	profiles profilesvc.Registry
	history  history.Recorder
}

func NewHandler(profiles profilesvc.Registry, recorder history.Recorder) *Handler {
	if profiles == nil {
		profiles = profilesvc.EmptyRegistry{}
	}
	if recorder == nil {
		recorder = history.NewNoopRecorder()
	}
	return &Handler{
		profiles: profiles,
		history:  recorder,
	}
}

// ListProfiles handles GET /profiles.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	names, err := h.profiles.GetProfiles(ctx)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	response := make([]api.Profile, 0, len(names))
	for _, name := range names {
		p, err := h.profiles.GetProfile(ctx, name)
		if err != nil {
			handlers.WriteError(w, r, err)
			return
		}
		response = append(response, adapters.MapProfileDomainToApi(p))
	}
	handlers.WriteJSON(w, r, http.StatusOK, response)
}

// ListHistory handles GET /history?limit=<n>.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			handlers.WriteError(w, r, fmt.Errorf("limit %q: %w", raw, domain.ErrInvalidInput))
			return
		}
		limit = n
	}

	records, err := h.history.List(ctx, limit)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	response := make([]api.CalculationRecord, 0, len(records))
	for _, rec := range records {
		response = append(response, adapters.MapRecordDomainToApi(adapters.MapStoreRecordToDomain(rec)))
	}
	handlers.WriteJSON(w, r, http.StatusOK, response)
}
