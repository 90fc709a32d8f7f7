package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/api"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/store"
	profilesvc "github.com/vedic-tools/jyotish-atlas/pkg/services/profile"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, record store.CalculationRecord) (string, error) {
	args := m.Called(ctx, record)
	return args.String(0), args.Error(1)
}

func (m *mockRecorder) List(ctx context.Context, limit int) ([]store.CalculationRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.CalculationRecord), args.Error(1)
}

func setupRouter(t *testing.T, recorder *mockRecorder) *chi.Mux {
	registry, err := profilesvc.NewRegistryFromBytes([]byte(`
[alice]
birth = 1990-05-15 14:30
timezone = Asia/Colombo
latitude = 6.9
longitude = 79.8
`))
	require.NoError(t, err)

	h := NewHandler(registry, recorder)
	r := chi.NewRouter()
	r.Get("/profiles", h.ListProfiles)
	r.Get("/history", h.ListHistory)
	return r
}

func TestHandler_ListProfiles(t *testing.T) {
	rec := httptest.NewRecorder()
	setupRouter(t, new(mockRecorder)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profiles", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []api.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []api.Profile{{
		Name:      "alice",
		BirthDate: "1990-05-15",
		BirthTime: "14:30",
		TimeZone:  "Asia/Colombo",
		Latitude:  6.9,
		Longitude: 79.8,
	}}, got)
}

func TestHandler_ListHistory(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	recorder := new(mockRecorder)
	recorder.On("List", mock.Anything, 5).Return([]store.CalculationRecord{
		{ID: "1", Kind: "dasha", Subject: "alice", Summary: "Rohini", CreatedAt: created},
	}, nil)
	router := setupRouter(t, recorder)

	t.Run("success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history?limit=5", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var got []api.CalculationRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "dasha", got[0].Kind)
		assert.True(t, got[0].CreatedAt.Equal(created))
	})

	t.Run("bad limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history?limit=many", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	recorder.AssertExpectations(t)
}
