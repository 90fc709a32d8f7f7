package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/api"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/dasha"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/ephemeris"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/metrics"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/profile"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/transit"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/zodiac"
	"github.com/vedic-tools/jyotish-atlas/pkg/store/sqlite/history"
)

// uniformSky moves every body one degree a day from 10° at JD 2451545.
func uniformSky() ephemeris.Provider {
	return ephemeris.ProviderFunc(func(_ context.Context, jd float64, body domain.Body) (domain.Position, error) {
		base := 10 + float64(body)*7
		return domain.Position{Longitude: zodiac.Normalize(base + (jd - 2451545)), Speed: 1}, nil
	})
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	provider := ephemeris.NewShadowNode(m.InstrumentProvider(uniformSky()))
	profiles, err := profile.NewRegistryFromBytes([]byte(`
[alice]
birth = 1990-05-15 14:30
timezone = Asia/Colombo
latitude = 6.9
longitude = 79.8
`))
	require.NoError(t, err)

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Dasha:    dasha.NewService(provider, nil, m, dasha.Defaults{Years: 120, DetailLevel: domain.LevelAntardasha}),
			Transits: transit.NewService(provider, nil, m),
			Profiles: profiles,
			History:  history.NewNoopRecorder(),
			Gatherer: registry,
		},
	}
	testServer := httptest.NewServer(NewWebAPI(logger, config).Handler())
	defer testServer.Close()

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name:           "Healthz",
			method:         http.MethodGet,
			path:           "/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "GetNakshatra",
			method:         http.MethodGet,
			path:           "/api/v1/nakshatra?longitude=45",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var res api.NakshatraResponse
				require.NoError(t, json.Unmarshal(body, &res))
				assert.Equal(t, "Rohini", res.Name)
				assert.Equal(t, "Moon", res.Lord)
			},
		},
		{
			name:           "CalculateDasha_Profile",
			method:         http.MethodPost,
			path:           "/api/v1/dasha",
			body:           `{"profile":"alice","detail_level":1}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var res api.DashaResponse
				require.NoError(t, json.Unmarshal(body, &res))
				assert.Equal(t, 1, res.DetailLevel)
				assert.NotEmpty(t, res.Periods)
				assert.Equal(t, len(res.Periods), res.TotalPeriods)
				assert.Equal(t, "Asia/Colombo", res.Location.TimeZone)
			},
		},
		{
			name:           "CalculateDasha_InvalidLevel",
			method:         http.MethodPost,
			path:           "/api/v1/dasha",
			body:           `{"birth_date":"1990-05-15","birth_time":"14:30","time_zone":"UTC","detail_level":7}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "SignChanges",
			method:         http.MethodPost,
			path:           "/api/v1/transits/sign-changes",
			body:           `{"date":"2024-04-13","time":"21:00","time_zone":"Asia/Colombo","bodies":["Sun","Ketu"]}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var res api.SignChangeResponse
				require.NoError(t, json.Unmarshal(body, &res))
				require.Len(t, res.Changes, 2)
				assert.Equal(t, "Sun", res.Changes[0].Body)
				assert.Equal(t, "Ketu", res.Changes[1].Body)
				assert.True(t, res.Changes[1].IsRetrograde)
				assert.True(t, res.Changes[0].Next.Time.After(res.ReferenceUTC))
			},
		},
		{
			name:           "ListProfiles",
			method:         http.MethodGet,
			path:           "/api/v1/profiles",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var res []api.Profile
				require.NoError(t, json.Unmarshal(body, &res))
				require.Len(t, res, 1)
				assert.Equal(t, "alice", res[0].Name)
			},
		},
		{
			name:           "ListHistory",
			method:         http.MethodGet,
			path:           "/api/v1/history",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `[]`, string(body))
			},
		},
		{
			name:           "Metrics",
			method:         http.MethodGet,
			path:           "/metrics",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), "jyotish_calculations_total")
				assert.Contains(t, string(body), "jyotish_ephemeris_evaluations_total")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, testServer.URL+tc.path, strings.NewReader(tc.body))
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			if tc.check != nil {
				tc.check(t, body)
			}
		})
	}
}

func TestNewWebAPI_DefaultShutdownTimeout(t *testing.T) {
	w := NewWebAPI(zerolog.Nop(), Config{Addr: ":0"})
	assert.Equal(t, defaultShutdownTimeout, w.shutdownTimeout)
}
