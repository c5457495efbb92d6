package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bandseeking/bandseeking-go/internal/domain"
	"github.com/bandseeking/bandseeking-go/internal/geocoding"
	"github.com/bandseeking/bandseeking-go/internal/profile"
	"github.com/bandseeking/bandseeking-go/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLocations struct {
	values map[string]string
}

func (f *fakeLocations) ResolveWait(_ context.Context, code string) string {
	if v, ok := f.values[code]; ok {
		return v
	}
	return code
}

type fakeRepository struct {
	profiles map[string]*domain.Profile
	err      error
}

func (f *fakeRepository) FindByUsername(_ context.Context, username string) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.profiles[username]; ok {
		return p, nil
	}
	return nil, errors.NewNotFoundError("profile", username)
}

type fixedEncourager string

func (f fixedEncourager) Pick() string { return string(f) }

type fakeCircuit struct{}

func (fakeCircuit) CircuitStatus() geocoding.CircuitBreakerStatus {
	return geocoding.CircuitBreakerStatus{State: geocoding.CircuitStateClosed}
}

type fakeDatabase struct{ err error }

func (f fakeDatabase) Ping(context.Context) error { return f.err }

type fakeCache bool

func (f fakeCache) IsConnected(context.Context) bool { return bool(f) }

func newTestServer(t *testing.T, repo *fakeRepository) *Server {
	t.Helper()
	locations := &fakeLocations{values: map[string]string{"27701": "Durham, NC", "59715": "Bozeman, MT"}}
	encourager := fixedEncourager("Keep going!")
	return New(":0", Dependencies{
		Locations:  locations,
		Profiles:   profile.NewService(repo, locations, profile.NewEncourager(nil), zap.NewNop()),
		Encourager: encourager,
		Geocoder:   fakeCircuit{},
		Mode:       gin.TestMode,
		Logger:     zap.NewNop(),
	})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(t, &fakeRepository{}), http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","geocoder":{"state":"CLOSED","failure_count":0}}`, w.Body.String())
}

func TestHealthReportsBackingStores(t *testing.T) {
	tests := []struct {
		name     string
		database DatabasePinger
		cache    CacheChecker
		code     int
		body     string
	}{
		{
			"all up", fakeDatabase{}, fakeCache(true), http.StatusOK,
			`{"status":"ok","database":"connected","redis":"connected","geocoder":{"state":"CLOSED","failure_count":0}}`,
		},
		{
			"redis down stays healthy", fakeDatabase{}, fakeCache(false), http.StatusOK,
			`{"status":"ok","database":"connected","redis":"disconnected","geocoder":{"state":"CLOSED","failure_count":0}}`,
		},
		{
			"database down", fakeDatabase{err: context.DeadlineExceeded}, nil, http.StatusServiceUnavailable,
			`{"status":"unavailable","database":"disconnected","geocoder":{"state":"CLOSED","failure_count":0}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &fakeRepository{})
			s.deps.Database = tt.database
			s.deps.Cache = tt.cache

			w := do(t, s, http.MethodGet, "/healthz", "")
			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestGetLocation(t *testing.T) {
	s := newTestServer(t, &fakeRepository{})

	tests := []struct {
		path string
		want LocationResponse
	}{
		{"/api/locations/59715", LocationResponse{ZipCode: "59715", Display: "Bozeman, MT", Resolved: true}},
		{"/api/locations/99999", LocationResponse{ZipCode: "99999", Display: "99999", Resolved: false}},
		{"/api/locations/abc", LocationResponse{ZipCode: "abc", Display: "abc", Resolved: false}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, s, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, w.Code)

			var got LocationResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetProfileCompletion(t *testing.T) {
	repo := &fakeRepository{profiles: map[string]*domain.Profile{
		"keyboardist_5": {
			Username:             "keyboardist_5",
			Bio:                  "Synth nerd.",
			ZipCode:              "27701",
			SecondaryInstruments: []string{"organ"},
		},
	}}
	s := newTestServer(t, repo)

	w := do(t, s, http.MethodGet, "/api/profiles/keyboardist_5/completion", "")
	require.Equal(t, http.StatusOK, w.Code)

	var report domain.CompletionReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 50, report.Completion.Percentage)
	assert.True(t, report.Completion.IsUsingDefaults)
	assert.Equal(t, profile.MessageTakingShape, report.Message)
	assert.Equal(t, "Durham, NC", report.Location)
	assert.NotEmpty(t, report.Encouragement)
}

func TestGetProfileCompletionNotFound(t *testing.T) {
	w := do(t, newTestServer(t, &fakeRepository{}), http.MethodGet, "/api/profiles/ghost/completion", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Profile not found"}`, w.Body.String())
}

func TestGetProfileCompletionStorageError(t *testing.T) {
	repo := &fakeRepository{err: errors.NewServiceError("query failed", "postgres", "find_profile", context.DeadlineExceeded)}
	w := do(t, newTestServer(t, repo), http.MethodGet, "/api/profiles/anyone/completion", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to load profile"}`, w.Body.String())
}

func TestScoreProfile(t *testing.T) {
	s := newTestServer(t, &fakeRepository{})

	body := `{
		"username": "songwriter_12",
		"bio": "` + profile.DefaultBio + `",
		"zip_code": "59715",
		"profile_image_url": "https://cdn/a.jpg",
		"social_links": {"instagram": "https://instagram.com/a", "tiktok": ""},
		"secondary_instruments": ["ukulele"]
	}`
	w := do(t, s, http.MethodPost, "/api/profiles/completion", body)
	require.Equal(t, http.StatusOK, w.Code)

	var report domain.CompletionReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 67, report.Completion.Percentage)
	assert.Equal(t, []string{profile.FieldCustomBio, profile.FieldCustomUsername}, report.Completion.MissingFields)
	assert.Equal(t, profile.MessageGoodProgress, report.Message)
	assert.Equal(t, "Bozeman, MT", report.Location)
}

func TestScoreProfileRejectsBadJSON(t *testing.T) {
	w := do(t, newTestServer(t, &fakeRepository{}), http.MethodPost, "/api/profiles/completion", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid profile JSON"}`, w.Body.String())
}

func TestScoreProfileAcceptsNonStringLinks(t *testing.T) {
	s := newTestServer(t, &fakeRepository{})

	w := do(t, s, http.MethodPost, "/api/profiles/completion", `{"social_links":{"website":true,"tiktok":null}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var report domain.CompletionReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, []string{profile.FieldSocialLinks}, report.Completion.CompletedFields)
	assert.Equal(t, 17, report.Completion.Percentage)
}

func TestGetEncouragement(t *testing.T) {
	w := do(t, newTestServer(t, &fakeRepository{}), http.MethodGet, "/api/encouragement", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Keep going!"}`, w.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t, &fakeRepository{})

	w := do(t, s, http.MethodGet, "/healthz", "")
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", id)
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "not-a-uuid")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get("X-Request-ID"))
}
