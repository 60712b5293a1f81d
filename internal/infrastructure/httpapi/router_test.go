package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"FarmDashboard/internal/domain"
	"FarmDashboard/internal/family"
	"FarmDashboard/internal/period"
	"FarmDashboard/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeReporter struct {
	buckets  []domain.BucketSummary
	overview domain.LotOverview
	err      error
	family   string
	lot      int64
}

func (f *fakeReporter) Report(_ context.Context, familyName string, lotID int64, periodName string) ([]domain.BucketSummary, error) {
	f.family, f.lot = familyName, lotID
	if _, err := period.Parse(periodName); err != nil {
		return nil, err
	}
	if !slices.Contains(f.Families(), familyName) {
		return nil, fmt.Errorf("%w: %s", family.ErrUnknownFamily, familyName)
	}
	return f.buckets, f.err
}

func (f *fakeReporter) Overview(_ context.Context, lotID int64) (domain.LotOverview, error) {
	f.lot = lotID
	return f.overview, f.err
}

func (f *fakeReporter) Families() []string {
	return []string{"clasificacion", "estadolote", "produccion"}
}

func serve(t *testing.T, router http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestReportRoute(t *testing.T) {
	t.Parallel()

	reporter := &fakeReporter{buckets: []domain.BucketSummary{
		{Label: "2024-04-03", SizeCategory: "Grande", Sums: map[string]int64{"TotalUnitaria": 34}},
	}}
	router := NewRouter(RouterConfig{Dashboard: NewDashboardHandler(reporter, nil)})

	rec := serve(t, router, "/api/dashboard/clasificacion/12/diario", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if reporter.family != "clasificacion" || reporter.lot != 12 {
		t.Fatalf("unexpected call: %s %d", reporter.family, reporter.lot)
	}

	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body) != 1 || body[0]["fechaRegistro"] != "2024-04-03" || body[0]["tamano"] != "Grande" || body[0]["totalUnitaria"] != float64(34) {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestReportRouteEmptyIsOK(t *testing.T) {
	t.Parallel()

	router := NewRouter(RouterConfig{Dashboard: NewDashboardHandler(&fakeReporter{buckets: []domain.BucketSummary{}}, nil)})
	rec := serve(t, router, "/api/dashboard/produccion/1/mensual", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "[]" {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestReportRouteErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		path     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"invalid period", "/api/dashboard/produccion/1/anual", nil, http.StatusBadRequest, ErrCodeInvalidPeriod},
		{"invalid lot", "/api/dashboard/produccion/abc/diario", nil, http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown family", "/api/dashboard/ventas/1/diario", nil, http.StatusNotFound, ErrCodeNotFound},
		{"unknown route", "/api/dashboard/produccion/1", nil, http.StatusNotFound, ErrCodeNotFound},
		{"store failure", "/api/dashboard/estadolote/1/semanal", errors.New("db down"), http.StatusInternalServerError, ErrCodeDatabaseError},
		{"lot not found", "/api/dashboard/infolote/8", fmt.Errorf("%w: 8", usecase.ErrLotNotFound), http.StatusNotFound, ErrCodeLotNotFound},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := NewRouter(RouterConfig{Dashboard: NewDashboardHandler(&fakeReporter{err: tc.err}, nil)})
			rec := serve(t, router, tc.path, "")
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d: %s", tc.wantCode, rec.Code, rec.Body.String())
			}

			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success || body.Error.Code != tc.wantErr {
				t.Fatalf("unexpected error body: %+v", body)
			}
		})
	}
}

func TestReportRouteResolvesFamiliesThroughDashboard(t *testing.T) {
	t.Parallel()

	dash := usecase.NewDashboard(usecase.DashboardDeps{})
	router := NewRouter(RouterConfig{Dashboard: NewDashboardHandler(dash, nil)})

	for _, path := range []string{
		"/api/dashboard/production/1/daily",
		"/api/dashboard/classification/1/weekly",
		"/api/dashboard/lotstate/1/monthly",
		"/api/dashboard/produccion/1/diario",
	} {
		rec := serve(t, router, path, "")
		if rec.Code != http.StatusOK || rec.Body.String() != "[]" {
			t.Fatalf("%s: unexpected response %d: %s", path, rec.Code, rec.Body.String())
		}
	}

	rec := serve(t, router, "/api/dashboard/ventas/1/daily", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Family    string   `json:"family"`
				Available []string `json:"available"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	want := []string{"clasificacion", "estadolote", "produccion"}
	if body.Error.Code != ErrCodeNotFound || body.Error.Details.Family != "ventas" || !slices.Equal(body.Error.Details.Available, want) {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestOverviewRoute(t *testing.T) {
	t.Parallel()

	reporter := &fakeReporter{overview: domain.LotOverview{
		LotID:            5,
		FirstRecord:      time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		LastRecord:       time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC),
		TotalProduced:    9000,
		CurrentHeadcount: 950,
	}}
	router := NewRouter(RouterConfig{Dashboard: NewDashboardHandler(reporter, nil)})

	rec := serve(t, router, "/api/dashboard/infolote/5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["primerRegistro"] != "2024-03-01" || body["produccionTotal"] != float64(9000) || body["cantidadActual"] != float64(950) {
		t.Fatalf("unexpected body: %v", body)
	}
}

func signToken(t *testing.T, secret, role string, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "operator",
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	const secret = "granja-secret"
	router := NewRouter(RouterConfig{
		Dashboard:      NewDashboardHandler(&fakeReporter{buckets: []domain.BucketSummary{}}, nil),
		AuthMiddleware: NewAuthMiddleware(secret, []string{domain.RoleAdmin, domain.RoleUser}),
	})
	path := "/api/dashboard/produccion/1/diario"
	future := time.Now().Add(time.Hour)

	if rec := serve(t, router, path, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", rec.Code)
	}
	if rec := serve(t, router, path, signToken(t, "other", "Admin", future)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong secret: expected 401, got %d", rec.Code)
	}
	if rec := serve(t, router, path, signToken(t, secret, "Admin", time.Now().Add(-time.Hour))); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expired token: expected 401, got %d", rec.Code)
	}
	if rec := serve(t, router, path, signToken(t, secret, "Guest", future)); rec.Code != http.StatusForbidden {
		t.Fatalf("guest role: expected 403, got %d", rec.Code)
	}
	if rec := serve(t, router, path, signToken(t, secret, "user", future)); rec.Code != http.StatusOK {
		t.Fatalf("user role: expected 200, got %d", rec.Code)
	}
	if rec := serve(t, router, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("health should not require auth, got %d", rec.Code)
	}
}

func TestNewAuthMiddlewareDisabledWithoutSecret(t *testing.T) {
	t.Parallel()

	if NewAuthMiddleware("", []string{"Admin"}) != nil {
		t.Fatal("expected nil middleware without a secret")
	}
}
