package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fdg312/mealweek/internal/blob"
	"github.com/fdg312/mealweek/internal/catalog"
	"github.com/fdg312/mealweek/internal/config"
	"github.com/fdg312/mealweek/internal/storage/memory"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:                    config.EnvLocal,
		Port:                   8080,
		AuthMode:               config.AuthModeNone,
		JWTSecret:              "test-secret",
		JWTIssuer:              "mealweek",
		JWTTTLMinutes:          60,
		EmailSenderMode:        config.EmailSenderLocal,
		SessionTTLMinutes:      30,
		DefaultCalorieTarget:   1500,
		ReportsDefaultTTLHours: 24,
	}
}

func newTestServer(t *testing.T, cfg *config.Config, opts ...Option) *Server {
	t.Helper()
	opts = append([]Option{WithStorage(memory.New())}, opts...)
	srv, err := New(context.Background(), cfg, catalog.MustDefault(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv
}

func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := do(t, srv.Handler(), http.MethodGet, "/healthz", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	decode(t, w, &resp)
	if resp["status"] != "ok" {
		t.Errorf("expected status=ok, got %s", resp["status"])
	}
}

func TestHealthzMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := do(t, srv.Handler(), http.MethodPost, "/healthz", "", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestPlanSessionFlow(t *testing.T) {
	srv := newTestServer(t, testConfig())
	h := srv.Handler()

	w := do(t, h, http.MethodGet, "/v1/plan/week", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("week: %d", w.Code)
	}
	var week struct {
		Days []struct {
			ID string `json:"id"`
		} `json:"days"`
	}
	decode(t, w, &week)
	if len(week.Days) != 7 || week.Days[0].ID != "seg" {
		t.Fatalf("unexpected week: %+v", week)
	}

	w = do(t, h, http.MethodPost, "/v1/plan/sessions", `{"day_id":"seg"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: %d %s", w.Code, w.Body.String())
	}
	var view struct {
		SessionID string `json:"session_id"`
		Total     struct {
			Calories float64 `json:"calories"`
		} `json:"total"`
	}
	decode(t, w, &view)
	base := view.Total.Calories

	w = do(t, h, http.MethodPut, "/v1/plan/sessions/"+view.SessionID+"/selections/lunch", `{"option_id":"ln-macarrao-fit"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("select: %d %s", w.Code, w.Body.String())
	}
	decode(t, w, &view)
	if view.Total.Calories == base {
		t.Fatal("expected the total to change after a swap")
	}

	w = do(t, h, http.MethodPut, "/v1/plan/sessions/"+view.SessionID+"/selections/lunch", `{"option_id":"bf-cuscuz-ovos"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("foreign option: expected 400, got %d", w.Code)
	}

	w = do(t, h, http.MethodGet, "/v1/plan/days/seg/print?session_id="+view.SessionID, "", "")
	if w.Code != http.StatusOK || !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("print: %d", w.Code)
	}

	w = do(t, h, http.MethodDelete, "/v1/plan/sessions/"+view.SessionID, "", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete session: %d", w.Code)
	}
	w = do(t, h, http.MethodGet, "/v1/plan/sessions/"+view.SessionID, "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("deleted session: expected 404, got %d", w.Code)
	}
}

func TestOnboardingSetsProgressTarget(t *testing.T) {
	srv := newTestServer(t, testConfig())
	h := srv.Handler()

	w := do(t, h, http.MethodPut, "/v1/food-prefs", `{"food_ids":["ovos","frango_peito"],"daily_calorie_target":2200}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("save prefs: %d %s", w.Code, w.Body.String())
	}

	w = do(t, h, http.MethodGet, "/v1/plan/days/ter", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("day: %d", w.Code)
	}
	var view struct {
		Progress struct {
			TargetKcal int `json:"target_kcal"`
		} `json:"progress"`
	}
	decode(t, w, &view)
	if view.Progress.TargetKcal != 2200 {
		t.Fatalf("expected target 2200, got %d", view.Progress.TargetKcal)
	}

	w = do(t, h, http.MethodGet, "/v1/profiles/me", "", "")
	var profile struct {
		PreferencesCompleted bool `json:"preferences_completed"`
	}
	decode(t, w, &profile)
	if !profile.PreferencesCompleted {
		t.Fatal("expected onboarding to be completed")
	}
}

func TestReportsThroughServer(t *testing.T) {
	store := blob.NewMemoryStore("https://blob.test")
	srv := newTestServer(t, testConfig(), WithBlobStore(store))
	h := srv.Handler()

	w := do(t, h, http.MethodPost, "/v1/reports", `{"day_id":"dom","format":"csv"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create report: %d %s", w.Code, w.Body.String())
	}
	var report struct {
		ID          string `json:"id"`
		DownloadURL string `json:"download_url"`
	}
	decode(t, w, &report)
	if !strings.HasPrefix(report.DownloadURL, "https://blob.test/reports/default/dom_") {
		t.Fatalf("unexpected download url %s", report.DownloadURL)
	}

	w = do(t, h, http.MethodGet, "/v1/reports/"+report.ID+"/download", "", "")
	if w.Code != http.StatusFound {
		t.Fatalf("download: expected 302, got %d", w.Code)
	}

	w = do(t, h, http.MethodDelete, "/v1/reports/"+report.ID, "", "")
	if w.Code != http.StatusNoContent || store.Len() != 0 {
		t.Fatalf("delete: %d, objects left %d", w.Code, store.Len())
	}
}

func TestAuthRequired(t *testing.T) {
	cfg := testConfig()
	cfg.AuthMode = config.AuthModeDev
	cfg.AuthRequired = true
	srv := newTestServer(t, cfg)
	h := srv.Handler()

	w := do(t, h, http.MethodGet, "/v1/plan/week", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	w = do(t, h, http.MethodGet, "/healthz", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("healthz must stay public, got %d", w.Code)
	}

	w = do(t, h, http.MethodPost, "/v1/auth/dev", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("dev auth: %d %s", w.Code, w.Body.String())
	}
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, w, &tok)

	w = do(t, h, http.MethodPost, "/v1/plan/sessions", `{}`, tok.AccessToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session with token: %d", w.Code)
	}
	var view struct {
		SessionID string `json:"session_id"`
	}
	decode(t, w, &view)

	w = do(t, h, http.MethodGet, "/v1/profiles/me", "", tok.AccessToken)
	var profile struct {
		OwnerUserID string `json:"owner_user_id"`
	}
	decode(t, w, &profile)
	if profile.OwnerUserID != "dev-user" {
		t.Fatalf("expected dev-user profile, got %q", profile.OwnerUserID)
	}
}

func TestEmailAuthDisabledByDefault(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := do(t, srv.Handler(), http.MethodPost, "/v1/auth/email/request", `{"email":"ana@example.com"}`, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when email auth is off, got %d", w.Code)
	}
}

func TestNewFailsOnIncompleteS3(t *testing.T) {
	cfg := testConfig()
	cfg.Blob.Mode = config.BlobModeS3

	_, err := New(context.Background(), cfg, catalog.MustDefault(), WithStorage(memory.New()))
	if err == nil {
		t.Fatal("expected error for BLOB_MODE=s3 without S3 settings")
	}
}
