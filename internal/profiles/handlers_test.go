package profiles

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fdg312/mealweek/internal/storage/memory"
	"github.com/fdg312/mealweek/internal/userctx"
)

func newTestHandler() (*Handler, *Service) {
	service := NewService(memory.New().Profiles(), 1800)
	return NewHandler(service), service
}

func TestHandleGetMeCreatesProfile(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/profiles/me", nil)
	w := httptest.NewRecorder()
	handler.HandleGetMe(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp ProfileDTO
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.OwnerUserID != userctx.DefaultUserID {
		t.Errorf("expected owner %q, got %q", userctx.DefaultUserID, resp.OwnerUserID)
	}
	if resp.DailyCalorieTarget != 1800 {
		t.Errorf("expected configured default target 1800, got %d", resp.DailyCalorieTarget)
	}
	if resp.PreferencesCompleted {
		t.Error("new profile must not be onboarded")
	}
}

func TestHandleGetMeIsStable(t *testing.T) {
	handler, _ := newTestHandler()

	ids := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.HandleGetMe(w, httptest.NewRequest(http.MethodGet, "/v1/profiles/me", nil))
		var resp ProfileDTO
		json.NewDecoder(w.Body).Decode(&resp)
		ids = append(ids, resp.ID.String())
	}
	if ids[0] != ids[1] {
		t.Fatalf("expected the same profile on repeated access, got %v", ids)
	}
}

func TestHandleUpdateMe(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantTarget int
		wantName   string
	}{
		{name: "rename", body: `{"name":"  Ana  "}`, wantStatus: http.StatusOK, wantTarget: 1800, wantName: "Ana"},
		{name: "target in range", body: `{"daily_calorie_target":2200}`, wantStatus: http.StatusOK, wantTarget: 2200, wantName: "Eu"},
		{name: "target too low", body: `{"daily_calorie_target":500}`, wantStatus: http.StatusOK, wantTarget: 1000, wantName: "Eu"},
		{name: "target too high", body: `{"daily_calorie_target":9000}`, wantStatus: http.StatusOK, wantTarget: 4000, wantName: "Eu"},
		{name: "empty name", body: `{"name":"   "}`, wantStatus: http.StatusBadRequest},
		{name: "bad email", body: `{"email":"nope"}`, wantStatus: http.StatusBadRequest},
		{name: "bad json", body: `{`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestHandler()

			req := httptest.NewRequest(http.MethodPatch, "/v1/profiles/me", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.HandleUpdateMe(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp ProfileDTO
			json.NewDecoder(w.Body).Decode(&resp)
			if resp.DailyCalorieTarget != tt.wantTarget {
				t.Errorf("expected target %d, got %d", tt.wantTarget, resp.DailyCalorieTarget)
			}
			if resp.Name != tt.wantName {
				t.Errorf("expected name %q, got %q", tt.wantName, resp.Name)
			}
		})
	}
}

func TestProfilesAreScopedByOwner(t *testing.T) {
	_, service := newTestHandler()

	ctxA := userctx.WithUserID(context.Background(), "user-a")
	ctxB := userctx.WithUserID(context.Background(), "user-b")
	name := "A"
	if _, err := service.UpdateMe(ctxA, UpdateProfileRequest{Name: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}

	b, err := service.GetMe(ctxB)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.Name == "A" || b.OwnerUserID != "user-b" {
		t.Fatalf("profile leaked across owners: %+v", b)
	}
}

func TestEnsureProfileKeepsExistingEmail(t *testing.T) {
	_, service := newTestHandler()
	ctx := context.Background()

	if err := service.EnsureProfile(ctx, "email:ana@example.com", "Ana@Example.com"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := service.EnsureProfile(ctx, "email:ana@example.com", "other@example.com"); err != nil {
		t.Fatalf("ensure again: %v", err)
	}

	p, err := service.GetOrCreate(ctx, "email:ana@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Email != "ana@example.com" {
		t.Fatalf("expected first email kept, got %q", p.Email)
	}
}

func TestCalorieTargetAndOnboarding(t *testing.T) {
	_, service := newTestHandler()
	ctx := context.Background()

	target, err := service.CalorieTarget(ctx, "nobody")
	if err != nil || target != 1800 {
		t.Fatalf("expected default 1800 for missing profile, got %d (%v)", target, err)
	}

	p, err := service.CompleteOnboarding(ctx, "ana", 0)
	if err != nil {
		t.Fatalf("onboarding: %v", err)
	}
	if !p.PreferencesCompleted || p.DailyCalorieTarget != 1500 {
		t.Fatalf("expected onboarded with 1500, got %+v", p)
	}

	target, _ = service.CalorieTarget(ctx, "ana")
	if target != 1500 {
		t.Fatalf("expected stored target 1500, got %d", target)
	}
}
