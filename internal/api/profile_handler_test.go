package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumeforge/internal/database"
	"resumeforge/internal/profile"
	"resumeforge/internal/render"
)

func newProfileHandler(t *testing.T) *ProfileHandler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:api_profile_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.Profile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewProfileHandler(profile.NewStore(db))
}

func TestGetProfile_EmptyIsNotAnError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newProfileHandler(t)

	w := invokeAs(1, httptest.NewRequest(http.MethodGet, "/v1/profile", nil), nil, h.GetProfile)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp profileResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.HasProfile || resp.Profile != nil {
		t.Fatalf("expected empty profile response, got %+v", resp)
	}
}

func TestSaveProfile_RoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newProfileHandler(t)

	p := profile.Profile{
		FullName:   "Ada Lovelace",
		Email:      "ada@example.com",
		Skills:     []string{"Go", "SQL"},
		Projects:   []profile.Project{{Title: "Engine", Description: "analytical"}},
		Experience: []string{"Analyst"},
	}
	w := invokeAs(1, newJSONRequest(t, http.MethodPut, "/v1/profile", p), nil, h.SaveProfile)
	if w.Code != http.StatusOK {
		t.Fatalf("save: expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	w = invokeAs(1, httptest.NewRequest(http.MethodGet, "/v1/profile", nil), nil, h.GetProfile)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200 got %d", w.Code)
	}
	var resp profileResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.HasProfile || resp.Profile == nil {
		t.Fatalf("expected saved profile, got %+v", resp)
	}
	if resp.Profile.FullName != "Ada Lovelace" || len(resp.Profile.Skills) != 2 {
		t.Fatalf("unexpected profile: %+v", resp.Profile)
	}

	// 其他用户看不到这份资料。
	w = invokeAs(2, httptest.NewRequest(http.MethodGet, "/v1/profile", nil), nil, h.GetProfile)
	var other profileResponse
	if err := json.Unmarshal(w.Body.Bytes(), &other); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if other.HasProfile {
		t.Fatalf("profile leaked across owners: %+v", other)
	}
}

func TestRenderTemplate_RequiresProfile(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:api_render_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.Profile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store := profile.NewStore(db)
	h := NewRenderHandler(render.NewService(store))

	params := gin.Params{{Key: "template", Value: "modern"}}
	w := invokeAs(1, httptest.NewRequest(http.MethodGet, "/v1/render/modern", nil), params, h.RenderTemplate)
	if w.Code != http.StatusPreconditionFailed {
		t.Fatalf("expected 412 got %d body=%s", w.Code, w.Body.String())
	}

	if err := store.Save(context.Background(), 1, profile.Profile{FullName: "Ada Lovelace"}); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	w = invokeAs(1, httptest.NewRequest(http.MethodGet, "/v1/render/modern", nil), params, h.RenderTemplate)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var result render.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.SuggestedName != "Ada Lovelace's Modern Resume" {
		t.Fatalf("unexpected suggested name %q", result.SuggestedName)
	}

	// 未知模板返回 404。
	badParams := gin.Params{{Key: "template", Value: "vintage"}}
	w = invokeAs(1, httptest.NewRequest(http.MethodGet, "/v1/render/vintage", nil), badParams, h.RenderTemplate)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
