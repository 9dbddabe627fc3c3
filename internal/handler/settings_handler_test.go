package handler

import (
	"net/http"
	"testing"
)

func TestGetSettings_Defaults(t *testing.T) {
	env := newTestEnv()
	c, rec := newContext(http.MethodGet, "/api/v1/settings", "", "auth0|alice")

	if err := env.settings.GetSettings(c); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var resp SettingsResponse
	decodeJSON(t, rec, &resp)
	if resp.Anonymous {
		t.Error("Expected anonymous to default to false")
	}
	if !resp.AllowComments {
		t.Error("Expected allowComments to default to true")
	}
}

func TestUpdateSettings(t *testing.T) {
	env := newTestEnv()

	c, rec := newContext(http.MethodPatch, "/api/v1/settings", `{"anonymous":true}`, "auth0|alice")
	if err := env.settings.UpdateSettings(c); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var resp SettingsResponse
	decodeJSON(t, rec, &resp)
	if !resp.Anonymous {
		t.Error("Expected anonymous to be true")
	}
	if !resp.AllowComments {
		t.Error("Expected untouched allowComments to keep its default")
	}

	c, rec = newContext(http.MethodPatch, "/api/v1/settings", `{"allowComments":"no"}`, "auth0|alice")
	if err := env.settings.UpdateSettings(c); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expectStatus(t, rec, http.StatusBadRequest)
	expectFields(t, decodeProblem(t, rec), "allowComments")
}

func TestSettings_RequireAuth(t *testing.T) {
	env := newTestEnv()

	c, rec := newContext(http.MethodGet, "/api/v1/settings", "", "")
	if err := env.settings.GetSettings(c); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expectStatus(t, rec, http.StatusUnauthorized)

	c, rec = newContext(http.MethodPatch, "/api/v1/settings", `{"anonymous":true}`, "")
	if err := env.settings.UpdateSettings(c); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expectStatus(t, rec, http.StatusUnauthorized)
}
