package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
	"github.com/notewall/notewall-backend/internal/middleware"
	"github.com/notewall/notewall-backend/internal/service"
	"github.com/notewall/notewall-backend/internal/testutil"
)

const validNoteBody = `{"content":"Hello wall","backgroundColor":"#FFEE88","noteStyle":"classic","clipType":"pin","tilt":1.5,"selectedFont":"caveat"}`

// Helper to set up auth context
func setupAuthContext(c echo.Context, auth0ID string) {
	claims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Subject: auth0ID,
		},
		CustomClaims: &middleware.CustomClaims{},
	}
	ctx := context.WithValue(c.Request().Context(), middleware.ClaimsKey, claims)
	ctx = context.WithValue(ctx, middleware.Auth0IDKey, auth0ID)
	c.SetRequest(c.Request().WithContext(ctx))
}

type testEnv struct {
	store        *testutil.MockStore
	events       *testutil.MockEventPublisher
	notes        *NoteHandler
	comments     *CommentHandler
	interactions *InteractionHandler
	settings     *SettingsHandler
}

func newTestEnv() *testEnv {
	store := testutil.NewMockStore()
	events := testutil.NewMockEventPublisher()

	noteService := service.NewNoteService(store.Notes)
	noteService.SetEventPublisher(events)
	commentService := service.NewCommentService(store.Comments, store.Notes, store.Settings)
	commentService.SetEventPublisher(events)
	interactionService := service.NewInteractionService(store.Notes, store.Comments, store.Likes, store.Views, store.Reports)
	interactionService.SetEventPublisher(events)

	return &testEnv{
		store:        store,
		events:       events,
		notes:        NewNoteHandler(noteService),
		comments:     NewCommentHandler(commentService),
		interactions: NewInteractionHandler(interactionService),
		settings:     NewSettingsHandler(service.NewSettingsService(store.Settings)),
	}
}

// newContext builds an echo context for method/target. An empty userID
// leaves the request anonymous.
func newContext(method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		setupAuthContext(c, userID)
	}
	return c, rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to decode problem details: %v", err)
	}
	return problem
}

func problemFields(problem ProblemDetails) []string {
	fields := make([]string, len(problem.Errors))
	for i, fe := range problem.Errors {
		fields[i] = fe.Field
	}
	return fields
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("Expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}


// expectFields fails unless the problem lists exactly want, in any order
func expectFields(t *testing.T, problem ProblemDetails, want ...string) {
	t.Helper()
	got := problemFields(problem)
	sort.Strings(got)
	sorted := append([]string(nil), want...)
	sort.Strings(sorted)
	if strings.Join(got, ",") != strings.Join(sorted, ",") {
		t.Errorf("Expected invalid fields %v, got %v", sorted, got)
	}
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
}
