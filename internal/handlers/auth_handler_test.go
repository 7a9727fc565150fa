package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type stubAuthUserStore struct {
	user         *models.User
	loginTokens  []string
	updateErr    error
	lastUserID   int64
	lookupEmails []string
}

func (s *stubAuthUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.lookupEmails = append(s.lookupEmails, email)
	if s.user == nil || s.user.Email != email {
		return nil, pgx.ErrNoRows
	}
	return s.user, nil
}

func (s *stubAuthUserStore) UpdateLoginToken(_ context.Context, id int64, loginToken string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.lastUserID = id
	s.loginTokens = append(s.loginTokens, loginToken)
	token := loginToken
	s.user.LoginToken = &token
	return nil
}

func newLoginApp(store *stubAuthUserStore) *fiber.App {
	handler := &AuthHandler{userRepo: store, jwtSecret: "login-test-secret"}
	app := fiber.New()
	app.Post("/api/auth/login", handler.Login)
	return app
}

func loginRequestBody(email, password string) *http.Request {
	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return &models.User{
		ID:           42,
		Name:         "Test Client",
		Email:        "a@x.com",
		PasswordHash: hash,
		Role:         models.RoleClient,
	}
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	app := newLoginApp(&stubAuthUserStore{})

	resp, err := app.Test(loginRequestBody("nobody@x.com", "pw123456"))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if got := decodeBody(t, resp)["message"]; got != "Invalid email or password" {
		t.Fatalf("expected generic credentials message, got %v", got)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	store := &stubAuthUserStore{user: testUser(t, "pw123456")}
	app := newLoginApp(store)

	resp, err := app.Test(loginRequestBody("a@x.com", "wrong-password"))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	// Identical message to the unknown-email case so accounts cannot be enumerated.
	if got := decodeBody(t, resp)["message"]; got != "Invalid email or password" {
		t.Fatalf("expected generic credentials message, got %v", got)
	}
	if len(store.loginTokens) != 0 {
		t.Fatalf("expected no marker rotation on failed login")
	}
}

func TestLoginRotatesMarkerAndIssuesToken(t *testing.T) {
	store := &stubAuthUserStore{user: testUser(t, "pw123456")}
	app := newLoginApp(store)

	resp, err := app.Test(loginRequestBody("a@x.com", "pw123456"))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("expected a token in the login response")
	}
	if len(store.loginTokens) != 1 || store.lastUserID != 42 {
		t.Fatalf("expected one marker rotation for user 42, got %+v", store.loginTokens)
	}

	claims, err := utils.ValidateToken(token, "login-test-secret")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "42" || claims.Role != "client" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.LoginToken != store.loginTokens[0] {
		t.Fatalf("expected token to embed the freshly stored marker")
	}
}

func TestSecondLoginSupersedesFirst(t *testing.T) {
	store := &stubAuthUserStore{user: testUser(t, "pw123456")}
	app := newLoginApp(store)

	first, err := app.Test(loginRequestBody("a@x.com", "pw123456"))
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	firstToken, _ := decodeBody(t, first)["token"].(string)

	second, err := app.Test(loginRequestBody("a@x.com", "pw123456"))
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	secondToken, _ := decodeBody(t, second)["token"].(string)

	if firstToken == secondToken {
		t.Fatalf("expected distinct tokens across logins")
	}
	if len(store.loginTokens) != 2 || store.loginTokens[0] == store.loginTokens[1] {
		t.Fatalf("expected two distinct markers, got %+v", store.loginTokens)
	}

	// Only the second marker survives in storage; the first token is now stale.
	firstClaims, err := utils.ValidateToken(firstToken, "login-test-secret")
	if err != nil {
		t.Fatalf("ValidateToken first: %v", err)
	}
	if store.user.LoginToken == nil || firstClaims.LoginToken == *store.user.LoginToken {
		t.Fatalf("expected first token's marker to no longer match storage")
	}
}

func TestLoginNormalizesEmailCase(t *testing.T) {
	store := &stubAuthUserStore{user: testUser(t, "pw123456")}
	app := newLoginApp(store)

	resp, err := app.Test(loginRequestBody("A@X.com", "pw123456"))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(store.lookupEmails) == 0 || store.lookupEmails[0] != "a@x.com" {
		t.Fatalf("expected lowercased lookup, got %+v", store.lookupEmails)
	}
}
