package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/civicreport/civicreport-go/internal/crypto"
	"github.com/civicreport/civicreport-go/internal/middleware"
	"github.com/civicreport/civicreport-go/internal/model"
	"github.com/civicreport/civicreport-go/internal/repository"
	"github.com/civicreport/civicreport-go/internal/service"
)

type memUserStore struct {
	users  map[string]*model.User
	nextID int64
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*model.User), nextID: 1}
}

func (m *memUserStore) Create(_ context.Context, user *model.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	user.ID = m.nextID
	m.nextID++
	stored := *user
	m.users[user.Email] = &stored
	return nil
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *memUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

const testSecret = "test-secret"

func newTestAuthHandler() *AuthHandler {
	return NewAuthHandler(service.NewAuthService(newMemUserStore(), testSecret, time.Hour))
}

func registerForm(email, password, confirm, role string) *http.Request {
	form := url.Values{
		"email":            {email},
		"password":         {password},
		"confirm_password": {confirm},
		"role":             {role},
	}
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func loginJSON(t *testing.T, email, password string) *http.Request {
	t.Helper()
	body, err := json.Marshal(model.LoginRequest{Email: email, Password: password})
	if err != nil {
		t.Fatalf("marshaling login body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterRedirectsToLogin(t *testing.T) {
	h := newTestAuthHandler()

	rec := httptest.NewRecorder()
	h.HandleRegister(rec, registerForm("a@x.com", "pw123456", "pw123456", "citizen"))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestRegisterMissingField(t *testing.T) {
	h := newTestAuthHandler()

	rec := httptest.NewRecorder()
	h.HandleRegister(rec, registerForm("a@x.com", "pw123456", "pw123456", ""))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing role", rec.Code)
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	h := newTestAuthHandler()

	rec := httptest.NewRecorder()
	h.HandleRegister(rec, registerForm("a@x.com", "pw123456", "different", "citizen"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for password mismatch", rec.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := newTestAuthHandler()

	rec := httptest.NewRecorder()
	h.HandleRegister(rec, registerForm("a@x.com", "pw123456", "pw123456", "citizen"))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("first register status = %d, want 303", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleRegister(rec, registerForm("a@x.com", "other-pw", "other-pw", "citizen"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "email already exists") {
		t.Errorf("duplicate register body = %q", rec.Body.String())
	}
}

func TestLoginFailureIsUniform(t *testing.T) {
	h := newTestAuthHandler()

	rec := httptest.NewRecorder()
	h.HandleRegister(rec, registerForm("a@x.com", "pw123456", "pw123456", "citizen"))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("register status = %d, want 303", rec.Code)
	}

	wrongPassword := httptest.NewRecorder()
	h.HandleLogin(wrongPassword, loginJSON(t, "a@x.com", "wrong"))

	unknownEmail := httptest.NewRecorder()
	h.HandleLogin(unknownEmail, loginJSON(t, "nobody@x.com", "pw123456"))

	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d/%d, want 401/401", wrongPassword.Code, unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Errorf("failure bodies differ: %q vs %q", wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}

func TestLoginMissingFields(t *testing.T) {
	h := newTestAuthHandler()

	rec := httptest.NewRecorder()
	h.HandleLogin(rec, loginJSON(t, "a@x.com", ""))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing password", rec.Code)
	}
}

func TestLoginBodyTooLarge(t *testing.T) {
	h := newTestAuthHandler()

	body := `{"email":"a@x.com","password":"` + strings.Repeat("x", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413 for oversized body", rec.Code)
	}
}

func TestRegisterBodyTooLarge(t *testing.T) {
	h := newTestAuthHandler()

	body := `{"email":"a@x.com","role":"` + strings.Repeat("x", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413 for oversized body", rec.Code)
	}
}

// TestRegisterLoginProfileFlow walks the full happy path: register, log in,
// then fetch the profile through the session guard with the issued token.
func TestRegisterLoginProfileFlow(t *testing.T) {
	h := newTestAuthHandler()

	rec := httptest.NewRecorder()
	h.HandleRegister(rec, registerForm("a@x.com", "pw123456", "pw123456", "citizen"))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("register status = %d, want 303", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleLogin(rec, loginJSON(t, "a@x.com", "pw123456"))
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var login model.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	if login.Token == "" {
		t.Fatal("login response carries no token")
	}

	guarded := middleware.JWTAuth(testSecret)(http.HandlerFunc(h.HandleProfile))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("profile status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var profile model.ProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decoding profile response: %v", err)
	}
	if profile.Email != "a@x.com" || profile.Role != "citizen" {
		t.Errorf("profile = %+v, want a@x.com/citizen", profile)
	}
}

func TestProfileUserGone(t *testing.T) {
	h := newTestAuthHandler()
	guarded := middleware.JWTAuth(testSecret)(http.HandlerFunc(h.HandleProfile))

	// A valid token whose id has no backing row.
	token, err := crypto.GenerateToken(99, "citizen", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for vanished user", rec.Code)
	}
}
