// internal/app/features/auth/handler_test.go
package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/crackenhq/cracken/internal/app/features/auth"
	userstore "github.com/crackenhq/cracken/internal/app/store/users"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/testutil"
)

func newTestHandler(t *testing.T) (*auth.Handler, *sysauth.TokenManager) {
	t.Helper()
	db := testutil.NewTestDB(t)
	logger := zap.NewNop()
	tokens, err := sysauth.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour, logger)
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}
	handler := auth.NewHandler(userstore.New(db), tokens, apierrors.NewErrorLogger(logger), logger)
	return handler, tokens
}

func register(t *testing.T, handler *auth.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.HandleRegister(rec, req)
	return rec
}

func TestHandleRegister(t *testing.T) {
	handler, tokens := newTestHandler(t)

	rec := register(t, handler, `{"email":"alice@example.com","password":"longenough","name":"Alice"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.TokenType != "bearer" {
		t.Errorf("expected token_type bearer, got %q", body.TokenType)
	}
	if _, err := tokens.Verify(body.AccessToken); err != nil {
		t.Errorf("issued token does not verify: %v", err)
	}
}

func TestHandleRegister_Validation(t *testing.T) {
	handler, _ := newTestHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"bad email", `{"email":"not-an-email","password":"longenough","name":"Alice"}`},
		{"short password", `{"email":"alice@example.com","password":"short","name":"Alice"}`},
		{"blank name", `{"email":"alice@example.com","password":"longenough","name":"  "}`},
		{"malformed json", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := register(t, handler, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	handler, _ := newTestHandler(t)

	if rec := register(t, handler, `{"email":"alice@example.com","password":"longenough","name":"Alice"}`); rec.Code != http.StatusCreated {
		t.Fatalf("first register failed: %d", rec.Code)
	}
	rec := register(t, handler, `{"email":"ALICE@example.com","password":"different1","name":"Imposter"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleLogin(t *testing.T) {
	handler, _ := newTestHandler(t)
	if rec := register(t, handler, `{"email":"alice@example.com","password":"longenough","name":"Alice"}`); rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", rec.Code)
	}

	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"alice@example.com","password":"longenough"}`))
	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleLogin_BadCredentials(t *testing.T) {
	handler, _ := newTestHandler(t)
	if rec := register(t, handler, `{"email":"alice@example.com","password":"longenough","name":"Alice"}`); rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", rec.Code)
	}

	// Unknown email and wrong password must be indistinguishable.
	for _, body := range []string{
		`{"email":"nobody@example.com","password":"longenough"}`,
		`{"email":"alice@example.com","password":"wrongwrong"}`,
	} {
		req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.HandleLogin(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "incorrect email or password") {
			t.Errorf("expected flattened error detail, got %s", rec.Body.String())
		}
	}
}

func TestHandleMe(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/auth/me", nil)
	req = sysauth.WithTestUser(req, &sysauth.User{ID: 7, Name: "Alice", Email: "alice@example.com"})
	rec := httptest.NewRecorder()
	handler.HandleMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.ID != 7 || body.Email != "alice@example.com" {
		t.Errorf("unexpected identity: %+v", body)
	}
}
