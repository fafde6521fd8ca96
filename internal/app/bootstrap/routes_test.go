// internal/app/bootstrap/routes_test.go
package bootstrap_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/crackenhq/cracken/internal/app/bootstrap"
	"github.com/crackenhq/cracken/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db := testutil.NewTestDB(t)
	cfg := bootstrap.Config{
		Env:         "dev",
		JWTSecret:   "0123456789abcdef0123456789abcdef",
		TokenExpiry: time.Hour,
	}
	handler, err := bootstrap.BuildHandler(cfg, db, zap.NewNop())
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	return resp, raw
}

func registerUser(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":"longenough","name":"Test User"}`, email)
	resp, raw := doJSON(t, srv, "POST", "/api/v1/auth/register", "", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register returned %d: %s", resp.StatusCode, raw)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decoding register response: %v", err)
	}
	return out.AccessToken
}

func TestRouting_EndToEnd(t *testing.T) {
	srv := newTestServer(t)

	// Health is public.
	resp, _ := doJSON(t, srv, "GET", "/api/v1/health", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health returned %d", resp.StatusCode)
	}

	// Group routes demand a token.
	resp, _ = doJSON(t, srv, "GET", "/api/v1/groups", "", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	alice := registerUser(t, srv, "alice@example.com")
	bob := registerUser(t, srv, "bob@example.com")

	// Alice creates a group.
	resp, raw := doJSON(t, srv, "POST", "/api/v1/groups", alice, `{"name":"Apartment 4B"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create group returned %d: %s", resp.StatusCode, raw)
	}
	var group struct {
		ID         int64  `json:"id"`
		InviteCode string `json:"invite_code"`
	}
	if err := json.Unmarshal(raw, &group); err != nil {
		t.Fatalf("decoding group: %v", err)
	}

	// Bob joins by invite code.
	resp, raw = doJSON(t, srv, "POST", "/api/v1/groups/join", bob,
		fmt.Sprintf(`{"invite_code":%q}`, group.InviteCode))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join returned %d: %s", resp.StatusCode, raw)
	}

	// Task routes resolve through the nested mount with the group id intact.
	resp, raw = doJSON(t, srv, "POST", fmt.Sprintf("/api/v1/groups/%d/tasks", group.ID), bob, `{"name":"dishes"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create task returned %d: %s", resp.StatusCode, raw)
	}
	var task struct {
		ID              int64   `json:"id"`
		GroupID         int64   `json:"group_id"`
		AssignedUserIDs []int64 `json:"assigned_user_ids"`
	}
	if err := json.Unmarshal(raw, &task); err != nil {
		t.Fatalf("decoding task: %v", err)
	}
	if task.GroupID != group.ID {
		t.Errorf("task landed in group %d, want %d", task.GroupID, group.ID)
	}
	if len(task.AssignedUserIDs) != 2 {
		t.Errorf("expected both members assigned, got %v", task.AssignedUserIDs)
	}

	// Completions mount resolves too.
	resp, raw = doJSON(t, srv, "POST", fmt.Sprintf("/api/v1/groups/%d/completions", group.ID), alice,
		fmt.Sprintf(`{"task_id":%d}`, task.ID))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("record completion returned %d: %s", resp.StatusCode, raw)
	}

	// Listing reflects the recorded completion.
	resp, raw = doJSON(t, srv, "GET", fmt.Sprintf("/api/v1/groups/%d/completions", group.ID), bob, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list completions returned %d: %s", resp.StatusCode, raw)
	}
	var completions []json.RawMessage
	if err := json.Unmarshal(raw, &completions); err != nil {
		t.Fatalf("decoding completions: %v", err)
	}
	if len(completions) != 1 {
		t.Errorf("expected 1 completion, got %d", len(completions))
	}

	// /auth/me round-trips the token's identity.
	resp, raw = doJSON(t, srv, "GET", "/api/v1/auth/me", alice, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me returned %d: %s", resp.StatusCode, raw)
	}
	var me struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &me); err != nil {
		t.Fatalf("decoding me: %v", err)
	}
	if me.Email != "alice@example.com" {
		t.Errorf("expected alice's identity, got %q", me.Email)
	}
}
