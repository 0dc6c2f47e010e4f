package handlers_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storeadmin/internal/http/handlers"
)

func TestLoginLogsSuccessAndFailure(t *testing.T) {
	a := newTestApp(t)

	entries := captureLogs(t, func() {
		resp, _ := a.send(t, "POST", "/api/auth/login", "", map[string]string{"email": ownerEmail, "password": "wrong-Passw0rd"})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("bad password: want 401, got %d", resp.StatusCode)
		}
		a.login(t, ownerEmail)
	})
	fail := findLog(entries, "auth.login.fail")
	if fail == nil || fail.Level != "warn" {
		t.Fatalf("expected auth.login.fail warning, got %+v", entries)
	}
	ok := findLog(entries, "auth.login.success")
	if ok == nil || ok.Level != "audit" {
		t.Fatalf("expected auth.login.success audit line")
	}
	for _, e := range entries {
		if strings.Contains(e.Err, "Passw0rd") {
			t.Fatalf("password leaked into logs: %+v", e)
		}
	}
}

func TestRegisterThenUseToken(t *testing.T) {
	a := newTestApp(t)
	resp, body := a.send(t, "POST", "/api/auth/register", "", map[string]string{"email": "new@shop.test", "name": "New", "password": "N3w-Owner!"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: %d %s", resp.StatusCode, body)
	}
	resp, _ = a.send(t, "POST", "/api/auth/register", "", map[string]string{"email": "new@shop.test", "name": "Again", "password": "N3w-Owner!"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate register: want 400, got %d", resp.StatusCode)
	}

	resp, body = a.send(t, "POST", "/api/auth/login", "", map[string]string{"email": "new@shop.test", "password": "N3w-Owner!"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: %d %s", resp.StatusCode, body)
	}
	var out struct {
		Token string `json:"token"`
	}
	decode(t, body, &out)

	resp, body = a.send(t, "GET", "/api/auth/me", out.Token, nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "new@shop.test") {
		t.Fatalf("me: %d %s", resp.StatusCode, body)
	}
	resp, _ = a.send(t, "GET", "/api/auth/me", "not-a-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token: want 401, got %d", resp.StatusCode)
	}
}

func TestLoginRateLimit(t *testing.T) {
	old := handlers.LoginAttempts
	handlers.LoginAttempts = 2
	defer func() { handlers.LoginAttempts = old }()
	a := newTestApp(t)

	entries := captureLogs(t, func() {
		for i := 0; i < 3; i++ {
			resp, _ := a.send(t, "POST", "/api/auth/login", "", map[string]string{"email": ownerEmail, "password": "nope"})
			if i < 2 && resp.StatusCode == http.StatusTooManyRequests {
				t.Errorf("hit login limit too early at %d", i)
			}
			if i == 2 && resp.StatusCode != http.StatusTooManyRequests {
				t.Errorf("expected 429 after limit, got %d", resp.StatusCode)
			}
		}
	})
	if findLog(entries, "rate.login.hit") == nil {
		t.Fatalf("expected rate.login.hit log")
	}
}

func TestCookieSessionNeedsCSRFToken(t *testing.T) {
	a := newTestApp(t)
	resp, body := a.send(t, "POST", "/api/auth/login", "", map[string]string{"email": ownerEmail, "password": demoPass})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: %d %s", resp.StatusCode, body)
	}
	sid := cookie(resp, "sid")
	if sid == nil {
		t.Fatal("login did not set the sid cookie")
	}

	entries := captureLogs(t, func() {
		resp, _ = a.send(t, "POST", store+"/sizes", "", size, sid)
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("cookie write without token: want 403, got %d", resp.StatusCode)
	}
	if findLog(entries, "csrf.fail") == nil {
		t.Fatalf("expected csrf.fail log")
	}

	// a safe request hands out the token
	resp, _ = a.send(t, "GET", store+"/sizes", "", nil, sid)
	tok := cookie(resp, "csrf_")
	if tok == nil || tok.Value == "" {
		t.Fatal("csrf cookie missing")
	}

	req := httptest.NewRequest("POST", store+"/sizes", strings.NewReader(`{"name":"Small","value":"S"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Csrf-Token", tok.Value)
	req.AddCookie(sid)
	req.AddCookie(tok)
	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("cookie write with token: want 201, got %d %s", resp.StatusCode, raw)
	}
}

func TestLoginIssuesFreshSession(t *testing.T) {
	a := newTestApp(t)
	planted := &http.Cookie{Name: "sid", Value: "planted-session-id"}

	resp, _ := a.send(t, "GET", "/api/auth/me", "", nil, planted)
	csrfTok := cookie(resp, "csrf_")
	if csrfTok == nil {
		t.Fatal("csrf cookie missing")
	}
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"`+ownerEmail+`","password":"`+demoPass+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Csrf-Token", csrfTok.Value)
	req.AddCookie(planted)
	req.AddCookie(csrfTok)
	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: want 200, got %d", resp.StatusCode)
	}
	sid := cookie(resp, "sid")
	if sid == nil || sid.Value == "" || sid.Value == planted.Value {
		t.Fatalf("login kept the client's session id: %+v", sid)
	}

	resp, _ = a.send(t, "GET", "/api/auth/me", "", nil, planted)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("planted session authenticated: %d", resp.StatusCode)
	}
	resp, _ = a.send(t, "GET", "/api/auth/me", "", nil, sid)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("fresh session: want 200, got %d", resp.StatusCode)
	}
}

func TestBearerRequestsSkipCSRF(t *testing.T) {
	a := newTestApp(t)
	tok := a.login(t, ownerEmail)
	resp, body := a.send(t, "POST", store+"/sizes", tok, size)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("bearer write: %d %s", resp.StatusCode, body)
	}
}

func TestLogoutEndsCookieSession(t *testing.T) {
	a := newTestApp(t)
	resp, _ := a.send(t, "POST", "/api/auth/login", "", map[string]string{"email": ownerEmail, "password": demoPass})
	sid := cookie(resp, "sid")
	if sid == nil {
		t.Fatal("login did not set the sid cookie")
	}
	resp, _ = a.send(t, "GET", "/api/auth/me", "", nil, sid)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me with session: %d", resp.StatusCode)
	}
	csrfTok := cookie(resp, "csrf_")
	if csrfTok == nil {
		t.Fatal("csrf cookie missing")
	}

	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	req.Header.Set("X-Csrf-Token", csrfTok.Value)
	req.AddCookie(sid)
	req.AddCookie(csrfTok)
	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("logout: want 204, got %d", resp.StatusCode)
	}
	resp, _ = a.send(t, "GET", "/api/auth/me", "", nil, sid)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("me after logout: want 401, got %d", resp.StatusCode)
	}
}

func TestBodySizeLimit(t *testing.T) {
	a := newTestApp(t)
	tok := a.login(t, ownerEmail)

	oversize := bytes.Repeat([]byte("A"), (1<<20)+10)
	req := httptest.NewRequest("POST", store+"/billboards", bytes.NewReader(oversize))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := a.app.Test(req, -1)
	// fasthttp may refuse the body before a response is written
	if err != nil {
		if strings.Contains(err.Error(), "body size exceeds") || strings.Contains(err.Error(), "too large") {
			return
		}
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for oversize, got %d", resp.StatusCode)
	}
}

func TestInternalErrorsStayInternal(t *testing.T) {
	a := newTestApp(t)
	_ = a.db.Close()

	var resp *http.Response
	var body string
	entries := captureLogs(t, func() {
		resp, body = a.send(t, "GET", store+"/billboards", "", nil)
	})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if body != "Something went wrong. Please try again." {
		t.Fatalf("friendly message missing; body=%s", body)
	}
	e := findLog(entries, "server.error")
	if e == nil || e.Err == "" {
		t.Fatalf("expected server.error with the cause logged")
	}
}
