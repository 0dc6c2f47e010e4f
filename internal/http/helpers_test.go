package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"storeadmin/internal/config"
	"storeadmin/internal/events"
	"storeadmin/internal/http/handlers"
	"storeadmin/internal/repos"
)

const (
	ownerEmail = "owner@storeadmin.test"
	guestEmail = "guest@storeadmin.test"
	demoPass   = "Passw0rd!"
	store      = "/api/" + repos.DemoStoreID
)

type testApp struct {
	app    *fiber.App
	db     *sqlx.DB
	events *events.Recorder
}

// Full app on an in-memory database with the demo users and store seeded.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg := config.Config{
		DBDriver:    "sqlite",
		DBDSN:       ":memory:",
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
		CORSOrigins: "*",
		ServiceName: "storeadmin-test",
	}
	db, err := repos.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	rec := &events.Recorder{}
	deps := handlers.NewDeps(db, cfg, rec)
	return &testApp{app: handlers.NewApp(cfg, deps), db: db, events: rec}
}

// send performs a JSON request; token may be empty for anonymous calls.
func (a *testApp) send(t *testing.T, method, path, token string, body any, cookies ...*http.Cookie) (*http.Response, string) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	return resp, string(raw)
}

func (a *testApp) login(t *testing.T, email string) string {
	t.Helper()
	resp, body := a.send(t, "POST", "/api/auth/login", "", map[string]string{"email": email, "password": demoPass})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, resp.StatusCode, body)
	}
	var out struct {
		Token string `json:"token"`
	}
	decode(t, body, &out)
	if out.Token == "" {
		t.Fatalf("login %s returned no token", email)
	}
	return out.Token
}

// mustCreate posts to a store collection and returns the new id.
func (a *testApp) mustCreate(t *testing.T, token, resource string, body any) string {
	t.Helper()
	resp, raw := a.send(t, "POST", store+"/"+resource, token, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create %s: %d %s", resource, resp.StatusCode, raw)
	}
	var out struct {
		ID string `json:"id"`
	}
	decode(t, raw, &out)
	return out.ID
}

func decode(t *testing.T, body string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(body), v); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
}

func cookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	UserID string         `json:"user_id"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

// captureLogs collects the JSON lines written through the standard logger
// while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) *logEntry {
	for i := range entries {
		if entries[i].Action == action {
			return &entries[i]
		}
	}
	return nil
}

var (
	billboard = map[string]any{"label": "Summer", "imageUrl": "https://img.example.com/summer.png"}
	size      = map[string]any{"name": "Large", "value": "L"}
	color     = map[string]any{"name": "Black", "value": "#000000"}
)

type catalogIDs struct {
	billboard, category, size, color string
}

func (a *testApp) seedCatalog(t *testing.T, token string) catalogIDs {
	t.Helper()
	var ids catalogIDs
	ids.billboard = a.mustCreate(t, token, "billboards", billboard)
	ids.category = a.mustCreate(t, token, "categories", map[string]any{"name": "Shirts", "billboardId": ids.billboard})
	ids.size = a.mustCreate(t, token, "sizes", size)
	ids.color = a.mustCreate(t, token, "colors", color)
	return ids
}

func productBody(ids catalogIDs, price string, images ...string) map[string]any {
	imgs := make([]map[string]string, 0, len(images))
	for _, u := range images {
		imgs = append(imgs, map[string]string{"url": u})
	}
	return map[string]any{
		"name": "Tee", "description": "Cotton tee", "price": price, "availableQty": 5,
		"categoryId": ids.category, "sizeId": ids.size, "colorId": ids.color,
		"images": imgs,
	}
}
