package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"riddle-rush/internal/auth"
	"riddle-rush/internal/config"
	"riddle-rush/internal/db"
)

var testBase = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

const testPassword = "password"

// newTestServer runs the server against the in-memory store with a synthetic
// clock. Advance time by assigning through the returned pointer.
func newTestServer(t *testing.T) (*Server, *httptest.Server, *time.Time) {
	t.Helper()
	srv := New(nil, config.Default())
	now := testBase
	srv.clock = func() time.Time { return now }
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return srv, ts, &now
}

func seedUser(t *testing.T, srv *Server, username string) {
	t.Helper()
	hash, salt, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &db.User{Username: username, Hash: hash, Salt: salt}
	if err := srv.store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func decodeBool(t *testing.T, resp *http.Response) bool {
	t.Helper()
	defer resp.Body.Close()
	var value bool
	if err := json.NewDecoder(resp.Body).Decode(&value); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return value
}

func decodeInto(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func login(t *testing.T, client *http.Client, baseURL, username string) {
	t.Helper()
	resp := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/users/login", map[string]string{
		"username": username,
		"password": testPassword,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: expected status %d, got %d", username, http.StatusOK, resp.StatusCode)
	}
}

func createRiddle(t *testing.T, client *http.Client, baseURL string, duration int) uint {
	t.Helper()
	resp := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/riddles", map[string]any{
		"question":   "What is the capital of France?",
		"response":   "paris",
		"difficulty": "average",
		"duration":   duration,
		"firstHint":  "It is in Europe",
		"secondHint": "City of lights",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create riddle: expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeMap(t, resp)
	id, ok := body["id"].(float64)
	if !ok || id < 1 {
		t.Fatalf("expected riddle id, got %v", body)
	}
	return uint(id)
}
