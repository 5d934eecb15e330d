package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sushihentaime/blogapp/internal/blogservice"
	"github.com/sushihentaime/blogapp/internal/common"
	"github.com/sushihentaime/blogapp/internal/userservice"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

// newTestApplication wires the application against a migrated postgres container.
// Comment events are not published since no broker is configured.
func newTestApplication(t *testing.T) (*application, *sql.DB) {
	db := common.TestDB("file://../../migrations", t)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	cfg := &Config{
		Environment:  "testing",
		Version:      "1.0.0",
		LimiterRPS:   2,
		LimiterBurst: 4,
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(db, common.NewCache(5*time.Minute, 10*time.Minute)),
		blogService: blogservice.NewBlogService(db, nil, logger),
		limiters:    common.NewCache(time.Minute, time.Minute),
	}

	return app, db
}

func (ts *testServer) do(t *testing.T, method, path, token string, payload any) (int, http.Header, []byte) {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, responseBody
}

func (ts *testServer) post(t *testing.T, path, token string, payload any) (int, envelope) {
	status, _, body := ts.do(t, http.MethodPost, path, token, payload)
	return status, decodeEnvelope(t, body)
}

func (ts *testServer) get(t *testing.T, path, token string) (int, envelope) {
	status, _, body := ts.do(t, http.MethodGet, path, token, nil)
	return status, decodeEnvelope(t, body)
}

// blogs sends a request to an endpoint answering with a blog array.
func (ts *testServer) blogs(t *testing.T, method, path, token string, payload any) (int, []blogservice.Blog, envelope) {
	status, _, body := ts.do(t, method, path, token, payload)
	if status >= http.StatusBadRequest {
		return status, nil, decodeEnvelope(t, body)
	}

	var blogs []blogservice.Blog
	if err := json.Unmarshal(body, &blogs); err != nil {
		t.Fatalf("could not decode blogs %s: %v", body, err)
	}

	return status, blogs, nil
}

func decodeEnvelope(t *testing.T, body []byte) envelope {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("could not decode response %s: %v", body, err)
	}
	return env
}

func errorCode(env envelope) string {
	e, ok := env["error"].(map[string]any)
	if !ok {
		return ""
	}
	code, _ := e["code"].(string)
	return code
}

// registerAndLogin creates a user through the API and returns its id and access token.
func registerAndLogin(t *testing.T, ts *testServer, username string) (int, string) {
	password := "Test_1234!"

	status, env := ts.post(t, "/v1/users/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": password,
	})
	if status != http.StatusCreated {
		t.Fatalf("could not register %s: %d %v", username, status, env)
	}
	id := int(env["user"].(map[string]any)["id"].(float64))

	status, env = ts.post(t, "/v1/users/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("could not login %s: %d %v", username, status, env)
	}

	return id, env["token"].(map[string]any)["access_token"].(string)
}
