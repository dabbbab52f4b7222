package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIBind {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIBind)
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_CRUDRoundTrips(t *testing.T) {
	t.Parallel()

	var gotCreateBody Draft
	var gotUpdateBody Draft
	var gotContentType string
	var gotUserAgent string
	var deleted bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/users":
			_ = json.NewEncoder(w).Encode([]User{{ID: 1, Name: "Ada", Email: "ada@x.com"}})
		case r.Method == http.MethodGet && r.URL.Path == "/api/users/1":
			_ = json.NewEncoder(w).Encode(User{ID: 1, Name: "Ada", Email: "ada@x.com"})
		case r.Method == http.MethodPost && r.URL.Path == "/api/users":
			gotContentType = r.Header.Get("Content-Type")
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &gotCreateBody)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(User{ID: 2, Name: gotCreateBody.Name, Email: gotCreateBody.Email})
		case r.Method == http.MethodPut && r.URL.Path == "/api/users/2":
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &gotUpdateBody)
			_ = json.NewEncoder(w).Encode(User{ID: 2, Name: gotUpdateBody.Name, Email: gotUpdateBody.Email})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/users/2":
			deleted = true
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	users, err := c.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 1 || users[0].ID != 1 || users[0].Name != "Ada" {
		t.Fatalf("ListUsers = %#v, want 1 user id=1 name=Ada", users)
	}

	one, err := c.GetUser(ctx, 1)
	if err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}
	if one.Email != "ada@x.com" {
		t.Fatalf("GetUser email = %q, want ada@x.com", one.Email)
	}

	created, err := c.CreateUser(ctx, Draft{Name: "Bob", Email: "b@x.com"})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if created.ID != 2 || created.Name != "Bob" {
		t.Fatalf("CreateUser = %#v, want id=2 name=Bob", created)
	}
	if gotCreateBody.Email != "b@x.com" {
		t.Fatalf("create body = %#v, want email b@x.com", gotCreateBody)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotContentType)
	}

	updated, err := c.UpdateUser(ctx, 2, Draft{Name: "Bobby", Email: "b@x.com"})
	if err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}
	if updated.Name != "Bobby" {
		t.Fatalf("UpdateUser name = %q, want Bobby", updated.Name)
	}
	if gotUpdateBody.Name != "Bobby" {
		t.Fatalf("update body = %#v, want name Bobby", gotUpdateBody)
	}

	if err := c.DeleteUser(ctx, 2); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}
	if !deleted {
		t.Fatal("DeleteUser did not reach the server")
	}

	if gotUserAgent == "" || !strings.HasPrefix(gotUserAgent, "roster/") {
		t.Fatalf("User-Agent = %q, want roster/*", gotUserAgent)
	}
}

func TestClient_NotFoundWrapsSentinel(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "user not found"}`, http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.GetUser(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetUser error = %v, want ErrNotFound", err)
	}

	_, err = c.UpdateUser(context.Background(), 99, Draft{Name: "x", Email: "x@x.com"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateUser error = %v, want ErrNotFound", err)
	}

	if err := c.DeleteUser(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeleteUser error = %v, want ErrNotFound", err)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/api/users/1":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.ListUsers(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("ListUsers error = %v, want decode response error", err)
	}

	_, err = c.GetUser(context.Background(), 1)
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("GetUser error = %v, want status 500 error", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("GetUser error = %v, should not match ErrNotFound", err)
	}
}
