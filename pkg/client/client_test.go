package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/heart-api/pkg/citation"
	"github.com/oksasatya/heart-api/pkg/client/store"
)

func envelope(w http.ResponseWriter, status int, message string, data any, extra map[string]any) {
	body := map[string]any{
		"status":     status,
		"timestamp":  time.Now(),
		"request_id": "rid",
		"success":    status < 300,
		"message":    message,
	}
	if data != nil {
		body["data"] = data
	}
	for k, v := range extra {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestLoginStoresSessionAndSendsToken(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@x.io", req["email"])
		envelope(w, http.StatusOK, "Login successful", map[string]any{
			"user":  map[string]any{"id": "u-1", "email": "a@x.io", "createdAt": time.Now()},
			"token": "tok-1",
		}, nil)
	})
	mux.HandleFunc("/api/topics", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		envelope(w, http.StatusOK, "", map[string]any{"topics": []map[string]any{
			{"id": "t-1", "name": "Cardio", "status": "active", "total_entries": 2},
		}}, nil)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "session.json")
	c := New(srv.URL+"/", store.NewSession(path))
	u, err := c.Login(context.Background(), "a@x.io", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)

	saved, err := store.LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", saved.Token())

	topics, err := c.ListTopics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	require.Len(t, topics, 1)
	assert.EqualValues(t, 2, topics[0].TotalEntries)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusUnauthorized, "Token expired. Please login again.", nil, nil)
	}))
	defer srv.Close()

	sess := store.NewSession("")
	require.NoError(t, sess.Set(store.User{ID: "u"}, "stale"))
	c := New(srv.URL, sess)

	_, err := c.ListDrafts(context.Background())
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, "Token expired. Please login again.", err.Error())
	assert.False(t, sess.LoggedIn())
}

func TestValidationErrorFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusBadRequest, "Validation failed", nil, map[string]any{
			"errors": []map[string]string{{"field": "password", "message": "Password must be at least 6 characters long"}},
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Signup(context.Background(), "a@x.io", "12345", "12345")
	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	require.Len(t, ae.Fields, 1)
	assert.Equal(t, "password", ae.Fields[0].Field)
	assert.Contains(t, err.Error(), "password: Password must be at least 6 characters long")
}

func TestToolsAndDrafts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tools/rewrite", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		envelope(w, http.StatusOK, "", map[string]any{"originalText": req["text"], "rewrittenText": "better " + req["text"], "model": "m"}, nil)
	})
	mux.HandleFunc("/api/tools/citations", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			References []citation.Reference `json:"references"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		envelope(w, http.StatusOK, "", map[string]any{"citations": citation.FormatVancouver(req.References)}, nil)
	})
	mux.HandleFunc("/api/drafts/d-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		_, hasTitle := req["title"]
		assert.False(t, hasTitle)
		envelope(w, http.StatusOK, "Draft updated successfully", map[string]any{"draft": map[string]any{
			"id": "d-1", "originalContent": req["originalContent"], "status": "draft",
		}}, nil)
	})
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "heart", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("size"))
		envelope(w, http.StatusOK, "", map[string]any{"results": []map[string]any{{"id": "d-1", "kind": "draft"}}, "count": 1}, nil)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	c := New(srv.URL, nil)
	ctx := context.Background()

	rw, err := c.Rewrite(ctx, "text", "academic")
	require.NoError(t, err)
	assert.Equal(t, "better text", rw.RewrittenText)

	cites, err := c.FormatCitations(ctx, []citation.Reference{{Authors: "Smith J", Title: "Heart", Year: "2020"}})
	require.NoError(t, err)
	require.Len(t, cites, 1)
	assert.Equal(t, 1, cites[0].Number)

	text := "updated"
	d, err := c.UpdateDraft(ctx, "d-1", DraftInput{OriginalContent: &text})
	require.NoError(t, err)
	assert.Equal(t, "updated", d.OriginalContent)

	docs, err := c.Search(ctx, "heart", 5)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "draft", docs[0].Kind)
}

func TestLogoutClearsEvenOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusInternalServerError, "boom", nil, nil)
	}))
	defer srv.Close()

	sess := store.NewSession("")
	require.NoError(t, sess.Set(store.User{ID: "u"}, "tok"))
	err := New(srv.URL, sess).Logout(context.Background())
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
	assert.False(t, sess.LoggedIn())
}
