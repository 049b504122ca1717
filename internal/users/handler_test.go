package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := newTestService(t)
	handler := NewHandler(svc)

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterPublicRoutes(api)

	// Stand-in for the auth middleware.
	protected := api.Group("")
	protected.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("userId", id)
		}
		c.Next()
	})
	handler.RegisterRoutes(protected)
	return router, svc
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestSignupLoginMeFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/signup", gin.H{
		"email":    "Ada@Example.com",
		"password": "password123",
		"name":     "Ada",
	}, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("signup status %d, body %s", resp.Code, resp.Body.String())
	}
	var signupBody struct {
		Success bool `json:"success"`
		User    User `json:"user"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &signupBody); err != nil {
		t.Fatalf("decode signup: %v", err)
	}
	if !signupBody.Success || signupBody.User.ID == "" {
		t.Fatalf("unexpected signup body %+v", signupBody)
	}
	if signupBody.User.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %q", signupBody.User.Email)
	}

	resp = doJSON(t, router, http.MethodPost, "/api/v1/login", gin.H{
		"email":    "ada@example.com",
		"password": "password123",
	}, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("login status %d, body %s", resp.Code, resp.Body.String())
	}
	var loginBody struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		User    User   `json:"user"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &loginBody); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if loginBody.Token == "" || loginBody.User.ID != signupBody.User.ID {
		t.Fatalf("unexpected login body %+v", loginBody)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/me", nil, map[string]string{
		"X-Test-User": signupBody.User.ID,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("me status %d, body %s", resp.Code, resp.Body.String())
	}
	var meBody struct {
		Success bool `json:"success"`
		User    User `json:"user"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &meBody); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if meBody.User.ID != signupBody.User.ID || meBody.User.Name != "Ada" {
		t.Fatalf("unexpected me body %+v", meBody)
	}
}

func TestSignupValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := []gin.H{
		{"email": "", "password": "password123"},
		{"email": "a@b.c", "password": ""},
		{"email": "a@b.c", "password": "short"},
	}
	for i, body := range cases {
		resp := doJSON(t, router, http.MethodPost, "/api/v1/signup", body, nil)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("case %d: status %d", i, resp.Code)
		}
	}
}

func TestSignupConflict(t *testing.T) {
	router, _ := newTestRouter(t)

	body := gin.H{"email": "a@b.c", "password": "password123"}
	if resp := doJSON(t, router, http.MethodPost, "/api/v1/signup", body, nil); resp.Code != http.StatusCreated {
		t.Fatalf("first signup status %d", resp.Code)
	}
	resp := doJSON(t, router, http.MethodPost, "/api/v1/signup", body, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate signup status %d, body %s", resp.Code, resp.Body.String())
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/login", gin.H{
		"email":    "nobody@b.c",
		"password": "whatever",
	}, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, body %s", resp.Code, resp.Body.String())
	}
}
