package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"teamshop/internal/auth"

	"github.com/gin-gonic/gin"
)

func setupAuthRouter(issuer *auth.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", AdminAuth(issuer), func(c *gin.Context) {
		c.JSON(200, gin.H{"code": 200})
	})
	r.GET("/distributor/ping", DistributorAuth(issuer), func(c *gin.Context) {
		c.JSON(200, gin.H{"code": 200, "id": GetSubjectID(c)})
	})
	return r
}

func appCode(t *testing.T, w *httptest.ResponseRecorder) float64 {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return body["code"].(float64)
}

func TestAdminAuthMissingToken(t *testing.T) {
	r := setupAuthRouter(auth.NewTokenIssuer("secret", 1))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	if appCode(t, w) != 401 {
		t.Fatal("expected 401 for missing token")
	}
}

func TestAdminAuthRejectsDistributorToken(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", 1)
	r := setupAuthRouter(issuer)

	token, err := issuer.Issue(7, auth.RoleDistributor)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if appCode(t, w) != 403 {
		t.Fatal("expected 403 for role mismatch")
	}
}

func TestDistributorAuthPassesAndExposesSubject(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", 1)
	r := setupAuthRouter(issuer)

	token, err := issuer.Issue(7, auth.RoleDistributor)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/distributor/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if appCode(t, w) != 200 {
		t.Fatalf("expected 200, got body %s", w.Body.String())
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["id"].(float64) != 7 {
		t.Fatalf("expected subject id 7, got %v", body["id"])
	}
}

func TestDistributorAuthInvalidToken(t *testing.T) {
	r := setupAuthRouter(auth.NewTokenIssuer("secret", 1))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/distributor/ping", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	if appCode(t, w) != 401 {
		t.Fatal("expected 401 for invalid token")
	}
}
