package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/models/dto"
	"github.com/minsu/dormisphere/internal/pkg/auth"
)

func newTestRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	mw := NewAuthMiddleware(jwtService)
	protected := router.Group("/protected")
	protected.Use(mw.JWTAuth())
	protected.GET("", func(c *gin.Context) {
		userID, _ := c.Get(ContextUserID)
		role, _ := c.Get(ContextRole)
		c.JSON(http.StatusOK, gin.H{"userID": userID, "role": role})
	})

	staff := protected.Group("/staff")
	staff.Use(mw.RoleRequired(string(models.RoleTeacher)))
	staff.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router
}

func newTestJWTService(exp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "middleware-test-secret",
		TokenExp:    exp,
		TokenIssuer: "dormisphere.test",
	})
}

func decodeEnvelope(t *testing.T, body []byte) dto.APIResponse {
	t.Helper()
	var envelope dto.APIResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return envelope
}

func TestJWTAuthMissingToken(t *testing.T) {
	router := newTestRouter(newTestJWTService(time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	envelope := decodeEnvelope(t, w.Body.Bytes())
	if envelope.Success {
		t.Error("expected success=false")
	}
	if envelope.Error == nil || envelope.Error.Code != dto.ErrorCodeUnauthorized {
		t.Errorf("expected UNAUTHORIZED code, got %+v", envelope.Error)
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	router := newTestRouter(newTestJWTService(time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "garbage"})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for present-but-invalid token, got %d", w.Code)
	}
	envelope := decodeEnvelope(t, w.Body.Bytes())
	if envelope.Error == nil || envelope.Error.Code != dto.ErrorCodeForbidden {
		t.Errorf("expected FORBIDDEN code, got %+v", envelope.Error)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	expired := newTestJWTService(-time.Minute)
	token, err := expired.GenerateToken(&models.User{ID: 1, RoleType: models.RoleStudent})
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	router := newTestRouter(newTestJWTService(time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for expired token, got %d", w.Code)
	}
}

func TestJWTAuthValidCookie(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	token, err := jwtService.GenerateToken(&models.User{ID: 5, RoleType: models.RoleStudent, StuNum: "2304"})
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	router := newTestRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestJWTAuthBearerFallback(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	token, err := jwtService.GenerateToken(&models.User{ID: 5, RoleType: models.RoleStudent})
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	router := newTestRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 via Authorization header, got %d", w.Code)
	}
}

func TestRoleRequired(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := newTestRouter(jwtService)

	studentToken, err := jwtService.GenerateToken(&models.User{ID: 5, RoleType: models.RoleStudent})
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	teacherToken, err := jwtService.GenerateToken(&models.User{ID: 9, RoleType: models.RoleTeacher})
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected/staff", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: studentToken})
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for student on staff route, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected/staff", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: teacherToken})
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for teacher on staff route, got %d", w.Code)
	}
}
