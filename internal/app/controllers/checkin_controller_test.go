package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/models/dto"
	"github.com/minsu/dormisphere/internal/app/services"
	"github.com/minsu/dormisphere/internal/middleware"
	"github.com/minsu/dormisphere/internal/pkg/apperrors"
)

type stubCheckInService struct {
	scanErr     error
	scanned     *models.RoomCheckIn
	lastUserID  int64
	lastScanned string
}

func (s *stubCheckInService) GenerateCode(ctx context.Context) (string, error) {
	return "stub-code", nil
}

func (s *stubCheckInService) Scan(ctx context.Context, userID int64, code string) (*models.RoomCheckIn, error) {
	s.lastUserID = userID
	s.lastScanned = code
	if s.scanErr != nil {
		return nil, s.scanErr
	}
	return s.scanned, nil
}

func (s *stubCheckInService) ListCheckIns(ctx context.Context, caller services.Caller, targetUserID *int64, date string, limit int) ([]*models.RoomCheckIn, error) {
	return nil, nil
}

func newCheckInRouter(svc services.CheckInService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, int64(7))
		c.Set(middleware.ContextRole, string(models.RoleStudent))
	})
	controller := NewCheckInController(svc)
	router.POST("/roomcheckins", controller.ScanCheckIn)
	return router
}

func TestScanCheckInExpiredCodeEnvelope(t *testing.T) {
	stub := &stubCheckInService{scanErr: apperrors.ErrCheckInCodeExpired}
	router := newCheckInRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/roomcheckins", strings.NewReader(`{"code":"stale"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
	var envelope dto.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	if envelope.Success {
		t.Error("expected success=false")
	}
	if envelope.Error == nil || envelope.Error.Code != dto.ErrorCodeForbidden {
		t.Errorf("expected FORBIDDEN code, got %+v", envelope.Error)
	}
	if stub.lastUserID != 7 {
		t.Errorf("expected scan on behalf of user 7, got %d", stub.lastUserID)
	}
}

func TestScanCheckInMalformedBody(t *testing.T) {
	stub := &stubCheckInService{}
	router := newCheckInRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/roomcheckins", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing code, got %d", w.Code)
	}
	var envelope dto.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	if envelope.Error == nil || envelope.Error.Code != dto.ErrorCodeBadRequest {
		t.Errorf("expected BAD_REQUEST code, got %+v", envelope.Error)
	}
}
