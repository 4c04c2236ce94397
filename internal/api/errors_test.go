package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"padeltour/internal/apperrors"

	"github.com/gin-gonic/gin"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", apperrors.New(apperrors.InvalidInput, "bad"), http.StatusBadRequest},
		{"invalid roster", apperrors.New(apperrors.InvalidRoster, "n not divisible by 4"), http.StatusBadRequest},
		{"invalid score", apperrors.New(apperrors.InvalidScore, "negative score"), http.StatusBadRequest},
		{"not found", apperrors.New(apperrors.NotFound, "tournament not found"), http.StatusNotFound},
		{"wrong status", apperrors.New(apperrors.WrongStatus, "must be pending"), http.StatusConflict},
		{"already recorded", apperrors.New(apperrors.AlreadyRecorded, "podium already applied"), http.StatusConflict},
		{"conflict", apperrors.New(apperrors.Conflict, "concurrent update"), http.StatusConflict},
		{"authorization failed", apperrors.New(apperrors.AuthorizationFailed, "not the organizer"), http.StatusForbidden},
		{"transient store", apperrors.New(apperrors.TransientStore, "deadlock"), http.StatusServiceUnavailable},
		{"fatal store", apperrors.New(apperrors.FatalStore, "disk full"), http.StatusInternalServerError},
		{"deadline exceeded", apperrors.New(apperrors.DeadlineExceeded, "context deadline"), http.StatusGatewayTimeout},
		{"cancelled", apperrors.New(apperrors.Cancelled, "context cancelled"), http.StatusRequestTimeout},
		{"unclassified error defaults to 500", errors.New("unexpected"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Fatalf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRespondError_WritesJSONBodyAndStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, apperrors.New(apperrors.NotFound, "tournament not found"))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] == "" {
		t.Fatalf("expected non-empty error message in body, got %v", body)
	}
}
