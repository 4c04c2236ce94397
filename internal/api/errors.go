// internal/api/errors.go
// Translates the apperrors taxonomy into HTTP status codes, so handlers
// don't each repeat a chain of err == services.ErrX comparisons.

package api

import (
	"net/http"

	"padeltour/internal/apperrors"

	"github.com/gin-gonic/gin"
)

var statusByKind = map[apperrors.Kind]int{
	apperrors.InvalidInput:        http.StatusBadRequest,
	apperrors.NotFound:            http.StatusNotFound,
	apperrors.WrongStatus:         http.StatusConflict,
	apperrors.AlreadyRecorded:     http.StatusConflict,
	apperrors.InvalidRoster:       http.StatusBadRequest,
	apperrors.InvalidScore:        http.StatusBadRequest,
	apperrors.AuthorizationFailed: http.StatusForbidden,
	apperrors.Conflict:            http.StatusConflict,
	apperrors.TransientStore:      http.StatusServiceUnavailable,
	apperrors.FatalStore:          http.StatusInternalServerError,
	apperrors.DeadlineExceeded:    http.StatusGatewayTimeout,
	apperrors.Cancelled:           http.StatusRequestTimeout,
}

// statusFor maps err to the HTTP status its apperrors.Kind represents,
// defaulting to 500 for anything that escaped the taxonomy.
func statusFor(err error) int {
	if status, ok := statusByKind[apperrors.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError writes a JSON error body with the status derived from err's Kind.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
