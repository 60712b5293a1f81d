package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the envelope of every failed request.
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Error     ErrorDetail `json:"error"`
	Timestamp string      `json:"timestamp"`
	Path      string      `json:"path"`
	Method    string      `json:"method"`
}

// ErrorDetail carries the machine-readable code and a hint for the caller.
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Hint    string      `json:"hint,omitempty"`
}

// Error codes carried in ErrorDetail.Code.
const (
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeInvalidPeriod  = "INVALID_PERIOD"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeLotNotFound    = "LOT_NOT_FOUND"
	ErrCodeDatabaseError  = "DATABASE_ERROR"
	ErrCodeInternalServer = "INTERNAL_SERVER_ERROR"
)

// RespondWithError writes the standard error envelope.
func RespondWithError(c *gin.Context, statusCode int, errorCode, message string, details interface{}, hint string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    errorCode,
			Message: message,
			Details: details,
			Hint:    hint,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request.URL.Path,
		Method:    c.Request.Method,
	})
}

// InvalidPeriod - 400
func InvalidPeriod(c *gin.Context, value string) {
	RespondWithError(c, http.StatusBadRequest, ErrCodeInvalidPeriod,
		"Período no válido",
		gin.H{"periodo": value},
		"Use diario, semanal or mensual (daily, weekly, monthly)")
}

// BadRequest - 400
func BadRequest(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, ErrCodeBadRequest, message, details,
		"Check the request parameters")
}

// NotFound - 404
func NotFound(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusNotFound, ErrCodeNotFound, message, details, "")
}

// LotNotFound - 404 for lots without active records.
func LotNotFound(c *gin.Context, lotID int64) {
	RespondWithError(c, http.StatusNotFound, ErrCodeLotNotFound,
		"No se encontraron datos para el lote especificado.",
		gin.H{"id_lote": lotID},
		"Verify the lot id and that it has active records")
}

// Unauthorized - 401
func Unauthorized(c *gin.Context, message string) {
	RespondWithError(c, http.StatusUnauthorized, ErrCodeUnauthorized, message, nil,
		"Send a valid bearer token")
}

// Forbidden - 403
func Forbidden(c *gin.Context, role string) {
	RespondWithError(c, http.StatusForbidden, ErrCodeForbidden, "role not allowed",
		gin.H{"role": role}, "")
}

// DatabaseError - 500 for store failures.
func DatabaseError(c *gin.Context, operation string, err error) {
	RespondWithError(c, http.StatusInternalServerError, ErrCodeDatabaseError,
		"Error de base de datos",
		gin.H{
			"operation": operation,
			"error":     err.Error(),
		},
		"Check database connectivity")
}
