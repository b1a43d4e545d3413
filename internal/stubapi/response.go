package stubapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:             http.StatusInternalServerError,
	domain.ErrOrderNotFound:        http.StatusNotFound,
	domain.ErrNotificationNotFound: http.StatusNotFound,
	domain.ErrBadRequest:           http.StatusBadRequest,

	domain.ErrInvalidCredentials:         http.StatusUnauthorized,
	domain.ErrUnauthorized:               http.StatusUnauthorized,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrExpiredToken:               http.StatusUnauthorized,
	domain.ErrForbidden:                  http.StatusForbidden,

	domain.ErrOrderNotEditable:    http.StatusUnprocessableEntity,
	domain.ErrOrderNotCancellable: http.StatusUnprocessableEntity,
	domain.ErrEmptyCancelReason:   http.StatusBadRequest,
}

// handleError sends an error response with the mapped status and a detail
// message the client can surface.
func handleError(ctx *gin.Context, err error) {
	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
	}
	ctx.JSON(statusCode, gin.H{"detail": err.Error()})
}

// handleAbort sends an error response and aborts the request.
func handleAbort(ctx *gin.Context, err error) {
	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
	}
	ctx.AbortWithStatusJSON(statusCode, gin.H{"detail": err.Error()})
}

func handleSuccess(ctx *gin.Context, data any) {
	if data != nil {
		ctx.JSON(http.StatusOK, data)
	} else {
		ctx.Status(http.StatusNoContent)
	}
}
