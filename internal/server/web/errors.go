package web

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/nutriai/internal/common"
	"github.com/gin-gonic/gin"
)

// User-facing messages. Provider internals never reach the browser.
const (
	msgLoginRequired = "please log in to access this page"
	msgLoginFailed   = "login failed or token verification issue occurred"
	msgInternal      = "internal error"
)

// respondError maps the error taxonomy to a status and a message.
func respondError(c *gin.Context, err error) {
	var ve *common.ValidationError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, common.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgLoginRequired})
	case errors.Is(err, common.ErrAuthExchange), errors.Is(err, common.ErrAuthTokenInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgLoginFailed})
	case errors.Is(err, common.ErrGeneration):
		c.JSON(http.StatusBadGateway, gin.H{"error": "an error occurred: " + err.Error()})
	case errors.Is(err, common.ErrChat):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	}
}
