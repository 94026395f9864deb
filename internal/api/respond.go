package api

import (
	"errors"
	"net/http"
	"strconv"

	"gigpay/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps the domain error taxonomy onto HTTP status codes. Ledger
// invariant violations and unknown errors are logged and returned as a
// generic internal error so a half-applied money state never looks like a
// partial success.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, domain.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "Operation not valid for current status"})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	case errors.Is(err, domain.ErrDuplicateApplication):
		c.JSON(http.StatusConflict, gin.H{"error": "Already applied to this job"})
	case errors.Is(err, domain.ErrAlreadyRated):
		c.JSON(http.StatusConflict, gin.H{"error": "Already rated"})
	default:
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(),
			"error": err.Error(),
		}).Error("Internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// callerID returns the authenticated user id placed in the context by the
// JWT middleware.
func callerID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return v.(uint), true
}

// parseAmount parses a positive decimal query value.
func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context) (uint, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(v), true
}
