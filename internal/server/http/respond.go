package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/growthroad/internal/common"
)

// respondError maps a service sentinel error to an HTTP status and a short
// human-readable detail. Cross-tenant access surfaces as a plain 404; the
// caller can never tell "absent" from "not yours".
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
	case errors.Is(err, common.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"detail": "Email already exists"})
	case errors.Is(err, common.ErrDuplicateLabel):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Label name already exists"})
	case errors.Is(err, common.ErrLabelInUse):
		c.JSON(http.StatusConflict, gin.H{"detail": "Label is in use"})
	case errors.Is(err, common.ErrInvalidParent):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid parent task reference"})
	case errors.Is(err, common.ErrIDConflict):
		c.JSON(http.StatusConflict, gin.H{"detail": "Task id belongs to another project"})
	case errors.Is(err, common.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, common.ErrUnauthorized):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid email or password"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

func respondBadRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": detail})
}
