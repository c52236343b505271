package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campus_tracker/internal/services"
)

// respondError maps a service failure to an HTTP status. Distinguishable
// kinds keep their message so clients (the driver app in particular) can
// decide whether to stop or retry; anything unrecognized is a 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidArgument),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrInvalidCredential):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrOwnershipConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrUnauthorized),
		errors.Is(err, services.ErrRoleMismatch):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrPendingApproval):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrStoreUnavailable):
		logrus.WithError(err).Error("store unavailable")
		status = http.StatusServiceUnavailable
	default:
		logrus.WithError(err).Error("unhandled service error")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
