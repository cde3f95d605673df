package handlers

import (
	"strconv"

	"food-ordering-api/apperror"
	"food-ordering-api/logger"
	"food-ordering-api/services"
	"food-ordering-api/validation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler serves every API route on top of the service layer.
type Handler struct {
	Orders    *services.OrderService
	Feedback  *services.FeedbackService
	Accounts  *services.AccountService
	Catalog   *services.CatalogService
	Dashboard *services.DashboardService
	Audit     *services.AuditLog
}

// respondError writes err with its mapped status. Store failures are logged
// with the request id and answered with a generic message.
func respondError(c *gin.Context, err error) {
	status := apperror.HTTPStatus(err)
	if status >= 500 {
		_ = c.Error(err)
		logger.From(c).WithFields(logrus.Fields{
			"action": "request_failed",
			"path":   c.FullPath(),
		}).WithError(err).Error("store failure")
	}
	c.JSON(status, apperror.ToResponse(err))
}

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, validation.Translate(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		respondError(c, validation.Translate(err))
		return false
	}
	return true
}

// paramID parses a positive numeric path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, apperror.Validation("invalid "+name, apperror.FieldError{
			Field: name, Rule: "numeric", Message: name + " must be a positive integer",
		}))
		return 0, false
	}
	return uint(id), true
}
