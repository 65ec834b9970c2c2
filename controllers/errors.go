package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aryaseta/resto-order-api/services"
	"github.com/aryaseta/resto-order-api/utils"
)

// respondServiceError memetakan taksonomi error service ke kode HTTP.
// Semuanya input error yang bisa diperbaiki caller; selain itu 500.
func respondServiceError(c *gin.Context, err error) {
	var (
		admission  *services.AdmissionDeniedError
		transition *services.InvalidTransitionError
		mismatch   *services.PriceMismatchError
		schedule   *services.ScheduleValidationError
	)

	switch {
	case errors.As(err, &admission):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.As(err, &transition):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.As(err, &mismatch):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.As(err, &schedule):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrMenuItemNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidGratuity),
		errors.Is(err, services.ErrDuplicateOrderItem),
		errors.Is(err, services.ErrMenuItemUnavailable),
		errors.Is(err, services.ErrEmptyCancelReason):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		// Termasuk pelanggaran CHECK constraint dari database: kalau sampai
		// kejadian berarti bug di layer service, bukan input user.
		utils.ErrorLogger.Errorf("internal error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
