package controllers

import (
	"errors"
	"net/http"

	"github.com/EquipHub/EquipHub-Backend/src/apperrors"
	"github.com/EquipHub/EquipHub-Backend/src/dtos"
	"github.com/gin-gonic/gin"
)

func respondSuccess(ctx *gin.Context, code int, message string, data interface{}) {
	ctx.JSON(code, gin.H{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func respondPage(ctx *gin.Context, message string, data interface{}, pagination dtos.Pagination) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"message":    message,
		"data":       data,
		"pagination": pagination,
	})
}

// respondError maps a service error onto its HTTP status code and the uniform
// error envelope. Unknown errors become an opaque 500.
func respondError(ctx *gin.Context, err error) {
	code := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInsufficientInventory),
		errors.Is(err, apperrors.ErrAlreadyReturned),
		errors.Is(err, apperrors.ErrInvalidTransition):
		code = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, apperrors.ErrConflict):
		code = http.StatusConflict
	default:
		message = "Internal server error"
	}

	ctx.JSON(code, gin.H{
		"status":  "error",
		"message": message,
		"data":    nil,
	})
}
