package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"judoacademy.app/hub/pkg/apperror"
	"judoacademy.app/hub/pkg/response"
	validatorpkg "judoacademy.app/hub/pkg/validator"
)

// respondServiceError translates backend errors for the caller. Missing rows
// become 404s; everything else passes through the standard mapping.
func respondServiceError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, apperror.ErrNotFound)
		return
	}
	response.Error(c, err)
}

func formatValidationError(err error) string {
	return validatorpkg.FormatValidationError(err)
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.New(0, "invalid id", apperror.ErrBadRequest)
	}
	return id, nil
}
