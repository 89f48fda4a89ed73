package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dufaa.com/communitybackend/pkg/apperror"
	"dufaa.com/communitybackend/pkg/response"
	"dufaa.com/communitybackend/pkg/validator"
)

// bindJSON binds and validates the request body, writing the field-keyed
// validation response on failure.
func bindJSON(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		response.ResponseValidation(c, validator.FormatValidationError(err))
		return false
	}
	return true
}

// bindQuery binds and validates query parameters.
func bindQuery(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindQuery(target); err != nil {
		response.ResponseValidation(c, validator.FormatValidationError(err))
		return false
	}
	return true
}

// pathUUID parses a uuid path parameter, answering 400 on failure.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	return parseUUID(c, c.Param(name))
}

func parseUUID(c *gin.Context, value string) (uuid.UUID, bool) {
	id, err := uuid.Parse(value)
	if err != nil {
		response.ResponseError(c, apperror.New(400, "معرّف غير صالح", apperror.ErrInvalidInput))
		return uuid.Nil, false
	}
	return id, true
}
