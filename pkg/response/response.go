package response

import (
	"errors"
	"log"
	"net/http"

	"dufaa.com/communitybackend/pkg/apperror"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ResponseError writes the standardized error envelope.
// Internal errors are logged with full detail and surfaced opaquely.
func ResponseError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = apperror.NotFound("العنصر المطلوب غير موجود")
	}

	code := apperror.MapErrorToStatus(err)
	message := err.Error()

	if code == http.StatusInternalServerError {
		log.Printf("[internal error] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "حدث خطأ غير متوقع، حاول مرة أخرى لاحقًا"
	}

	c.JSON(code, gin.H{
		"error": message,
		"code":  apperror.MapErrorToCode(err),
	})
}

// ResponseValidation writes a field-keyed validation error list (400).
func ResponseValidation(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "بيانات غير صالحة",
		"code":   "BAD_REQUEST",
		"fields": fields,
	})
}
