package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"weather-location-api/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const errInternal = "internal server error"

// respondError writes err as {"error": message} with the status of its apperr kind.
// Errors without a kind are logged and reported as internal server errors.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	if e, ok := apperr.As(err); ok && e.Kind != apperr.KindUnknown && e.Kind != apperr.KindInternal {
		if e.Kind == apperr.KindUnavailable {
			log.Error().Err(err).Str("path", c.FullPath()).Msg("upstream unavailable")
		}
		c.JSON(e.HTTPStatus(), gin.H{"error": e.Message})
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": errInternal})
}

// bindJSON decodes the request body into obj, answering 400 when it is malformed or invalid.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].Field()
		if verrs[0].Tag() == "required" {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("missing required field '%s'", field)})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid value for field '%s'", field)})
		}
		return false
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
	return false
}

var registerFieldNames sync.Once

// useJSONFieldNames makes validation errors name fields as they appear in request bodies.
func useJSONFieldNames() {
	registerFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
