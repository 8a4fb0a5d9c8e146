package v1

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/service-catalog/internal/models"
	"github.com/adanyl0v/service-catalog/internal/services"
	"github.com/adanyl0v/service-catalog/internal/validation"
)

var (
	errInvalidRequestBody = errors.New("invalid request body")
	errTrailingData       = errors.New("unexpected data after json body")
)

// bindJSON decodes exactly one JSON value from the request body.
// Anything but whitespace after it is rejected.
func bindJSON(c *gin.Context, obj any) error {
	dec := json.NewDecoder(c.Request.Body)
	if err := dec.Decode(obj); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

type apiError struct {
	Code    int
	Message string
	Details gin.H
}

func newAPIError(code int, message string, details gin.H) apiError {
	return apiError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	body := gin.H{"message": err.Message}
	for k, v := range err.Details {
		body[k] = v
	}
	c.AbortWithStatusJSON(err.Code, body)
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message, nil)
}

func newValidationError(violations []validation.FieldViolation) apiError {
	return newAPIError(http.StatusBadRequest, "validation failed", gin.H{
		"errors": validation.Messages(violations),
	})
}

func newNotFoundError(resource, id string) apiError {
	return newAPIError(http.StatusNotFound, resource+" not found", gin.H{"id": id})
}

func newInvalidIDError(resource, id string) apiError {
	return newAPIError(http.StatusBadRequest, "invalid "+resource+" id", gin.H{"id": id})
}

func newInvalidCategoryError(received string) apiError {
	return newAPIError(http.StatusBadRequest, "invalid category", gin.H{
		"validCategories": models.Categories,
		"received":        received,
	})
}

func (h *handlerImpl) newInternalError(err error) apiError {
	details := gin.H{}
	if h.exposeErrors {
		details["error"] = err.Error()
	}
	return newAPIError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), details)
}

// abortWithError maps a repository error to its response.
func (h *handlerImpl) abortWithError(c *gin.Context, resource, id string, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		abort(c, newValidationError(validationErr.Violations))
	case errors.Is(err, services.ErrInvalidID):
		abort(c, newInvalidIDError(resource, id))
	case errors.Is(err, services.ErrNotFound):
		abort(c, newNotFoundError(resource, id))
	default:
		h.logger.Error().
			Err(err).
			Str("resource", resource).
			Msg("unexpected failure")
		abort(c, h.newInternalError(err))
	}
}
