package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/service-catalog/internal/models"
	"github.com/adanyl0v/service-catalog/internal/services"
)

const serviceResource = "service"

type deletedServiceResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (h *handlerImpl) HandleListServices(c *gin.Context) {
	list, err := h.services.List(c.Request.Context())
	if err != nil {
		h.abortWithError(c, serviceResource, "", err)
		return
	}

	h.logger.Debug().
		Int("count", len(list)).
		Msg("listed services")
	c.JSON(http.StatusOK, list)
}

func (h *handlerImpl) HandleCreateService(c *gin.Context) {
	var req models.ServiceInput
	err := bindJSON(c, &req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	violations := h.validator.Struct(req)
	if len(violations) > 0 {
		h.logger.Warn().
			Int("violations", len(violations)).
			Msg("invalid service")
		abort(c, newValidationError(violations))
		return
	}

	service := req.Service()
	created, err := h.services.Create(c.Request.Context(), &service)
	if err != nil {
		h.abortWithError(c, serviceResource, "", err)
		return
	}

	h.logger.Info().
		Str("service_id", created.ID).
		Msg("created service")
	c.JSON(http.StatusCreated, gin.H{
		"message": "service created successfully",
		"service": created,
	})
}

func (h *handlerImpl) HandleGetService(c *gin.Context) {
	id := c.Param("id")
	service, err := h.services.GetByID(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, serviceResource, id, err)
		return
	}

	c.JSON(http.StatusOK, service)
}

func (h *handlerImpl) HandleUpdateService(c *gin.Context) {
	id := c.Param("id")

	var req models.ServicePatch
	err := bindJSON(c, &req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	violations := h.validator.Struct(req)
	if len(violations) > 0 {
		h.logger.Warn().
			Str("service_id", id).
			Int("violations", len(violations)).
			Msg("invalid service update")
		abort(c, newValidationError(violations))
		return
	}

	updated, err := h.services.Update(c.Request.Context(), id, req)
	if err != nil {
		h.abortWithError(c, serviceResource, id, err)
		return
	}

	h.logger.Info().
		Str("service_id", id).
		Msg("updated service")
	c.JSON(http.StatusOK, gin.H{
		"message": "service updated successfully",
		"service": updated,
	})
}

func (h *handlerImpl) HandleDeleteService(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.services.Delete(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, serviceResource, id, err)
		return
	}

	h.logger.Info().
		Str("service_id", id).
		Msg("deleted service")
	c.JSON(http.StatusOK, gin.H{
		"message": "service deleted successfully",
		"deletedService": deletedServiceResponse{
			ID:   deleted.ID,
			Name: deleted.Name,
		},
	})
}

func (h *handlerImpl) HandleListServicesByCategory(c *gin.Context) {
	category := c.Param("category")
	list, err := h.services.ListByCategory(c.Request.Context(), category)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCategory) {
			abort(c, newInvalidCategoryError(category))
			return
		}
		h.abortWithError(c, serviceResource, "", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"count":    len(list),
		"services": list,
	})
}

func (h *handlerImpl) HandleGetServiceStats(c *gin.Context) {
	snapshot, err := h.stats.Snapshot(c.Request.Context())
	if err != nil {
		h.abortWithError(c, serviceResource, "", err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
