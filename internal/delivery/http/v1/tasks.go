package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/service-catalog/internal/models"
)

const taskResource = "task"

type deletedTaskResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		h.abortWithError(c, taskResource, "", err)
		return
	}

	h.logger.Debug().
		Int("count", len(tasks)).
		Msg("listed tasks")
	c.JSON(http.StatusOK, tasks)
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req models.TaskInput
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
		h.logger.Warn().Msg("invalid task")
		abort(c, newValidationError(violations))
		return
	}

	task := req.Task()
	created, err := h.tasks.Create(c.Request.Context(), &task)
	if err != nil {
		h.abortWithError(c, taskResource, "", err)
		return
	}

	h.logger.Info().
		Str("task_id", created.ID).
		Msg("created task")
	c.JSON(http.StatusCreated, gin.H{
		"message": "task created successfully",
		"task":    created,
	})
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	id := c.Param("id")
	task, err := h.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, taskResource, id, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	id := c.Param("id")

	var req models.TaskPatch
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
			Str("task_id", id).
			Msg("invalid task update")
		abort(c, newValidationError(violations))
		return
	}

	updated, err := h.tasks.Update(c.Request.Context(), id, req)
	if err != nil {
		h.abortWithError(c, taskResource, id, err)
		return
	}

	h.logger.Info().
		Str("task_id", id).
		Msg("updated task")
	c.JSON(http.StatusOK, gin.H{
		"message": "task updated successfully",
		"task":    updated,
	})
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.tasks.Delete(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, taskResource, id, err)
		return
	}

	h.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	c.JSON(http.StatusOK, gin.H{
		"message": "task deleted successfully",
		"deletedTask": deletedTaskResponse{
			ID:    deleted.ID,
			Title: deleted.Title,
		},
	})
}
