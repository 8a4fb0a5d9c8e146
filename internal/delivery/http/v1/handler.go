package v1

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/service-catalog/internal/services"
	"github.com/adanyl0v/service-catalog/internal/validation"
)

type Handler interface {
	HandleListServices(c *gin.Context)
	HandleCreateService(c *gin.Context)
	HandleGetService(c *gin.Context)
	HandleUpdateService(c *gin.Context)
	HandleDeleteService(c *gin.Context)
	HandleListServicesByCategory(c *gin.Context)
	HandleGetServiceStats(c *gin.Context)

	HandleListTasks(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleHealth(c *gin.Context)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Params struct {
	Logger    zerolog.Logger
	Validator *validation.Validator
	Services  services.ServiceRepository
	Tasks     services.TaskRepository
	Stats     services.StatsService
	Store     Pinger
	// ExposeErrors adds internal error details to 500 responses.
	ExposeErrors bool
}

type handlerImpl struct {
	logger       zerolog.Logger
	validator    *validation.Validator
	services     services.ServiceRepository
	tasks        services.TaskRepository
	stats        services.StatsService
	store        Pinger
	exposeErrors bool
}

func New(params Params) Handler {
	v := params.Validator
	if v == nil {
		v = validation.New()
	}
	return &handlerImpl{
		logger:       params.Logger,
		validator:    v,
		services:     params.Services,
		tasks:        params.Tasks,
		stats:        params.Stats,
		store:        params.Store,
		exposeErrors: params.ExposeErrors,
	}
}

// RegisterRoutes mounts the resource routes on the given router.
func RegisterRoutes(router gin.IRouter, h Handler) {
	servicesRouter := router.Group("/services")
	servicesRouter.GET("", h.HandleListServices)
	servicesRouter.POST("", h.HandleCreateService)
	servicesRouter.GET("/stats", h.HandleGetServiceStats)
	servicesRouter.GET("/category/:category", h.HandleListServicesByCategory)
	servicesRouter.GET("/:id", h.HandleGetService)
	servicesRouter.PUT("/:id", h.HandleUpdateService)
	servicesRouter.DELETE("/:id", h.HandleDeleteService)

	tasksRouter := router.Group("/tasks")
	tasksRouter.GET("", h.HandleListTasks)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.GET("/:id", h.HandleGetTask)
	tasksRouter.PUT("/:id", h.HandleUpdateTask)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)
}
