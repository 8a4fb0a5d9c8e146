package models

import (
	"time"
	"unicode"
	"unicode/utf8"
)

type Category string

const (
	CategoryDigital     Category = "Digital"
	CategorySocial      Category = "Social"
	CategoryContent     Category = "Contenido"
	CategoryDesign      Category = "Diseño"
	CategoryDevelopment Category = "Desarrollo"
	CategoryAnalytics   Category = "Análisis"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryDigital,
	CategorySocial,
	CategoryContent,
	CategoryDesign,
	CategoryDevelopment,
	CategoryAnalytics,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type ServiceStatus string

const (
	StatusActive   ServiceStatus = "Activo"
	StatusNew      ServiceStatus = "Nuevo"
	StatusPaused   ServiceStatus = "Pausado"
	StatusInactive ServiceStatus = "Inactivo"
)

var ServiceStatuses = []ServiceStatus{
	StatusActive,
	StatusNew,
	StatusPaused,
	StatusInactive,
}

func (s ServiceStatus) Valid() bool {
	for _, known := range ServiceStatuses {
		if s == known {
			return true
		}
	}
	return false
}

const (
	MaxServiceNameLength        = 100
	MaxServiceDurationLength    = 50
	MaxServiceDescriptionLength = 500
)

type Service struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Category    Category      `json:"category"`
	Price       float64       `json:"price"`
	Duration    string        `json:"duration"`
	Status      ServiceStatus `json:"status"`
	Description string        `json:"description"`
	Clients     int           `json:"clients"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ServiceInput is the payload accepted when creating a service.
// Status and Clients are optional and fall back to StatusNew and 0.
type ServiceInput struct {
	Name        *string  `json:"name" validate:"required,notblank,max=100"`
	Category    *string  `json:"category" validate:"required,oneof=Digital Social Contenido Diseño Desarrollo Análisis"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Duration    *string  `json:"duration" validate:"required,notblank,max=50"`
	Status      *string  `json:"status" validate:"omitnil,oneof=Activo Nuevo Pausado Inactivo"`
	Description *string  `json:"description" validate:"required,notblank,max=500"`
	Clients     *int     `json:"clients" validate:"omitnil,gte=0"`
}

// Service builds the record to be stored. It expects a validated input.
func (in ServiceInput) Service() Service {
	svc := Service{
		Status: StatusNew,
	}
	if in.Name != nil {
		svc.Name = CapitalizeFirst(*in.Name)
	}
	if in.Category != nil {
		svc.Category = Category(*in.Category)
	}
	if in.Price != nil {
		svc.Price = *in.Price
	}
	if in.Duration != nil {
		svc.Duration = *in.Duration
	}
	if in.Status != nil {
		svc.Status = ServiceStatus(*in.Status)
	}
	if in.Description != nil {
		svc.Description = *in.Description
	}
	if in.Clients != nil {
		svc.Clients = *in.Clients
	}
	return svc
}

// ServicePatch carries a partial update. A nil field was either omitted
// or sent as null and leaves the stored value untouched; any other value,
// including zero values, replaces it.
type ServicePatch struct {
	Name        *string  `json:"name" validate:"omitnil,notblank,max=100"`
	Category    *string  `json:"category" validate:"omitnil,oneof=Digital Social Contenido Diseño Desarrollo Análisis"`
	Price       *float64 `json:"price" validate:"omitnil,gte=0"`
	Duration    *string  `json:"duration" validate:"omitnil,notblank,max=50"`
	Status      *string  `json:"status" validate:"omitnil,oneof=Activo Nuevo Pausado Inactivo"`
	Description *string  `json:"description" validate:"omitnil,notblank,max=500"`
	Clients     *int     `json:"clients" validate:"omitnil,gte=0"`
}

func (p ServicePatch) Apply(svc *Service) {
	if p.Name != nil {
		svc.Name = CapitalizeFirst(*p.Name)
	}
	if p.Category != nil {
		svc.Category = Category(*p.Category)
	}
	if p.Price != nil {
		svc.Price = *p.Price
	}
	if p.Duration != nil {
		svc.Duration = *p.Duration
	}
	if p.Status != nil {
		svc.Status = ServiceStatus(*p.Status)
	}
	if p.Description != nil {
		svc.Description = *p.Description
	}
	if p.Clients != nil {
		svc.Clients = *p.Clients
	}
}

// CapitalizeFirst upper-cases the first character of s.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
