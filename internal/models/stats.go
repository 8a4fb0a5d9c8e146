package models

import "time"

// PriceSummary holds price reductions over a set of services.
// All values are zero for an empty set.
type PriceSummary struct {
	Average float64
	Min     float64
	Max     float64
}

type Snapshot struct {
	Overview    OverviewStats `json:"overview"`
	Clients     ClientStats   `json:"clients"`
	Categories  CategoryStats `json:"categories"`
	Pricing     PricingStats  `json:"pricing"`
	LastUpdated time.Time     `json:"lastUpdated"`
}

type OverviewStats struct {
	TotalServices    int64 `json:"totalServices"`
	ActiveServices   int64 `json:"activeServices"`
	NewServices      int64 `json:"newServices"`
	PausedServices   int64 `json:"pausedServices"`
	InactiveServices int64 `json:"inactiveServices"`
}

type ClientStats struct {
	TotalClients int64 `json:"totalClients"`
}

type CategoryStats struct {
	TotalCategories int        `json:"totalCategories"`
	CategoryList    []Category `json:"categoryList"`
}

type PricingStats struct {
	AveragePrice float64 `json:"averagePrice"`
	MinPrice     float64 `json:"minPrice"`
	MaxPrice     float64 `json:"maxPrice"`
}
