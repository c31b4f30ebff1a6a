package handler

import "github.com/mithaighar/sweetshop-api/internal/core/domain"

type addSweetRequest struct {
	Name     string   `json:"name"     validate:"required"`
	Category string   `json:"category" validate:"required,oneof=Laddu Barfi Jalebi Other"`
	Price    *float64 `json:"price"    validate:"required,gt=0"`
	Quantity *int     `json:"quantity" validate:"required,gte=0"`
}

// updateSweetRequest validates any subset of the item fields with the same
// per-field rules as addSweetRequest; absent fields are left unchanged.
type updateSweetRequest struct {
	Name     *string  `json:"name"     validate:"omitempty,min=1"`
	Category *string  `json:"category" validate:"omitempty,oneof=Laddu Barfi Jalebi Other"`
	Price    *float64 `json:"price"    validate:"omitempty,gt=0"`
	Quantity *int     `json:"quantity" validate:"omitempty,gte=0"`
}

// quantityRequest carries the purchase/restock amount. Positivity is checked
// by the service so a zero or negative quantity fails before any store access.
type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type stockResponse struct {
	Message string        `json:"message"`
	Sweet   *domain.Sweet `json:"sweet"`
}

type messageResponse struct {
	Message string `json:"message"`
}
