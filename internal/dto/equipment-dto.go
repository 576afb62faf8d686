package dto

import (
	"github.com/aarondl/null/v8"
	"github.com/golang-sql/civil"
)

type CreateEquipmentDTO struct {
	CustomIdentifier         string      `json:"customIdentifier" validate:"required,custom_identifier"`
	Brand                    string      `json:"brand" validate:"required,max=255"`
	Model                    string      `json:"model" validate:"required,max=255"`
	SerialNumber             string      `json:"serialNumber" validate:"required,max=255"`
	Size                     null.String `json:"size" validate:"omitempty,max=64"`
	Color                    null.String `json:"color" validate:"omitempty,max=64"`
	PurchaseDate             *civil.Date `json:"purchaseDate"`
	ManufactureDate          *civil.Date `json:"manufactureDate"`
	CommissionDate           *civil.Date `json:"commissionDate" validate:"required"`
	InspectionIntervalMonths int         `json:"inspectionIntervalMonths" validate:"required,min=1,max=120"`
	EquipmentTypeID          uint64      `json:"equipmentTypeId" validate:"required,gt=0"`
}

// UpdateEquipmentDTO is a partial update: absent fields keep their value.
type UpdateEquipmentDTO struct {
	CustomIdentifier         *string     `json:"customIdentifier,omitempty" validate:"omitempty,custom_identifier"`
	Brand                    *string     `json:"brand,omitempty" validate:"omitempty,min=1,max=255"`
	Model                    *string     `json:"model,omitempty" validate:"omitempty,min=1,max=255"`
	SerialNumber             *string     `json:"serialNumber,omitempty" validate:"omitempty,min=1,max=255"`
	Size                     null.String `json:"size,omitempty" validate:"omitempty,max=64"`
	Color                    null.String `json:"color,omitempty" validate:"omitempty,max=64"`
	PurchaseDate             *civil.Date `json:"purchaseDate,omitempty"`
	ManufactureDate          *civil.Date `json:"manufactureDate,omitempty"`
	CommissionDate           *civil.Date `json:"commissionDate,omitempty"`
	InspectionIntervalMonths *int        `json:"inspectionIntervalMonths,omitempty" validate:"omitempty,min=1,max=120"`
	EquipmentTypeID          *uint64     `json:"equipmentTypeId,omitempty" validate:"omitempty,gt=0"`
}

type EquipmentDTO struct {
	ID                       uint64                `json:"id"`
	CustomIdentifier         string                `json:"customIdentifier"`
	Brand                    string                `json:"brand"`
	Model                    string                `json:"model"`
	SerialNumber             string                `json:"serialNumber"`
	Size                     null.String           `json:"size"`
	Color                    null.String           `json:"color"`
	PurchaseDate             *civil.Date           `json:"purchaseDate"`
	ManufactureDate          *civil.Date           `json:"manufactureDate"`
	CommissionDate           *civil.Date           `json:"commissionDate"`
	InspectionIntervalMonths int                   `json:"inspectionIntervalMonths"`
	EquipmentTypeID          uint64                `json:"equipmentTypeId"`
	EquipmentType            ShortEquipmentTypeDTO `json:"equipmentType"`
	CreatedAt                string                `json:"createdAt"`
	UpdatedAt                string                `json:"updatedAt"`
}

type ShortEquipmentDTO struct {
	ID               uint64 `json:"id"`
	CustomIdentifier string `json:"customIdentifier"`
}
