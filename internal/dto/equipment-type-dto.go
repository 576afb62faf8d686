package dto

import "github.com/aarondl/null/v8"

type CreateEquipmentTypeDTO struct {
	Name        string      `json:"name" validate:"required,max=255"`
	Description null.String `json:"description" validate:"omitempty,max=2000"`
}

type UpdateEquipmentTypeDTO struct {
	Name        *string     `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description null.String `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type EquipmentTypeDTO struct {
	ID          uint64      `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description"`
	CreatedAt   string      `json:"createdAt"`
	UpdatedAt   string      `json:"updatedAt"`
}

type ShortEquipmentTypeDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
