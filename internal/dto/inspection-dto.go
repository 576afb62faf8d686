package dto

import (
	"github.com/aarondl/null/v8"
	"github.com/golang-sql/civil"
)

// CreateInspectionDTO records one inspection. InspectorID defaults to the
// authenticated user.
type CreateInspectionDTO struct {
	EquipmentID    uint64      `json:"equipmentId" validate:"required,gt=0"`
	InspectionDate civil.Date  `json:"inspectionDate"`
	InspectorID    *uint64     `json:"inspectorId,omitempty" validate:"omitempty,gt=0"`
	ResultStatusID uint64      `json:"resultStatusId" validate:"required,gt=0"`
	Notes          null.String `json:"notes" validate:"omitempty,max=4000"`
}

type InspectionDTO struct {
	ID             uint64            `json:"id"`
	EquipmentID    uint64            `json:"equipmentId"`
	Equipment      ShortEquipmentDTO `json:"equipment"`
	InspectionDate civil.Date        `json:"inspectionDate"`
	InspectorID    uint64            `json:"inspectorId"`
	Inspector      ShortUserDTO      `json:"inspector"`
	ResultStatusID uint64            `json:"resultStatusId"`
	ResultStatus   ShortStatusDTO    `json:"resultStatus"`
	Notes          null.String       `json:"notes"`
	CreatedAt      string            `json:"createdAt"`
}
