package dto

import "github.com/golang-sql/civil"

// AlertDTO is an equipment item flattened together with its due state.
type AlertDTO struct {
	EquipmentDTO
	LastInspectionDate civil.Date `json:"lastInspectionDate"`
	NextDueDate        civil.Date `json:"nextDueDate"`
	Status             string     `json:"status"`
}
