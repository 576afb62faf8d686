package entities

import (
	"github.com/aarondl/null/v8"

	"ppe-tracker/pkg/types"
)

type EquipmentType struct {
	ID          uint64      `db:"id"`
	Name        string      `db:"name"`
	Description null.String `db:"description"`

	types.BaseEntity
}
