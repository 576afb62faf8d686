package entities

import (
	"github.com/aarondl/null/v8"
	"github.com/golang-sql/civil"

	"ppe-tracker/pkg/types"
)

type Equipment struct {
	ID                       uint64      `db:"id"`
	CustomIdentifier         string      `db:"custom_identifier"`
	Brand                    string      `db:"brand"`
	Model                    string      `db:"model"`
	SerialNumber             string      `db:"serial_number"`
	Size                     null.String `db:"size"`
	Color                    null.String `db:"color"`
	PurchaseDate             *civil.Date `db:"purchase_date"`
	ManufactureDate          *civil.Date `db:"manufacture_date"`
	CommissionDate           *civil.Date `db:"commission_date"`
	InspectionIntervalMonths int         `db:"inspection_interval_months"`
	EquipmentTypeID          uint64      `db:"equipment_type_id"`

	types.BaseEntity

	// Joined, not a column.
	EquipmentTypeName string `db:"-"`
}
