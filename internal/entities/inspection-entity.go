package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/golang-sql/civil"
)

// Inspection is append-only: rows are never updated.
type Inspection struct {
	ID             uint64      `db:"id"`
	EquipmentID    uint64      `db:"equipment_id"`
	InspectionDate civil.Date  `db:"inspection_date"`
	InspectorID    uint64      `db:"inspector_id"`
	ResultStatusID uint64      `db:"result_status_id"`
	Notes          null.String `db:"notes"`
	CreatedAt      time.Time   `db:"created_at"`

	// Joined
	EquipmentIdentifier string `db:"-"`
	InspectorName       string `db:"-"`
	ResultStatusCode    string `db:"-"`
	ResultStatusName    string `db:"-"`
}
